// Package docs registers the OpenAPI document served at /v1/docs/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/similarity/check": {
            "post": {"summary": "Advisory duplicate check for a question title", "tags": ["questions"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/SimilarityRequest"}}],
                "responses": {"200": {"description": "matches"}, "503": {"description": "backend unavailable"}}}
        },
        "/calendar": {
            "get": {"summary": "Month grid with events", "tags": ["calendar"],
                "parameters": [
                    {"in": "query", "name": "year", "type": "integer"},
                    {"in": "query", "name": "month", "type": "integer"},
                    {"in": "query", "name": "selected", "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "grid"}, "422": {"description": "invalid month or date"}}}
        },
        "/events": {
            "get": {"summary": "Upcoming events", "tags": ["calendar"], "responses": {"200": {"description": "events"}}}
        },
        "/events/{id}": {
            "get": {"summary": "One calendar event", "tags": ["calendar"], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "event"}, "404": {"description": "unknown event"}}}
        },
        "/universities": {
            "get": {"summary": "Universities offered in the booking wizard", "tags": ["bookings"], "responses": {"200": {"description": "universities"}}}
        },
        "/packages": {
            "get": {"summary": "Package catalogue and prices", "tags": ["bookings"], "responses": {"200": {"description": "catalogue"}}}
        },
        "/bookings/drafts": {
            "post": {"summary": "Start a booking draft", "tags": ["bookings"], "responses": {"201": {"description": "draft view"}}}
        },
        "/bookings/drafts/{id}": {
            "get": {"summary": "Get a booking draft", "tags": ["bookings"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "draft view"}, "404": {"description": "draft not found"}}}
        },
        "/bookings/drafts/{id}/events": {
            "post": {"summary": "Apply one wizard event", "tags": ["bookings"],
                "parameters": [
                    {"in": "path", "name": "id", "type": "string", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/WizardEvent"}}
                ],
                "responses": {"200": {"description": "draft view"}, "409": {"description": "step locked or date in the past"}, "422": {"description": "invalid value"}}}
        },
        "/bookings/drafts/{id}/checkout": {
            "post": {"summary": "Price a complete draft and build the payment redirect", "tags": ["bookings"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "checkout"}, "409": {"description": "draft incomplete"}}}
        },
        "/bookings/drafts/{id}/confirm": {
            "post": {"summary": "Submit a paid draft to the backend", "tags": ["bookings"],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"201": {"description": "booking"}, "404": {"description": "unknown or already confirmed draft"}, "409": {"description": "draft not ready or already being confirmed"}, "502": {"description": "backend rejected the booking"}, "503": {"description": "backend unavailable"}}}
        },
        "/applications": {
            "post": {"summary": "Tutor job application", "tags": ["applications"], "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "first_name", "type": "string", "required": true},
                    {"in": "formData", "name": "last_name", "type": "string", "required": true},
                    {"in": "formData", "name": "email", "type": "string", "required": true},
                    {"in": "formData", "name": "phone", "type": "string", "required": true},
                    {"in": "formData", "name": "position", "type": "string", "required": true},
                    {"in": "formData", "name": "message", "type": "string"},
                    {"in": "formData", "name": "cv", "type": "file", "required": true},
                    {"in": "formData", "name": "personal_statement", "type": "file"}
                ],
                "responses": {"201": {"description": "received"}, "422": {"description": "invalid fields"}}}
        },
        "/auth/login": {
            "post": {"summary": "Tutor or admin login", "tags": ["auth"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "token"}, "401": {"description": "invalid credentials"}}}
        },
        "/admin/questions": {
            "get": {"summary": "List questions by status", "tags": ["admin"], "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "status", "type": "string", "enum": ["pending", "approved", "rejected"]}],
                "responses": {"200": {"description": "questions"}}},
            "post": {"summary": "Submit a question; returns similar approved questions", "tags": ["admin"], "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "question and similar"}, "422": {"description": "invalid fields"}}}
        },
        "/admin/questions/{id}": {
            "put": {"summary": "Update a question", "tags": ["admin"], "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "question"}}}
        },
        "/admin/questions/{id}/status": {
            "patch": {"summary": "Approve or reject a question (admin)", "tags": ["admin"], "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}],
                "responses": {"200": {"description": "question"}, "403": {"description": "admin role required"}}}
        },
        "/admin/skills": {
            "get": {"summary": "List skills", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "skills"}}},
            "post": {"summary": "Create a skill", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "skill"}}}
        },
        "/admin/tags": {
            "get": {"summary": "List tags", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "tags"}}}
        },
        "/admin/bookings": {
            "get": {"summary": "Search bookings", "tags": ["admin"], "security": [{"BearerAuth": []}],
                "parameters": [{"in": "query", "name": "q", "type": "string"}],
                "responses": {"200": {"description": "bookings"}}}
        },
        "/admin/users/{email}": {
            "get": {"summary": "Find a customer by email", "tags": ["admin"], "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "email", "type": "string", "required": true}],
                "responses": {"200": {"description": "user"}, "404": {"description": "no such user"}}}
        },
        "/admin/stations": {
            "get": {"summary": "List station configurations", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "stations"}}},
            "post": {"summary": "Create a station configuration", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "stations"}}}
        },
        "/admin/stations/{id}": {
            "get": {"summary": "Get a station configuration", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "stations"}}},
            "put": {"summary": "Update a station configuration", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "stations"}}},
            "delete": {"summary": "Delete a station configuration", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "deleted"}}}
        },
        "/admin/events": {
            "post": {"summary": "Add a calendar event (admin)", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"201": {"description": "event"}}}
        },
        "/admin/events/{id}": {
            "delete": {"summary": "Remove a calendar event (admin)", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "deleted"}}}
        },
        "/admin/dashboard": {
            "get": {"summary": "Dashboard summary", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "summary"}}}
        },
        "/admin/universities/demand": {
            "get": {"summary": "Most requested universities, or one university's standing", "tags": ["admin"], "security": [{"BearerAuth": []}], "parameters": [{"name": "limit", "in": "query", "type": "integer"}, {"name": "university", "in": "query", "type": "string"}], "responses": {"200": {"description": "ranking or standing"}}}
        },
        "/admin/failed-submissions": {
            "get": {"summary": "Backend submissions that failed", "tags": ["admin"], "security": [{"BearerAuth": []}], "responses": {"200": {"description": "submissions"}}}
        }
    },
    "definitions": {
        "SimilarityRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "threshold": {"type": "integer"}}
        },
        "WizardEvent": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["select_package_type", "select_service_type", "toggle_university", "select_package_tier", "update_contact", "set_preferred_date", "set_notes", "reset"]},
                "value": {"type": "string"},
                "contact": {"type": "object"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "MedPrep Tutoring API",
	Description:      "Booking wizard, events calendar, question bank and tutor dashboard API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
