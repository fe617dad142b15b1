package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"medprep/internal/backend"
	"medprep/internal/booking"
	"medprep/internal/calendar"
	"medprep/internal/service"
)

// envelope is the response shape every endpoint shares
type envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, envelope{Message: message})
}

func writeEnvelope(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeServiceError maps domain and backend errors onto HTTP statuses
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := backend.AsAppError(err); ok {
		switch {
		case appErr.Kind == backend.KindValidation:
			writeEnvelope(w, http.StatusUnprocessableEntity, envelope{Message: appErr.Message, Fields: appErr.Fields})
		case appErr.Status == http.StatusNotFound:
			writeError(w, http.StatusNotFound, appErr.Message)
		case appErr.Kind == backend.KindNetwork:
			writeError(w, http.StatusServiceUnavailable, "backend unavailable")
		default:
			writeError(w, http.StatusBadGateway, appErr.Message)
		}
		return
	}

	switch {
	case errors.Is(err, booking.ErrStepLocked),
		errors.Is(err, booking.ErrNotReady),
		errors.Is(err, calendar.ErrPastDate),
		errors.Is(err, service.ErrConfirmInProgress):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrInvalidValue),
		errors.Is(err, booking.ErrUnknownTier),
		errors.Is(err, booking.ErrUnsupportedVersion),
		errors.Is(err, calendar.ErrInvalidDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
