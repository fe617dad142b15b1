package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"medprep/internal/model"
	"medprep/internal/service"
	"medprep/internal/similarity"
	"medprep/internal/transport/rest/middleware"
)

// QuestionHandler handles the question bank and the similarity check
type QuestionHandler struct {
	questionSvc *service.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionSvc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionSvc: questionSvc}
}

// SimilarityRequest is the body of POST /v1/similarity/check
type SimilarityRequest struct {
	Title     string `json:"title"`
	Threshold int    `json:"threshold,omitempty"`
}

// CheckSimilarity handles POST /v1/similarity/check
func (h *QuestionHandler) CheckSimilarity(w http.ResponseWriter, r *http.Request) {
	var req SimilarityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Threshold < 0 || req.Threshold > 100 {
		writeError(w, http.StatusUnprocessableEntity, "threshold must be between 0 and 100")
		return
	}

	matches, err := h.questionSvc.CheckSimilarity(r.Context(), req.Title, req.Threshold)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"matches": matches})
}

// List handles GET /v1/admin/questions?status=
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	status := model.QuestionStatus(r.URL.Query().Get("status"))
	questions, err := h.questionSvc.List(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// CreateQuestionResponse carries the new question and any close matches
type CreateQuestionResponse struct {
	Question *model.Question   `json:"question"`
	Similar  []similarity.Match `json:"similar"`
}

// Create handles POST /v1/admin/questions
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.QuestionInput
	if !decodeBody(w, r, &in) {
		return
	}

	q, similar, err := h.questionSvc.Create(r.Context(), in, middleware.GetUsername(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if similar == nil {
		similar = []similarity.Match{}
	}
	writeJSON(w, http.StatusCreated, CreateQuestionResponse{Question: q, Similar: similar})
}

// Update handles PUT /v1/admin/questions/{id}
func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in model.QuestionInput
	if !decodeBody(w, r, &in) {
		return
	}

	q, err := h.questionSvc.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// UpdateStatus handles PATCH /v1/admin/questions/{id}/status
func (h *QuestionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var upd model.QuestionStatusUpdate
	if !decodeBody(w, r, &upd) {
		return
	}

	q, err := h.questionSvc.UpdateStatus(r.Context(), mux.Vars(r)["id"], upd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// ListSkills handles GET /v1/admin/skills?active=true
func (h *QuestionHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	skills, err := h.questionSvc.ListSkills(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

// CreateSkill handles POST /v1/admin/skills
func (h *QuestionHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var skill model.Skill
	if !decodeBody(w, r, &skill) {
		return
	}

	created, err := h.questionSvc.CreateSkill(r.Context(), skill)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTags handles GET /v1/admin/tags
func (h *QuestionHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.questionSvc.ListTags(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}
