package handler

import (
	"net/http"

	"medprep/internal/model"
	"medprep/internal/service"
)

// DashboardHandler handles the tutor dashboard overview
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Summary handles GET /v1/admin/dashboard
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.dashboardSvc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// FailedSubmissions handles GET /v1/admin/failed-submissions?limit=
func (h *DashboardHandler) FailedSubmissions(w http.ResponseWriter, r *http.Request) {
	subs, err := h.dashboardSvc.FailedSubmissions(r.Context(), int64(queryInt(r, "limit", 50)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if subs == nil {
		subs = []model.FailedSubmission{}
	}
	writeJSON(w, http.StatusOK, subs)
}
