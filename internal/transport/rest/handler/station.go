package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"medprep/internal/model"
	"medprep/internal/service"
)

// StationHandler handles university interview station configuration
type StationHandler struct {
	stationSvc *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationSvc *service.StationService) *StationHandler {
	return &StationHandler{stationSvc: stationSvc}
}

// List handles GET /v1/admin/stations
func (h *StationHandler) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stationSvc.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

// Get handles GET /v1/admin/stations/{id}
func (h *StationHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.stationSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Create handles POST /v1/admin/stations
func (h *StationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var st model.UniversityStations
	if !decodeBody(w, r, &st) {
		return
	}

	created, err := h.stationSvc.Create(r.Context(), st)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /v1/admin/stations/{id}
func (h *StationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var st model.UniversityStations
	if !decodeBody(w, r, &st) {
		return
	}

	updated, err := h.stationSvc.Update(r.Context(), mux.Vars(r)["id"], st)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /v1/admin/stations/{id}
func (h *StationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.stationSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
