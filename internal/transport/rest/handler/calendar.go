package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"medprep/internal/model"
	"medprep/internal/service"
)

// CalendarHandler handles the events calendar
type CalendarHandler struct {
	calendarSvc *service.CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarSvc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarSvc: calendarSvc}
}

// Month handles GET /v1/calendar?year=&month=&selected=
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var year, month int
	var err error
	if v := q.Get("year"); v != "" {
		if year, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "year must be a number")
			return
		}
	}
	if v := q.Get("month"); v != "" {
		if month, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "month must be a number")
			return
		}
	}
	if (year == 0) != (month == 0) {
		writeError(w, http.StatusBadRequest, "year and month go together")
		return
	}

	grid, err := h.calendarSvc.Month(r.Context(), year, time.Month(month), q.Get("selected"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, grid)
}

// Upcoming handles GET /v1/events?limit=
func (h *CalendarHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendarSvc.Upcoming(r.Context(), int64(queryInt(r, "limit", 50)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// Create handles POST /v1/admin/events
func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e model.Event
	if !decodeBody(w, r, &e) {
		return
	}

	created, err := h.calendarSvc.CreateEvent(r.Context(), e)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /v1/admin/events/{id}
// Get handles GET /v1/events/{id}
func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.calendarSvc.Event(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.calendarSvc.DeleteEvent(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
