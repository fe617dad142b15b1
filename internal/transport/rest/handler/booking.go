package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"medprep/internal/booking"
	"medprep/internal/service"
)

const maxEventBody = 16 << 10

// BookingHandler handles the booking wizard and booking lookups
type BookingHandler struct {
	bookingSvc *service.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingSvc *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// Universities handles GET /v1/universities
func (h *BookingHandler) Universities(w http.ResponseWriter, r *http.Request) {
	unis, err := h.bookingSvc.Universities(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, unis)
}

// Packages handles GET /v1/packages
func (h *BookingHandler) Packages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.bookingSvc.Catalogue())
}

// CreateDraft handles POST /v1/bookings/drafts
func (h *BookingHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.bookingSvc.CreateDraft(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// GetDraft handles GET /v1/bookings/drafts/{id}
func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	view, err := h.bookingSvc.GetDraft(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ApplyEvent handles POST /v1/bookings/drafts/{id}/events
func (h *BookingHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	event, err := booking.DecodeEvent(body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	view, err := h.bookingSvc.ApplyEvent(r.Context(), mux.Vars(r)["id"], event)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Checkout handles POST /v1/bookings/drafts/{id}/checkout
func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	co, err := h.bookingSvc.Checkout(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, co)
}

// Confirm handles POST /v1/bookings/drafts/{id}/confirm
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookingSvc.Confirm(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Search handles GET /v1/admin/bookings?q=
func (h *BookingHandler) Search(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.SearchBookings(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// User handles GET /v1/admin/users/{email}
func (h *BookingHandler) User(w http.ResponseWriter, r *http.Request) {
	u, err := h.bookingSvc.FindUser(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Demand handles GET /v1/admin/universities/demand?limit=&university=
// With university set it returns that university's standing instead of the list.
func (h *BookingHandler) Demand(w http.ResponseWriter, r *http.Request) {
	if u := r.URL.Query().Get("university"); u != "" {
		standing, err := h.bookingSvc.UniversityRank(r.Context(), u)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, standing)
		return
	}

	limit := queryInt(r, "limit", 10)
	demand, err := h.bookingSvc.Demand(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, demand)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
