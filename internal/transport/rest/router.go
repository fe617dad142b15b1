package rest

import (
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	_ "medprep/docs"
	"medprep/internal/logging"
	"medprep/internal/service"
	"medprep/internal/transport/rest/handler"
	"medprep/internal/transport/rest/middleware"
	"medprep/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService        *service.AuthService
	QuestionService    *service.QuestionService
	BookingService     *service.BookingService
	CalendarService    *service.CalendarService
	ApplicationService *service.ApplicationService
	StationService     *service.StationService
	DashboardService   *service.DashboardService
	WSHub              *ws.Hub
	CORSAllowedOrigins []string
	SimilarityDebounce time.Duration
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	bookingHandler := handler.NewBookingHandler(c.BookingService)
	calendarHandler := handler.NewCalendarHandler(c.CalendarService)
	applicationHandler := handler.NewApplicationHandler(c.ApplicationService)
	stationHandler := handler.NewStationHandler(c.StationService)
	dashboardHandler := handler.NewDashboardHandler(c.DashboardService)
	wsHandler := ws.NewHandler(c.WSHub, c.QuestionService, c.SimilarityDebounce, c.CORSAllowedOrigins)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(chimw.RequestID, chimw.RealIP, logging.Requests, chimw.Recoverer)
	r.Use(corsMiddleware(c.CORSAllowedOrigins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true,"data":{"status":"ok"}}`))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/similarity/check", questionHandler.CheckSimilarity).Methods("POST", "OPTIONS")
	v1.HandleFunc("/calendar", calendarHandler.Month).Methods("GET", "OPTIONS")
	v1.HandleFunc("/events", calendarHandler.Upcoming).Methods("GET", "OPTIONS")
	v1.HandleFunc("/events/{id}", calendarHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/universities", bookingHandler.Universities).Methods("GET", "OPTIONS")
	v1.HandleFunc("/packages", bookingHandler.Packages).Methods("GET", "OPTIONS")
	v1.HandleFunc("/bookings/drafts", bookingHandler.CreateDraft).Methods("POST", "OPTIONS")
	v1.HandleFunc("/bookings/drafts/{id}", bookingHandler.GetDraft).Methods("GET", "OPTIONS")
	v1.HandleFunc("/bookings/drafts/{id}/events", bookingHandler.ApplyEvent).Methods("POST", "OPTIONS")
	v1.HandleFunc("/bookings/drafts/{id}/checkout", bookingHandler.Checkout).Methods("POST", "OPTIONS")
	v1.HandleFunc("/bookings/drafts/{id}/confirm", bookingHandler.Confirm).Methods("POST", "OPTIONS")
	v1.HandleFunc("/applications", applicationHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/docs/doc.json", serveDoc).Methods("GET")

	// WebSocket routes (token in query param)
	wsRoutes := v1.PathPrefix("/ws").Subrouter()
	wsRoutes.Use(authMW.RequireStaff)
	wsRoutes.HandleFunc("/dashboard", wsHandler.DashboardWS).Methods("GET")
	wsRoutes.HandleFunc("/similarity", wsHandler.SimilarityWS).Methods("GET")

	// Staff routes (tutor or admin)
	staffRoutes := v1.PathPrefix("/admin").Subrouter()
	staffRoutes.Use(authMW.RequireStaff)

	staffRoutes.HandleFunc("/questions", questionHandler.List).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/questions", questionHandler.Create).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/questions/{id}", questionHandler.Update).Methods("PUT", "OPTIONS")
	staffRoutes.HandleFunc("/skills", questionHandler.ListSkills).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/skills", questionHandler.CreateSkill).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/tags", questionHandler.ListTags).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/bookings", bookingHandler.Search).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/users/{email}", bookingHandler.User).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/stations", stationHandler.List).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/stations", stationHandler.Create).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/stations/{id}", stationHandler.Get).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/stations/{id}", stationHandler.Update).Methods("PUT", "OPTIONS")
	staffRoutes.HandleFunc("/stations/{id}", stationHandler.Delete).Methods("DELETE", "OPTIONS")
	staffRoutes.HandleFunc("/dashboard", dashboardHandler.Summary).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/universities/demand", bookingHandler.Demand).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/failed-submissions", dashboardHandler.FailedSubmissions).Methods("GET", "OPTIONS")

	// Admin-only routes
	adminRoutes := staffRoutes.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/questions/{id}/status", questionHandler.UpdateStatus).Methods("PATCH", "OPTIONS")
	adminRoutes.HandleFunc("/events", calendarHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/events/{id}", calendarHandler.Delete).Methods("DELETE", "OPTIONS")

	return r
}

func serveDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, `{"success":false,"message":"api doc unavailable"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

// corsMiddleware allows the configured origins, or any origin when none are
// configured.
func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case len(allowedOrigins) == 0:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && originAllowed(allowedOrigins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowed []string, origin string) bool {
	for _, o := range allowed {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}
