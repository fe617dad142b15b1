package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"medprep/internal/app"
	"medprep/internal/backend"
	"medprep/internal/booking"
	"medprep/internal/config"
	"medprep/internal/logging"
	"medprep/internal/service"
	"medprep/internal/transport/rest"
	"medprep/internal/transport/ws"
)

// @title MedPrep Tutoring API
// @version 1.0
// @description Booking wizard, events calendar, question bank and tutor dashboard
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	fs := pflag.NewFlagSet("server", pflag.ExitOnError)
	cfg.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	catalogue, err := cfg.Catalogue()
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.PackagesFile).Msg("failed to load package catalogue")
	}

	ctx := context.Background()
	stores, err := app.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to storage")
	}
	defer stores.Close(context.Background())
	log.Info().Str("db", cfg.MongoDB).Str("redis", cfg.RedisAddr()).Msg("connected to MongoDB and Redis")

	loc := cfg.Location()
	now := func() time.Time { return time.Now().In(loc) }

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	defer wsHub.Close()

	// Initialize services
	api := backend.New(cfg.BackendClientConfig())
	wizard := &booking.Wizard{Catalogue: catalogue, Now: now}

	authSvc := service.NewAuthService(cfg.Auth)
	questionSvc := service.NewQuestionService(api, stores.Questions)
	bookingSvc := service.NewBookingService(stores.Drafts, stores.References, stores.Demand, stores.Submissions, api, wizard, cfg.PaymentURL)
	calendarSvc := service.NewCalendarService(stores.Events, now)
	applicationSvc := service.NewApplicationService(api, stores.Submissions)
	stationSvc := service.NewStationService(api)
	dashboardSvc := service.NewDashboardService(api, api, bookingSvc, stores.Submissions)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	questionSvc.SetBroadcaster(wsHub)
	bookingSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:        authSvc,
		QuestionService:    questionSvc,
		BookingService:     bookingSvc,
		CalendarService:    calendarSvc,
		ApplicationService: applicationSvc,
		StationService:     stationSvc,
		DashboardService:   dashboardSvc,
		WSHub:              wsHub,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		SimilarityDebounce: cfg.SimilarityDebounce,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rest.NewRouter(container),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", api.BaseURL()).
			Str("timezone", loc.String()).
			Int("tiers", len(catalogue.Tiers)).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen failed")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
