package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/pulseapp/pulse-backend/internal/config"
	"github.com/pulseapp/pulse-backend/internal/logger"
)

// Controllers bundles everything the HTTP surface serves.
type Controllers struct {
	Checkin      *CheckinController
	Quiz         *QuizController
	Intervention *InterventionController
	Subscription *SubscriptionController
	Health       *HealthController
}

type App struct {
	WebServer *http.Server
}

// NewApp wires routes, auth and metrics into the web server. The quiz
// endpoints stay outside the auth wrapper since the quiz runs before
// sign-up; /health and /metrics are infrastructure and skip both
// middlewares.
func NewApp(cfg *config.Config, ctrl Controllers, metrics MetricsProviderInterface) *App {
	router := NewRouterProvider()
	router.Post("/api/checkin", ctrl.Checkin.Submit)
	router.Get("/api/checkin/history", ctrl.Checkin.History)
	router.Post("/api/eme/generate", ctrl.Checkin.GenerateEME)
	router.Post("/api/patterns", ctrl.Checkin.Patterns)
	router.Post("/api/intervention", ctrl.Intervention.GenerateDaily)
	router.Post("/api/intervention/generate", ctrl.Intervention.Generate)
	router.Post("/api/intervention/complete", ctrl.Intervention.Complete)
	router.Get("/api/subscription/status", ctrl.Subscription.Status)
	router.Post("/api/subscription/start-trial", ctrl.Subscription.StartTrial)
	router.Post("/api/subscription/cancel", ctrl.Subscription.Cancel)

	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.URL, route.Handler)
	}

	public := NewRouterProvider()
	public.Post("/api/quiz/analyze", ctrl.Quiz.Analyze)
	public.Get("/api/quiz/questions", ctrl.Quiz.Questions)
	publicMux := http.NewServeMux()
	for _, route := range public.GetRoutes() {
		publicMux.Handle(route.URL, route.Handler)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", ctrl.Health.Health)
	if cfg.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/api/quiz/", MetricsMiddleware(metrics, publicMux))
	mux.Handle("/", MetricsMiddleware(metrics, AuthMiddleware(cfg.Auth.JWTSecret, apiMux)))

	return &App{
		WebServer: &http.Server{
			Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Listening HTTP clients", "addr", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("gracefully stopped")
	return nil
}
