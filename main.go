package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/pulseapp/pulse-backend/internal/ai"
	"github.com/pulseapp/pulse-backend/internal/billing"
	"github.com/pulseapp/pulse-backend/internal/config"
	"github.com/pulseapp/pulse-backend/internal/database"
	"github.com/pulseapp/pulse-backend/internal/logger"
	"github.com/pulseapp/pulse-backend/internal/repository"
	"github.com/pulseapp/pulse-backend/internal/server"
	"github.com/pulseapp/pulse-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Starting Pulse backend")

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Database connection established and migrations completed")

	aiClient, err := ai.New(context.Background(), cfg.AI)
	if err != nil {
		logger.Fatalf("Failed to initialize completion client: %v", err)
	}
	billingClient := billing.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.PriceID)

	checkinService := services.NewCheckinService(repository.NewCheckinRepository(db), aiClient)
	quizService := services.NewQuizService(db, aiClient)
	interventionService := services.NewInterventionService(db, aiClient)
	subscriptionService := services.NewSubscriptionService(repository.NewSubscriptionRepository(db), billingClient, cfg.Stripe.TrialDays)
	logger.Info("Services initialized successfully")

	metrics := server.NewMetricsProvider(cfg.Metrics.Enabled)
	app := server.NewApp(cfg, server.Controllers{
		Checkin:      server.NewCheckinController(checkinService, metrics),
		Quiz:         server.NewQuizController(quizService, metrics),
		Intervention: server.NewInterventionController(interventionService, metrics),
		Subscription: server.NewSubscriptionController(subscriptionService),
		Health:       server.NewHealthController(db),
	}, metrics)

	if err := app.Run(); err != nil {
		logger.Fatalf("Server stopped with error: %v", err)
	}
}
