package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pulseapp/pulse-backend/internal/logger"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	AI      AIConfig
	Stripe  StripeConfig
	Auth    AuthConfig
	Metrics MetricsConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AIConfig configures the completion service. Provider is "openai" or
// "gemini"; an empty APIKey is allowed and makes every generation degrade
// to its fallback content.
type AIConfig struct {
	Provider       string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

type StripeConfig struct {
	SecretKey string
	PriceID   string
	TrialDays int
}

// AuthConfig carries the shared secret of the hosted auth provider. When
// JWTSecret is empty, token verification is disabled and the user id is
// taken from the request payload.
type AuthConfig struct {
	JWTSecret string
}

type MetricsConfig struct {
	Enabled bool
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port: getEnvOrDefault("SERVER_PORT", "8080"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "pulse"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		AI: AIConfig{
			Provider:       strings.ToLower(getEnvOrDefault("AI_PROVIDER", "openai")),
			APIKey:         os.Getenv("AI_API_KEY"),
			Model:          os.Getenv("AI_MODEL"),
			TimeoutSeconds: getEnvIntOrDefault("AI_TIMEOUT_SECONDS", 20),
		},
		Stripe: StripeConfig{
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
			PriceID:   os.Getenv("STRIPE_PRICE_ID"),
			TrialDays: getEnvIntOrDefault("STRIPE_TRIAL_DAYS", 7),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	if cfg.AI.Provider != "openai" && cfg.AI.Provider != "gemini" {
		return nil, fmt.Errorf("unsupported AI_PROVIDER %q", cfg.AI.Provider)
	}
	if cfg.AI.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("AI_TIMEOUT_SECONDS must be positive, got %d", cfg.AI.TimeoutSeconds)
	}
	if cfg.Stripe.TrialDays <= 0 {
		return nil, fmt.Errorf("STRIPE_TRIAL_DAYS must be positive, got %d", cfg.Stripe.TrialDays)
	}

	return cfg, nil
}
