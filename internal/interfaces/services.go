package interfaces

import (
	"context"

	"github.com/pulseapp/pulse-backend/internal/ai"
	"github.com/pulseapp/pulse-backend/internal/domain"
	"github.com/pulseapp/pulse-backend/internal/wellbeing"
)

// CheckinServiceInterface defines the contract for the daily check-in flow
type CheckinServiceInterface interface {
	Submit(ctx context.Context, userID string, ratings wellbeing.Ratings) (*domain.CheckinOutcome, error)
	History(ctx context.Context, userID string, limit int) (*domain.History, error)
	GenerateEME(ctx context.Context, ratings wellbeing.Ratings, previousPhrases []string) *domain.EME
	Patterns(ctx context.Context, ratings wellbeing.Ratings) *domain.PatternReport
}

// QuizServiceInterface defines the contract for the onboarding quiz
type QuizServiceInterface interface {
	Analyze(ctx context.Context, userID string, responses []ai.QuizResponse) *domain.QuizAnalysis
	Questions() []domain.QuizQuestion
}

// InterventionServiceInterface defines the contract for intervention operations
type InterventionServiceInterface interface {
	GenerateDaily(ctx context.Context, userID string, emeID uint, emeScore int) (*domain.Intervention, error)
	Generate(ctx context.Context, emeScore int, patterns, recentInterventions []string) *domain.Intervention
	Complete(ctx context.Context, userID string, interventionID uint) error
}

// SubscriptionServiceInterface defines the contract for subscription operations
type SubscriptionServiceInterface interface {
	Status(ctx context.Context, userID string) (*domain.SubscriptionStatus, error)
	StartTrial(ctx context.Context, req domain.TrialRequest) (*domain.TrialStart, error)
	Cancel(ctx context.Context, userID string) error
}
