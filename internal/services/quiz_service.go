package services

import (
	"context"

	"github.com/pulseapp/pulse-backend/internal/ai"
	"github.com/pulseapp/pulse-backend/internal/database"
	"github.com/pulseapp/pulse-backend/internal/domain"
	"github.com/pulseapp/pulse-backend/internal/logger"
	"gorm.io/gorm"
)

// quizQuestions is the static onboarding catalogue.
var quizQuestions = []domain.QuizQuestion{
	{ID: 1, Text: "Sua mente fica acelerada, difícil de desligar?", Category: "anxiety"},
	{ID: 2, Text: "Você sente um cansaço constante, mesmo após descansar?", Category: "exhaustion"},
	{ID: 3, Text: "Você se cobra muito ou se critica com frequência?", Category: "self-criticism"},
	{ID: 4, Text: "Você funciona no automático, sem perceber o que sente?", Category: "autopilot"},
	{ID: 5, Text: "Você evita pensar ou falar sobre o que te incomoda?", Category: "avoidance"},
	{ID: 6, Text: "Você sente tensão no corpo, dores ou aperto no peito?", Category: "anxiety"},
	{ID: 7, Text: "Você usa distrações (celular, comida, séries) para não sentir?", Category: "avoidance"},
	{ID: 8, Text: "Você sente que precisa ser forte o tempo todo?", Category: "self-criticism"},
	{ID: 9, Text: "Você prioriza os outros antes de cuidar de si mesma?", Category: "autopilot"},
}

// QuizService analyzes the onboarding quiz.
type QuizService struct {
	db       *gorm.DB
	aiClient *ai.Client
}

func NewQuizService(db *gorm.DB, aiClient *ai.Client) *QuizService {
	return &QuizService{db: db, aiClient: aiClient}
}

// Analyze scores emotional overload from the quiz responses. It never
// fails: degraded calls carry the fixed fallback analysis. Persisting the
// result is best-effort and skipped for anonymous callers.
func (s *QuizService) Analyze(ctx context.Context, userID string, responses []ai.QuizResponse) *domain.QuizAnalysis {
	completion := ai.Generate(ctx, s.aiClient, ai.QuizTask(), ai.QuizPrompt(responses))

	if userID != "" {
		result := &database.QuizResult{
			UserID:   userID,
			Patterns: completion.Value.Patterns,
			Score:    completion.Value.Score,
		}
		if err := s.db.WithContext(ctx).Create(result).Error; err != nil {
			logger.Error("Failed to save quiz result", "user_id", userID, "error", err)
		}
	}

	return &domain.QuizAnalysis{
		Patterns: completion.Value.Patterns,
		Score:    completion.Value.Score,
		Source:   string(completion.Source),
	}
}

// Questions returns the static question catalogue.
func (s *QuizService) Questions() []domain.QuizQuestion {
	return quizQuestions
}
