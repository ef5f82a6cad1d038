package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/pulseapp/pulse-backend/internal/ai"
	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/database"
	"github.com/pulseapp/pulse-backend/internal/domain"
	"github.com/pulseapp/pulse-backend/internal/logger"
	"github.com/pulseapp/pulse-backend/internal/wellbeing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// interventionLookback bounds the anti-repetition window.
	interventionLookback = 7
	// typeExclusionWindow is how many of the most recent types are barred
	// from today's pick.
	typeExclusionWindow = 3
)

// InterventionService generates and tracks the daily 1-3 minute activity.
type InterventionService struct {
	db       *gorm.DB
	aiClient *ai.Client
	now      func() time.Time
	pick     func(n int) int
}

func NewInterventionService(db *gorm.DB, aiClient *ai.Client) *InterventionService {
	return &InterventionService{
		db:       db,
		aiClient: aiClient,
		now:      time.Now,
		pick:     rand.Intn,
	}
}

// GenerateDaily produces today's intervention for the user: the type is
// chosen locally away from the recently used ones, the content comes from
// the completion service (or its fallback), and the row is upserted
// best-effort on (user, date).
func (s *InterventionService) GenerateDaily(ctx context.Context, userID string, emeID uint, emeScore int) (*domain.Intervention, error) {
	var recent []database.Intervention
	if err := s.db.WithContext(ctx).
		Select("type", "title").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(interventionLookback).
		Find(&recent).Error; err != nil {
		logger.Error("Failed to read recent interventions", "user_id", userID, "error", err)
		recent = nil
	}

	recentTypes := make([]string, 0, len(recent))
	recentTitles := make([]string, 0, len(recent))
	for _, r := range recent {
		recentTypes = append(recentTypes, r.Type)
		recentTitles = append(recentTitles, r.Title)
	}

	selected := s.chooseType(recentTypes)
	completion := ai.Generate(ctx, s.aiClient,
		ai.DailyInterventionTask(selected),
		ai.DailyInterventionPrompt(emeScore, selected, recentTitles))

	today := wellbeing.DayStart(s.now())
	row := &database.Intervention{
		UserID:       userID,
		EMEID:        emeID,
		Date:         today,
		Type:         completion.Value.Type,
		Title:        completion.Value.Title,
		Description:  completion.Value.Description,
		Duration:     completion.Value.Duration,
		Instructions: completion.Value.Instructions,
		Completed:    false,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"eme_id", "type", "title", "description", "duration", "instructions", "completed", "updated_at"}),
	}).Create(row).Error; err != nil {
		logger.Error("Failed to save intervention", "user_id", userID, "error", err)
	}

	return &domain.Intervention{
		ID:           row.ID,
		Date:         wellbeing.Day(today),
		Type:         completion.Value.Type,
		Title:        completion.Value.Title,
		Description:  completion.Value.Description,
		Duration:     completion.Value.Duration,
		Instructions: completion.Value.Instructions,
		Completed:    false,
		Source:       string(completion.Source),
	}, nil
}

// Generate is the stateless variant used before anything is persisted.
func (s *InterventionService) Generate(ctx context.Context, emeScore int, patterns, recentInterventions []string) *domain.Intervention {
	completion := ai.Generate(ctx, s.aiClient,
		ai.InterventionTask(),
		ai.InterventionPrompt(emeScore, patterns, recentInterventions))

	return &domain.Intervention{
		Type:         completion.Value.Type,
		Title:        completion.Value.Title,
		Description:  completion.Value.Description,
		Duration:     completion.Value.Duration,
		Instructions: completion.Value.Instructions,
		Source:       string(completion.Source),
	}
}

// Complete marks an intervention as done.
func (s *InterventionService) Complete(ctx context.Context, userID string, interventionID uint) error {
	result := s.db.WithContext(ctx).
		Model(&database.Intervention{}).
		Where("id = ? AND user_id = ?", interventionID, userID).
		Update("completed", true)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, apperrors.ErrorTypeDatabase, "INTERVENTION_UPDATE", "failed to complete intervention")
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrorTypeNotFound, "INTERVENTION_NOT_FOUND", "intervention not found")
	}
	return nil
}

// chooseType picks a type not used in the last few days; when every type
// was recently used, any of them may repeat.
func (s *InterventionService) chooseType(recentTypes []string) string {
	window := recentTypes
	if len(window) > typeExclusionWindow {
		window = window[:typeExclusionWindow]
	}
	barred := make(map[string]struct{}, len(window))
	for _, t := range window {
		barred[t] = struct{}{}
	}

	available := make([]string, 0, len(ai.InterventionTypes))
	for _, t := range ai.InterventionTypes {
		if _, ok := barred[t]; !ok {
			available = append(available, t)
		}
	}
	if len(available) == 0 {
		available = ai.InterventionTypes
	}
	return available[s.pick(len(available))]
}
