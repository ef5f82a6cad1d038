package services

import (
	"context"
	"time"

	"github.com/pulseapp/pulse-backend/internal/ai"
	"github.com/pulseapp/pulse-backend/internal/apperrors"
	"github.com/pulseapp/pulse-backend/internal/database"
	"github.com/pulseapp/pulse-backend/internal/domain"
	"github.com/pulseapp/pulse-backend/internal/interfaces"
	"github.com/pulseapp/pulse-backend/internal/logger"
	"github.com/pulseapp/pulse-backend/internal/wellbeing"
)

const (
	// phraseLookback bounds the anti-repetition window fed to the prompt.
	phraseLookback = 7
	// streakLookback bounds how many recent days feed the streak walk.
	streakLookback = 30

	phraseTypeEME = "eme"
)

// CheckinService runs the daily check-in flow: upsert the check-in,
// compute the score, generate phrase/insight, persist the derived result
// and report the streak.
type CheckinService struct {
	repo     interfaces.CheckinRepositoryInterface
	aiClient *ai.Client
	now      func() time.Time
}

func NewCheckinService(repo interfaces.CheckinRepositoryInterface, aiClient *ai.Client) *CheckinService {
	return &CheckinService{repo: repo, aiClient: aiClient, now: time.Now}
}

// Submit stores today's check-in and derives the EME result. The check-in
// write is the primary record: its failure fails the request. The derived
// EME row and the history append are best-effort. Only model-sourced
// phrases enter the history; the fixed fallback phrase must never join
// the exclusion list.
func (s *CheckinService) Submit(ctx context.Context, userID string, ratings wellbeing.Ratings) (*domain.CheckinOutcome, error) {
	today := wellbeing.DayStart(s.now())

	saved, err := s.repo.UpsertCheckin(ctx, &database.DailyCheckin{
		UserID:        userID,
		Date:          today,
		Mood:          ratings.Mood,
		Stress:        ratings.Stress,
		Energy:        ratings.Energy,
		Sleep:         ratings.Sleep,
		SelfCriticism: ratings.SelfCriticism,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeDatabase, "CHECKIN_SAVE", "failed to save check-in")
	}

	score := wellbeing.Score(ratings)
	previous := s.recentPhrases(ctx, userID)

	completion := ai.Generate(ctx, s.aiClient, ai.EMETask(), ai.EMEPrompt(ratings, score, previous))

	var emeID uint
	eme, err := s.repo.UpsertEME(ctx, &database.EMEResult{
		UserID:    userID,
		CheckinID: saved.ID,
		Date:      today,
		Score:     score,
		Phrase:    completion.Value.Phrase,
		Insight:   completion.Value.Insight,
	})
	if err != nil {
		logger.Error("Failed to save EME result", "user_id", userID, "error", err)
	} else {
		emeID = eme.ID
	}

	if completion.Source == ai.SourceModel {
		history := &database.PhraseHistory{
			UserID: userID,
			Phrase: completion.Value.Phrase,
			Type:   phraseTypeEME,
		}
		if err := s.repo.AppendPhrase(ctx, history); err != nil {
			logger.Error("Failed to append phrase history", "user_id", userID, "error", err)
		}
	}

	return &domain.CheckinOutcome{
		Success: true,
		EME: domain.EME{
			ID:      emeID,
			Date:    wellbeing.Day(today),
			Score:   score,
			Phrase:  completion.Value.Phrase,
			Insight: completion.Value.Insight,
			Source:  string(completion.Source),
		},
		Streak: s.streak(ctx, userID),
	}, nil
}

// GenerateEME is the stateless variant: phrase and insight for the given
// ratings without touching storage. It never fails; degraded calls carry
// the fallback content.
func (s *CheckinService) GenerateEME(ctx context.Context, ratings wellbeing.Ratings, previousPhrases []string) *domain.EME {
	score := wellbeing.Score(ratings)
	completion := ai.Generate(ctx, s.aiClient, ai.EMETask(), ai.EMEPrompt(ratings, score, previousPhrases))

	return &domain.EME{
		Score:   score,
		Phrase:  completion.Value.Phrase,
		Insight: completion.Value.Insight,
		Source:  string(completion.Source),
	}
}

// Patterns identifies up to three emotional patterns for the given
// ratings. Degraded calls return an empty list.
func (s *CheckinService) Patterns(ctx context.Context, ratings wellbeing.Ratings) *domain.PatternReport {
	completion := ai.Generate(ctx, s.aiClient, ai.PatternsTask(), ai.PatternsPrompt(ratings))

	patterns := make([]domain.RadarPattern, 0, len(completion.Value.Patterns))
	for _, p := range completion.Value.Patterns {
		patterns = append(patterns, domain.RadarPattern{
			Name:        p.Name,
			Description: p.Description,
			Intensity:   p.Intensity,
		})
	}
	return &domain.PatternReport{Patterns: patterns, Source: string(completion.Source)}
}

// History returns the recent check-in timeline joined with derived results,
// newest first, plus the current streak.
func (s *CheckinService) History(ctx context.Context, userID string, limit int) (*domain.History, error) {
	if limit <= 0 || limit > streakLookback {
		limit = streakLookback
	}

	checkins, err := s.repo.RecentCheckins(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeDatabase, "HISTORY_READ", "failed to read check-in history")
	}

	emes, err := s.repo.RecentEMEs(ctx, userID, limit)
	if err != nil {
		logger.Error("Failed to read EME history", "user_id", userID, "error", err)
	}
	emeByDay := make(map[string]database.EMEResult, len(emes))
	for _, e := range emes {
		emeByDay[wellbeing.Day(e.Date)] = e
	}

	entries := make([]domain.HistoryEntry, 0, len(checkins))
	for _, c := range checkins {
		entry := domain.HistoryEntry{
			Date:          wellbeing.Day(c.Date),
			Mood:          c.Mood,
			Stress:        c.Stress,
			Energy:        c.Energy,
			Sleep:         c.Sleep,
			SelfCriticism: c.SelfCriticism,
		}
		if e, ok := emeByDay[entry.Date]; ok {
			entry.Score = e.Score
			entry.Phrase = e.Phrase
			entry.Insight = e.Insight
		}
		entries = append(entries, entry)
	}

	return &domain.History{Entries: entries, Streak: s.streak(ctx, userID)}, nil
}

func (s *CheckinService) recentPhrases(ctx context.Context, userID string) []string {
	phrases, err := s.repo.RecentPhrases(ctx, userID, phraseTypeEME, phraseLookback)
	if err != nil {
		logger.Error("Failed to read phrase history", "user_id", userID, "error", err)
		return nil
	}
	return phrases
}

func (s *CheckinService) streak(ctx context.Context, userID string) int {
	dates, err := s.repo.CheckinDates(ctx, userID, streakLookback)
	if err != nil {
		logger.Error("Failed to read check-in dates", "user_id", userID, "error", err)
		return 0
	}

	days := make([]string, 0, len(dates))
	for _, d := range dates {
		days = append(days, wellbeing.Day(d))
	}
	return wellbeing.Streak(days, s.now())
}
