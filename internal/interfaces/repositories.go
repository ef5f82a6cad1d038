package interfaces

import (
	"context"
	"time"

	"github.com/pulseapp/pulse-backend/internal/database"
)

// CheckinRepositoryInterface defines the persistence contract of the
// check-in flow
type CheckinRepositoryInterface interface {
	UpsertCheckin(ctx context.Context, checkin *database.DailyCheckin) (*database.DailyCheckin, error)
	UpsertEME(ctx context.Context, eme *database.EMEResult) (*database.EMEResult, error)
	AppendPhrase(ctx context.Context, entry *database.PhraseHistory) error
	RecentPhrases(ctx context.Context, userID, phraseType string, limit int) ([]string, error)
	RecentCheckins(ctx context.Context, userID string, limit int) ([]database.DailyCheckin, error)
	RecentEMEs(ctx context.Context, userID string, limit int) ([]database.EMEResult, error)
	CheckinDates(ctx context.Context, userID string, limit int) ([]time.Time, error)
}

// SubscriptionRepositoryInterface defines the persistence contract of the
// subscription mirror
type SubscriptionRepositoryInterface interface {
	GetByUserID(ctx context.Context, userID string) (*database.Subscription, error)
	UpdateStatus(ctx context.Context, userID, status string) error
	Upsert(ctx context.Context, sub *database.Subscription) error
	MarkCanceled(ctx context.Context, userID string, at time.Time) error
}
