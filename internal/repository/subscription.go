package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pulseapp/pulse-backend/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository handles the local mirror of the billing state.
type SubscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetByUserID returns the user's subscription, or nil when none exists.
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*database.Subscription, error) {
	var sub database.Subscription
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// UpdateStatus persists a status transition.
func (r *SubscriptionRepository) UpdateStatus(ctx context.Context, userID, status string) error {
	return r.db.WithContext(ctx).
		Model(&database.Subscription{}).
		Where("user_id = ?", userID).
		Update("status", status).Error
}

// Upsert writes the subscription row, overwriting by user id.
func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *database.Subscription) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "trial_start", "trial_end", "canceled_at", "stripe_customer_id", "stripe_subscription_id", "stripe_payment_method_id", "updated_at"}),
	}).Create(sub).Error
}

// MarkCanceled sets the canceled status and timestamp.
func (r *SubscriptionRepository) MarkCanceled(ctx context.Context, userID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&database.Subscription{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{"status": "canceled", "canceled_at": &at}).Error
}
