package repository

import (
	"context"
	"time"

	"github.com/pulseapp/pulse-backend/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckinRepository handles check-in persistence: the daily rows, the
// derived EME results and the phrase history log.
type CheckinRepository struct {
	db *gorm.DB
}

// NewCheckinRepository creates a new check-in repository
func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{db: db}
}

// UpsertCheckin writes the day's check-in, overwriting a same-day row, and
// returns the stored row. The conflict-update path does not report the row
// id, so the row is read back.
func (r *CheckinRepository) UpsertCheckin(ctx context.Context, checkin *database.DailyCheckin) (*database.DailyCheckin, error) {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "stress", "energy", "sleep", "self_criticism", "updated_at"}),
	}).Create(checkin).Error; err != nil {
		return nil, err
	}

	var saved database.DailyCheckin
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", checkin.UserID, checkin.Date).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpsertEME writes the derived daily result, one row per (user, date).
func (r *CheckinRepository) UpsertEME(ctx context.Context, eme *database.EMEResult) (*database.EMEResult, error) {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"checkin_id", "score", "phrase", "insight", "updated_at"}),
	}).Create(eme).Error; err != nil {
		return nil, err
	}

	var saved database.EMEResult
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", eme.UserID, eme.Date).
		First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// AppendPhrase adds one entry to the phrase history log.
func (r *CheckinRepository) AppendPhrase(ctx context.Context, entry *database.PhraseHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// RecentPhrases returns the newest phrases of one type, newest first.
func (r *CheckinRepository) RecentPhrases(ctx context.Context, userID, phraseType string, limit int) ([]string, error) {
	var phrases []string
	err := r.db.WithContext(ctx).
		Model(&database.PhraseHistory{}).
		Where("user_id = ? AND type = ?", userID, phraseType).
		Order("created_at DESC").
		Limit(limit).
		Pluck("phrase", &phrases).Error
	return phrases, err
}

// RecentCheckins returns the newest check-ins, newest first.
func (r *CheckinRepository) RecentCheckins(ctx context.Context, userID string, limit int) ([]database.DailyCheckin, error) {
	var checkins []database.DailyCheckin
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&checkins).Error
	return checkins, err
}

// RecentEMEs returns the newest derived results, newest first.
func (r *CheckinRepository) RecentEMEs(ctx context.Context, userID string, limit int) ([]database.EMEResult, error) {
	var emes []database.EMEResult
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&emes).Error
	return emes, err
}

// CheckinDates returns the newest check-in dates, newest first.
func (r *CheckinRepository) CheckinDates(ctx context.Context, userID string, limit int) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&database.DailyCheckin{}).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Pluck("date", &dates).Error
	return dates, err
}
