package database

import (
	"fmt"
	"time"

	"github.com/pulseapp/pulse-backend/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DailyCheckin is a user's self-report for one calendar day. Identity is
// (user_id, date); a second submission on the same day overwrites the first.
type DailyCheckin struct {
	gorm.Model
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_checkins_user_date"`
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_checkins_user_date"`
	Mood          int       `gorm:"not null"`
	Stress        int       `gorm:"not null"`
	Energy        int       `gorm:"not null"`
	Sleep         int       `gorm:"not null"`
	SelfCriticism int       `gorm:"not null"`
}

// EMEResult is the derived daily wellbeing result, one per (user, date).
type EMEResult struct {
	gorm.Model
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_emes_user_date"`
	CheckinID uint      `gorm:"not null"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_emes_user_date"`
	Score     int       `gorm:"not null"`
	Phrase    string    `gorm:"type:text"`
	Insight   string    `gorm:"type:text"`
}

// Intervention is a short suggested activity generated after an EME result.
// Completed flips later when the user finishes it.
type Intervention struct {
	gorm.Model
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_interventions_user_date"`
	EMEID        uint      `gorm:"index"`
	Date         time.Time `gorm:"type:date;not null;uniqueIndex:idx_interventions_user_date"`
	Type         string    `gorm:"type:varchar(32);not null"`
	Title        string    `gorm:"type:varchar(128)"`
	Description  string    `gorm:"type:text"`
	Duration     int       `gorm:"not null"`
	Instructions []string  `gorm:"serializer:json;type:jsonb"`
	Completed    bool      `gorm:"not null;default:false"`
}

// PhraseHistory is an append-only log of generated texts, consulted with a
// bounded lookback to keep prompts from repeating recent outputs.
type PhraseHistory struct {
	gorm.Model
	UserID string `gorm:"type:uuid;not null;index:idx_phrase_history_user_type"`
	Phrase string `gorm:"type:text;not null"`
	Type   string `gorm:"type:varchar(32);not null;index:idx_phrase_history_user_type"`
}

// QuizResult stores the onboarding quiz analysis.
type QuizResult struct {
	gorm.Model
	UserID   string   `gorm:"type:uuid;not null;index"`
	Patterns []string `gorm:"serializer:json;type:jsonb"`
	Score    int      `gorm:"not null"`
}

// Subscription mirrors the billing provider's state for one user. The
// trial -> active transition happens lazily on read, never in background.
type Subscription struct {
	gorm.Model
	UserID                string `gorm:"type:uuid;not null;uniqueIndex"`
	Status                string `gorm:"type:varchar(16);not null;default:'free'"`
	TrialStart            *time.Time
	TrialEnd              *time.Time
	CanceledAt            *time.Time
	StripeCustomerID      string `gorm:"type:varchar(64)"`
	StripeSubscriptionID  string `gorm:"type:varchar(64)"`
	StripePaymentMethodID string `gorm:"type:varchar(64)"`
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&DailyCheckin{},
		&EMEResult{},
		&Intervention{},
		&PhraseHistory{},
		&QuizResult{},
		&Subscription{},
	); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}
