package domain

import (
	"time"
)

// EME is the derived daily wellbeing result as the API returns it. Source
// tells whether the phrase/insight came from the model or from fallback
// content.
type EME struct {
	ID      uint   `json:"id,omitempty"`
	Date    string `json:"date,omitempty"`
	Score   int    `json:"score"`
	Phrase  string `json:"phrase"`
	Insight string `json:"insight"`
	Source  string `json:"source"`
}

// CheckinOutcome is the full result of submitting a daily check-in.
type CheckinOutcome struct {
	Success bool `json:"success"`
	EME     EME  `json:"eme"`
	Streak  int  `json:"streak"`
}

// HistoryEntry pairs one day's check-in with its derived result.
type HistoryEntry struct {
	Date          string `json:"date"`
	Mood          int    `json:"mood"`
	Stress        int    `json:"stress"`
	Energy        int    `json:"energy"`
	Sleep         int    `json:"sleep"`
	SelfCriticism int    `json:"selfCriticism"`
	Score         int    `json:"score"`
	Phrase        string `json:"phrase,omitempty"`
	Insight       string `json:"insight,omitempty"`
}

// History is the recent check-in timeline plus the current streak.
type History struct {
	Entries []HistoryEntry `json:"entries"`
	Streak  int            `json:"streak"`
}

// RadarPattern is one identified emotional pattern.
type RadarPattern struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Intensity   string `json:"intensity"`
}

// PatternReport is the radar endpoint's response.
type PatternReport struct {
	Patterns []RadarPattern `json:"patterns"`
	Source   string         `json:"source"`
}

// QuizQuestion is one entry of the static onboarding catalogue.
type QuizQuestion struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// QuizAnalysis is the onboarding quiz outcome.
type QuizAnalysis struct {
	Patterns []string `json:"patterns"`
	Score    int      `json:"score"`
	Source   string   `json:"source"`
}

// Intervention is a generated 1-3 minute activity.
type Intervention struct {
	ID           uint     `json:"id,omitempty"`
	Date         string   `json:"date,omitempty"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Duration     int      `json:"duration"`
	Instructions []string `json:"instructions"`
	Completed    bool     `json:"completed"`
	Source       string   `json:"source"`
}

// SubscriptionStatus is the lazily evaluated billing state for one user.
type SubscriptionStatus struct {
	Status                string     `json:"status"`
	HasActiveSubscription bool       `json:"hasActiveSubscription"`
	TrialStart            *time.Time `json:"trialStart,omitempty"`
	TrialEnd              *time.Time `json:"trialEnd,omitempty"`
	DaysRemaining         *int       `json:"daysRemaining,omitempty"`
}

// TrialRequest carries the card details collected by the trial form.
type TrialRequest struct {
	UserID     string
	Email      string
	CardNumber string
	CardExpiry string // "MM/YY"
	CardCVC    string
	CardName   string
}

// TrialStart reports a successfully opened trial.
type TrialStart struct {
	TrialEnd time.Time `json:"trialEndDate"`
}
