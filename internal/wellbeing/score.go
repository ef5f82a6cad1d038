// Package wellbeing holds the two deterministic calculators behind the
// daily check-in flow: the EME score and the consecutive-day streak.
package wellbeing

import "math"

// Ratings are the five self-reported values of a daily check-in, each 0-4.
// Mood, Energy and Sleep are rated higher-is-better; Stress and
// SelfCriticism higher-is-worse.
type Ratings struct {
	Mood          int
	Stress        int
	Energy        int
	Sleep         int
	SelfCriticism int
}

// Score maps a check-in to the 0-10 EME score. Weighted linear combination
// rescaled from a 30-point maximum; the final clamp keeps out-of-range
// inputs from leaking past the bound.
func Score(r Ratings) int {
	moodScore := float64(r.Mood) * 2            // 0-8
	energyScore := float64(r.Energy) * 1.5      // 0-6
	sleepScore := float64(r.Sleep)              // 0-4
	stressScore := float64(4-r.Stress) * 1.5    // 0-6, inverted
	criticismScore := float64(4-r.SelfCriticism) * 1.5 // 0-6, inverted

	total := moodScore + energyScore + sleepScore + stressScore + criticismScore
	normalized := int(math.Round(total / 30 * 10))

	if normalized < 0 {
		return 0
	}
	if normalized > 10 {
		return 10
	}
	return normalized
}
