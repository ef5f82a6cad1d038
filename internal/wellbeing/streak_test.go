package wellbeing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStreak_ConsecutiveDays(t *testing.T) {
	dates := []string{"2024-01-05", "2024-01-04", "2024-01-03"}
	assert.Equal(t, 3, Streak(dates, day("2024-01-05")))
}

func TestStreak_GapBreaksCount(t *testing.T) {
	dates := []string{"2024-01-05", "2024-01-03"}
	assert.Equal(t, 1, Streak(dates, day("2024-01-05")))
}

func TestStreak_NoCheckinToday(t *testing.T) {
	dates := []string{"2024-01-04", "2024-01-03"}
	assert.Equal(t, 0, Streak(dates, day("2024-01-05")))
}

func TestStreak_EmptyHistory(t *testing.T) {
	assert.Equal(t, 0, Streak(nil, day("2024-01-05")))
	assert.Equal(t, 0, Streak([]string{}, day("2024-01-05")))
}

func TestStreak_UnsortedInput(t *testing.T) {
	dates := []string{"2024-01-03", "2024-01-05", "2024-01-04"}
	assert.Equal(t, 3, Streak(dates, day("2024-01-05")))
}

func TestStreak_DuplicatesIgnored(t *testing.T) {
	dates := []string{"2024-01-05", "2024-01-05", "2024-01-04"}
	assert.Equal(t, 2, Streak(dates, day("2024-01-05")))
}

func TestStreak_OnlyToday(t *testing.T) {
	assert.Equal(t, 1, Streak([]string{"2024-01-05"}, day("2024-01-05")))
}

func TestStreak_CrossesMonthBoundary(t *testing.T) {
	dates := []string{"2024-02-01", "2024-01-31", "2024-01-30"}
	assert.Equal(t, 3, Streak(dates, day("2024-02-01")))
}
