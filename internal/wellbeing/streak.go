package wellbeing

import (
	"sort"
	"time"
)

// DayFormat is the calendar-day layout used for check-in dates everywhere.
const DayFormat = "2006-01-02"

// Day renders t as a calendar day.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// DayStart truncates t to midnight UTC of its calendar day, the canonical
// value stored in date columns.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Streak counts consecutive calendar days with a check-in, ending at today.
// The input may be unsorted and may contain duplicates. The floor is 0: an
// empty history, or a history whose newest day is not today, is no streak.
func Streak(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(dates))
	unique := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		unique = append(unique, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(unique)))

	if unique[0] != Day(today) {
		return 0
	}

	streak := 1
	for i := 1; i < len(unique); i++ {
		prev, err := time.Parse(DayFormat, unique[i-1])
		if err != nil {
			break
		}
		cur, err := time.Parse(DayFormat, unique[i])
		if err != nil {
			break
		}
		if prev.Sub(cur) != 24*time.Hour {
			break
		}
		streak++
	}

	return streak
}
