package engine

import (
	"sort"

	"github.com/habitd/habitd/models"
)

// DefaultLookbackDays bounds the backwards scan of the current-streak
// computation. Days beyond the horizon are never visited.
const DefaultLookbackDays = 30

// StreakStats holds the two streak figures shown for a habit.
type StreakStats struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// ComputeStreaks derives the current and longest streaks from a habit's
// event history. The current streak walks backwards from today: Completed
// days extend it, a Failed day ends it, and Skipped or unlogged days are
// neutral. The longest streak scans the whole history in day order with the
// same neutrality rules. A non-positive lookback selects the default.
func ComputeStreaks(h models.Habit, events []models.HabitEvent, today string, lookback int) (StreakStats, error) {
	if lookback <= 0 {
		lookback = DefaultLookbackDays
	}
	anchor, err := ParseDay(today)
	if err != nil {
		return StreakStats{}, err
	}
	outcomes := dayOutcomes(h, events)

	var stats StreakStats
	day := anchor
walk:
	for i := 0; i < lookback; i++ {
		switch outcomes[day.Format(DayFormat)] {
		case DayCompleted:
			stats.Current++
		case DayFailed:
			break walk
		}
		day = day.AddDate(0, 0, -1)
	}

	days := make([]string, 0, len(outcomes))
	for d := range outcomes {
		days = append(days, d)
	}
	sort.Strings(days)
	run := 0
	for _, d := range days {
		switch outcomes[d] {
		case DayCompleted:
			run++
			if run > stats.Longest {
				stats.Longest = run
			}
		case DayFailed:
			run = 0
		}
	}
	return stats, nil
}
