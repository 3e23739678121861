package engine

import (
	"strings"

	"github.com/habitd/habitd/models"
)

// UserStats aggregates streaks and logging totals across a user's habits.
// Archived habits still contribute their logged days but are excluded from
// the streak figures.
type UserStats struct {
	TotalStreaks      int     `json:"total_streaks"`
	ActiveStreaks     int     `json:"active_streaks"`
	AverageStreak     float64 `json:"average_streak"`
	LongestEverStreak int     `json:"longest_ever_streak"`
	TotalDaysLogged   int     `json:"total_days_logged"`
}

// AggregateStats folds per-habit streaks into user-level totals.
// TotalStreaks sums the current streaks, ActiveStreaks counts habits with a
// current streak of at least one day, and AverageStreak is the mean current
// streak across non-archived habits.
func AggregateStats(habits []models.Habit, eventsByHabit map[uint][]models.HabitEvent, today string, lookback int) (UserStats, error) {
	var stats UserStats
	tracked := 0
	for _, h := range habits {
		events := eventsByHabit[h.ID]
		stats.TotalDaysLogged += countDays(events)
		if h.Archived {
			continue
		}
		s, err := ComputeStreaks(h, events, today, lookback)
		if err != nil {
			return UserStats{}, err
		}
		stats.TotalStreaks += s.Current
		if s.Current >= 1 {
			stats.ActiveStreaks++
		}
		if s.Longest > stats.LongestEverStreak {
			stats.LongestEverStreak = s.Longest
		}
		tracked++
	}
	if tracked > 0 {
		stats.AverageStreak = float64(stats.TotalStreaks) / float64(tracked)
	}
	return stats, nil
}

func countDays(events []models.HabitEvent) int {
	seen := map[string]bool{}
	for _, e := range events {
		seen[e.Date] = true
	}
	return len(seen)
}

// WeekProgress summarizes a habit's current calendar week, Monday start.
type WeekProgress struct {
	WeekStart string `json:"week_start"`
	Completed int    `json:"completed"`
	Goal      int    `json:"goal"`
	Met       bool   `json:"met"`
}

// WeeklyProgress counts the Completed days of the week containing today
// against the habit's weekly goal. Daily habits aim for all seven days,
// specific-day habits for their scheduled days.
func WeeklyProgress(h models.Habit, events []models.HabitEvent, today string) (WeekProgress, error) {
	start, err := WeekStart(today)
	if err != nil {
		return WeekProgress{}, err
	}
	anchor, err := ParseDay(start)
	if err != nil {
		return WeekProgress{}, err
	}

	progress := WeekProgress{WeekStart: start}
	outcomes := dayOutcomes(h, events)
	for i := 0; i < 7; i++ {
		day := anchor.AddDate(0, 0, i).Format(DayFormat)
		if outcomes[day] == DayCompleted {
			progress.Completed++
		}
	}

	switch h.Frequency {
	case models.FrequencyWeekly:
		progress.Goal = h.GoalPerWeek
	case models.FrequencySpecificDays:
		progress.Goal = len(h.ScheduledDaySet())
	default:
		progress.Goal = 7
	}
	progress.Met = progress.Goal > 0 && progress.Completed >= progress.Goal
	return progress, nil
}

// ToleranceReport summarizes relapses of an avoidance habit inside its
// configured tolerance window.
type ToleranceReport struct {
	Window      models.ToleranceWindow `json:"window"`
	WindowStart string                 `json:"window_start"`
	MaxAllowed  int                    `json:"max_allowed"`
	Relapses    int                    `json:"relapses"`
	Within      bool                   `json:"within_tolerance"`
}

// ToleranceStatus counts relapse events inside the current tolerance
// window. The second return is false when the habit carries no tolerance
// configuration. Each Failed event counts individually, even when several
// fall on the same day.
func ToleranceStatus(h models.Habit, events []models.HabitEvent, today string) (ToleranceReport, bool, error) {
	if h.Type != models.HabitAvoidance || h.ToleranceWindow == "" {
		return ToleranceReport{}, false, nil
	}

	report := ToleranceReport{Window: h.ToleranceWindow, MaxAllowed: h.ToleranceMaxFailures}
	switch h.ToleranceWindow {
	case models.ToleranceMonthly:
		month, err := MonthOf(today)
		if err != nil {
			return ToleranceReport{}, false, err
		}
		report.WindowStart = month + "-01"
		for _, e := range events {
			if e.Status == models.StatusFailed && strings.HasPrefix(e.Date, month) {
				report.Relapses++
			}
		}
	default: // weekly
		start, err := WeekStart(today)
		if err != nil {
			return ToleranceReport{}, false, err
		}
		end, err := AddDays(start, 6)
		if err != nil {
			return ToleranceReport{}, false, err
		}
		report.WindowStart = start
		for _, e := range events {
			if e.Status == models.StatusFailed && e.Date >= start && e.Date <= end {
				report.Relapses++
			}
		}
	}
	report.Within = report.Relapses <= report.MaxAllowed
	return report, true, nil
}
