package engine

import (
	"fmt"
	"strings"

	"github.com/habitd/habitd/models"
)

// ValidateGoal checks that the goal fields relevant to the habit's type are
// present and coherent. Irrelevant fields are ignored rather than rejected,
// so habits survive type changes without cleanup migrations.
func ValidateGoal(h models.Habit) error {
	if !h.Type.Valid() {
		return &ConfigurationError{Field: "type", Reason: fmt.Sprintf("has unknown value %q", h.Type)}
	}
	if h.Frequency != "" && !h.Frequency.Valid() {
		return &ConfigurationError{Field: "frequency", Reason: fmt.Sprintf("has unknown value %q", h.Frequency)}
	}

	switch h.Frequency {
	case models.FrequencyWeekly:
		if h.GoalPerWeek < 1 || h.GoalPerWeek > 7 {
			return &ConfigurationError{Field: "goal_per_week", Reason: "must be between 1 and 7"}
		}
	case models.FrequencySpecificDays:
		if err := validateScheduledDays(h.ScheduledDays); err != nil {
			return err
		}
	}

	switch h.Type {
	case models.HabitQuantity, models.HabitDuration:
		if h.GoalValue == nil {
			return &ConfigurationError{Field: "goal_value", Reason: "is required"}
		}
		if *h.GoalValue < 0 {
			return &ConfigurationError{Field: "goal_value", Reason: "must not be negative"}
		}
		if h.GoalDirection != models.DirectionAtLeast && h.GoalDirection != models.DirectionNoMoreThan {
			return &ConfigurationError{Field: "goal_direction", Reason: "must be at_least or no_more_than"}
		}
	case models.HabitSchedule:
		if h.GoalDirection != models.DirectionBy && h.GoalDirection != models.DirectionAfter {
			return &ConfigurationError{Field: "goal_direction", Reason: "must be by or after"}
		}
		times, err := h.GoalTimes()
		if err != nil {
			return &ConfigurationError{Field: "goal_times_by_day", Reason: "is not valid JSON"}
		}
		for key, value := range times {
			if !models.IsWeekdayKey(key) {
				return &ConfigurationError{Field: "goal_times_by_day", Reason: fmt.Sprintf("has unknown weekday %q", key)}
			}
			if _, _, err := splitClock(value); err != nil {
				return &ConfigurationError{Field: "goal_times_by_day", Reason: fmt.Sprintf("has invalid time for %s", key)}
			}
		}
		if h.GoalTime != "" {
			if _, _, err := splitClock(h.GoalTime); err != nil {
				return &ConfigurationError{Field: "goal_time", Reason: "must be HH:MM"}
			}
		} else if len(times) < len(models.WeekdayKeys) {
			return &ConfigurationError{Field: "goal_time", Reason: "is required unless goal_times_by_day covers every weekday"}
		}
	case models.HabitAvoidance:
		if h.ToleranceMaxFailures < 0 {
			return &ConfigurationError{Field: "tolerance_max_failures", Reason: "must not be negative"}
		}
		if h.ToleranceWindow != "" &&
			h.ToleranceWindow != models.ToleranceWeekly && h.ToleranceWindow != models.ToleranceMonthly {
			return &ConfigurationError{Field: "tolerance_window", Reason: "must be weekly or monthly"}
		}
		if h.ToleranceMaxFailures > 0 && h.ToleranceWindow == "" {
			return &ConfigurationError{Field: "tolerance_window", Reason: "is required when tolerance_max_failures is set"}
		}
	}
	return nil
}

func validateScheduledDays(csv string) error {
	found := false
	for _, part := range strings.Split(csv, ",") {
		key := strings.ToLower(strings.TrimSpace(part))
		if key == "" {
			continue
		}
		if !models.IsWeekdayKey(key) {
			return &ConfigurationError{Field: "scheduled_days", Reason: fmt.Sprintf("has unknown weekday %q", key)}
		}
		found = true
	}
	if !found {
		return &ConfigurationError{Field: "scheduled_days", Reason: "must list at least one weekday"}
	}
	return nil
}

// GoalTimeFor resolves the effective goal time for a schedule habit on a
// given day. A per-weekday override wins over the base goal time.
func GoalTimeFor(h models.Habit, day string) (string, error) {
	times, err := h.GoalTimes()
	if err != nil {
		return "", &ConfigurationError{Field: "goal_times_by_day", Reason: "is not valid JSON"}
	}
	if len(times) > 0 {
		key, err := WeekdayOf(day)
		if err != nil {
			return "", err
		}
		if t, ok := times[key]; ok {
			return t, nil
		}
	}
	if h.GoalTime != "" {
		return h.GoalTime, nil
	}
	return "", &ConfigurationError{Field: "goal_time", Reason: "is not set"}
}
