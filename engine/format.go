package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/habitd/habitd/models"
)

// Display fallbacks used only when a goal value is missing. They never
// affect classification, which fails fast on incomplete goals instead.
const (
	fallbackGoalUnits = 10.0
	fallbackGoalHours = 2.0
	fallbackGoalTime  = "09:00"
)

// TimeStringToHours converts a 24-hour "HH:MM" string into fractional
// hours, e.g. "14:30" -> 14.5.
func TimeStringToHours(s string) (float64, error) {
	h, m, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	return float64(h) + float64(m)/60, nil
}

// HoursToTimeString converts fractional hours into a 24-hour "HH:MM"
// string, rounding to the nearest minute. Values wrap at midnight.
func HoursToTimeString(hours float64) string {
	total := int(math.Round(hours * 60))
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatTimeOfDay renders a 24-hour "HH:MM" string in compact 12-hour
// form: "14:30" -> "2:30pm", "09:00" -> "9am", "00:15" -> "12:15am".
func FormatTimeOfDay(s string) (string, error) {
	h, m, err := splitClock(s)
	if err != nil {
		return "", err
	}
	suffix := "am"
	if h >= 12 {
		suffix = "pm"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	if m == 0 {
		return fmt.Sprintf("%d%s", display, suffix), nil
	}
	return fmt.Sprintf("%d:%02d%s", display, m, suffix), nil
}

// FormatDuration renders fractional hours as "1h 30m", "2h" or "45m".
func FormatDuration(hours float64) string {
	total := int(math.Round(hours * 60))
	if total < 0 {
		total = 0
	}
	h, m := total/60, total%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// FormatValue renders a logged or goal value without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DescribeGoal builds a short human-readable goal label such as
// "At least 10 pages" or "By 9am". It is display-only and substitutes
// fallbacks for missing values rather than failing.
func DescribeGoal(h models.Habit) string {
	switch h.Type {
	case models.HabitQuantity:
		goal := fallbackGoalUnits
		if h.GoalValue != nil {
			goal = *h.GoalValue
		}
		unit := h.Unit
		if unit == "" {
			unit = "times"
		}
		return fmt.Sprintf("%s %s %s", directionLabel(h.GoalDirection), FormatValue(goal), unit)
	case models.HabitDuration:
		goal := fallbackGoalHours
		if h.GoalValue != nil {
			goal = *h.GoalValue
		}
		return fmt.Sprintf("%s %s", directionLabel(h.GoalDirection), FormatDuration(goal))
	case models.HabitSchedule:
		goalTime := h.GoalTime
		if goalTime == "" {
			goalTime = fallbackGoalTime
		}
		display, err := FormatTimeOfDay(goalTime)
		if err != nil {
			display, _ = FormatTimeOfDay(fallbackGoalTime)
		}
		if h.GoalDirection == models.DirectionAfter {
			return fmt.Sprintf("After %s", display)
		}
		return fmt.Sprintf("By %s", display)
	case models.HabitAvoidance:
		if h.ToleranceWindow != "" {
			per := "week"
			if h.ToleranceWindow == models.ToleranceMonthly {
				per = "month"
			}
			return fmt.Sprintf("At most %d per %s", h.ToleranceMaxFailures, per)
		}
		return "Avoid entirely"
	default:
		return "Complete once"
	}
}

func directionLabel(d models.GoalDirection) string {
	if d == models.DirectionNoMoreThan {
		return "No more than"
	}
	return "At least"
}

// splitClock parses "HH:MM" (or "H:MM") into hour and minute components.
func splitClock(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid time %q: hour out of range", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q: minute out of range", s)
	}
	return h, m, nil
}
