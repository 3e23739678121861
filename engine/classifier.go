package engine

import (
	"math"

	"github.com/habitd/habitd/models"
)

// Classify judges a logged value against a habit's goal and returns the
// resulting event status. The day matters only for schedule habits with
// per-weekday goal times. Avoidance habits are never classified; their day
// status is resolved from recorded events instead.
func Classify(h models.Habit, day string, value *float64) (models.EventStatus, error) {
	if err := ValidateGoal(h); err != nil {
		return "", err
	}

	switch h.Type {
	case models.HabitSimple:
		return models.StatusCompleted, nil
	case models.HabitAvoidance:
		return "", &ConfigurationError{Field: "type", Reason: "avoidance habits cannot be classified from a value"}
	}

	if value == nil {
		return "", &ValidationError{Field: "value", Reason: "is required to judge this habit"}
	}
	if err := checkValue(h, *value); err != nil {
		return "", err
	}

	switch h.Type {
	case models.HabitQuantity, models.HabitDuration:
		met := *value >= *h.GoalValue
		if h.GoalDirection == models.DirectionNoMoreThan {
			met = *value <= *h.GoalValue
		}
		if met {
			return models.StatusCompleted, nil
		}
		return models.StatusFailed, nil
	default: // schedule
		goalTime, err := GoalTimeFor(h, day)
		if err != nil {
			return "", err
		}
		goal, err := TimeStringToHours(goalTime)
		if err != nil {
			return "", &ConfigurationError{Field: "goal_time", Reason: "must be HH:MM"}
		}
		met := *value <= goal
		if h.GoalDirection == models.DirectionAfter {
			met = *value >= goal
		}
		if met {
			return models.StatusCompleted, nil
		}
		return models.StatusFailed, nil
	}
}

// ValidateLoggedValue checks a value accompanying an explicit status write,
// where no classification happens but the record must still make sense.
// Quantity, duration and schedule habits need a value on any non-skipped
// day; skipped days may omit it.
func ValidateLoggedValue(h models.Habit, status models.EventStatus, value *float64) error {
	if value == nil {
		switch h.Type {
		case models.HabitQuantity, models.HabitDuration, models.HabitSchedule:
			if status != models.StatusSkipped {
				return &ValidationError{Field: "value", Reason: "is required for this habit"}
			}
		}
		return nil
	}
	return checkValue(h, *value)
}

func checkValue(h models.Habit, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &ValidationError{Field: "value", Reason: "must be a finite number"}
	}
	switch h.Type {
	case models.HabitQuantity, models.HabitDuration:
		if value < 0 {
			return &ValidationError{Field: "value", Reason: "must not be negative"}
		}
	case models.HabitSchedule:
		if value < 0 || value >= 24 {
			return &ValidationError{Field: "value", Reason: "must be a time of day between 0 and 24 hours"}
		}
	}
	return nil
}
