package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitd/habitd/models"
)

func classify(t *testing.T, h models.Habit, value float64) models.EventStatus {
	t.Helper()
	status, err := Classify(h, testToday, &value)
	require.NoError(t, err)
	return status
}

func TestClassifySimple(t *testing.T) {
	h := models.Habit{Type: models.HabitSimple}
	status, err := Classify(h, testToday, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, status)
}

func TestClassifyDurationAtLeast(t *testing.T) {
	h := models.Habit{Type: models.HabitDuration, GoalValue: fptr(30), GoalDirection: models.DirectionAtLeast}

	assert.Equal(t, models.StatusCompleted, classify(t, h, 45))
	assert.Equal(t, models.StatusCompleted, classify(t, h, 30)) // meeting the goal exactly counts
	assert.Equal(t, models.StatusFailed, classify(t, h, 20))
}

func TestClassifyQuantityNoMoreThan(t *testing.T) {
	h := models.Habit{Type: models.HabitQuantity, GoalValue: fptr(2), GoalDirection: models.DirectionNoMoreThan}

	assert.Equal(t, models.StatusCompleted, classify(t, h, 1))
	assert.Equal(t, models.StatusCompleted, classify(t, h, 2))
	assert.Equal(t, models.StatusFailed, classify(t, h, 3))
}

func TestClassifyDurationNoMoreThan(t *testing.T) {
	h := models.Habit{Type: models.HabitDuration, GoalValue: fptr(2), GoalDirection: models.DirectionNoMoreThan}

	assert.Equal(t, models.StatusCompleted, classify(t, h, 1.8))
	assert.Equal(t, models.StatusFailed, classify(t, h, 2.5))
}

func TestClassifyAtLeastMonotone(t *testing.T) {
	h := models.Habit{Type: models.HabitQuantity, GoalValue: fptr(10), GoalDirection: models.DirectionAtLeast}

	completedSeen := false
	for v := 0.0; v <= 20; v += 0.5 {
		status := classify(t, h, v)
		if status == models.StatusCompleted {
			completedSeen = true
		}
		if completedSeen {
			assert.Equal(t, models.StatusCompleted, status, "value %v regressed after goal was met", v)
		}
	}
	assert.True(t, completedSeen)
}

func TestClassifyNoMoreThanMonotone(t *testing.T) {
	h := models.Habit{Type: models.HabitQuantity, GoalValue: fptr(10), GoalDirection: models.DirectionNoMoreThan}

	failedSeen := false
	for v := 0.0; v <= 20; v += 0.5 {
		status := classify(t, h, v)
		if status == models.StatusFailed {
			failedSeen = true
		}
		if failedSeen {
			assert.Equal(t, models.StatusFailed, status, "value %v passed after the cap was exceeded", v)
		}
	}
	assert.True(t, failedSeen)
}

func TestClassifyScheduleBy(t *testing.T) {
	h := models.Habit{Type: models.HabitSchedule, GoalTime: "09:00", GoalDirection: models.DirectionBy}

	assert.Equal(t, models.StatusCompleted, classify(t, h, 8.5))
	assert.Equal(t, models.StatusCompleted, classify(t, h, 9))
	assert.Equal(t, models.StatusFailed, classify(t, h, 9.5))
}

func TestClassifyScheduleAfter(t *testing.T) {
	h := models.Habit{Type: models.HabitSchedule, GoalTime: "21:00", GoalDirection: models.DirectionAfter}

	assert.Equal(t, models.StatusCompleted, classify(t, h, 22))
	assert.Equal(t, models.StatusFailed, classify(t, h, 20.5))
}

func TestClassifyScheduleWeekdayOverride(t *testing.T) {
	h := models.Habit{
		Type:           models.HabitSchedule,
		GoalTime:       "09:00",
		GoalDirection:  models.DirectionBy,
		GoalTimesByDay: `{"wed":"07:00"}`,
	}

	value := fptr(8)
	status, err := Classify(h, testToday, value) // Wednesday, goal 07:00
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, status)

	status, err = Classify(h, offsetDay(t, -1), value) // Tuesday, base goal 09:00
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, status)
}

func TestClassifyRejectsAvoidance(t *testing.T) {
	h := models.Habit{Type: models.HabitAvoidance}
	_, err := Classify(h, testToday, fptr(1))
	requireConfigError(t, err, "type")
}

func TestClassifyErrors(t *testing.T) {
	h := models.Habit{Type: models.HabitQuantity, GoalValue: fptr(10), GoalDirection: models.DirectionAtLeast}

	_, err := Classify(h, testToday, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "value", ve.Field)

	_, err = Classify(h, testToday, fptr(-3))
	assert.ErrorAs(t, err, &ve)

	broken := models.Habit{Type: models.HabitQuantity, GoalDirection: models.DirectionAtLeast}
	_, err = Classify(broken, testToday, fptr(5))
	requireConfigError(t, err, "goal_value")

	schedule := models.Habit{Type: models.HabitSchedule, GoalTime: "09:00", GoalDirection: models.DirectionBy}
	_, err = Classify(schedule, testToday, fptr(25))
	assert.ErrorAs(t, err, &ve)
}

func TestValidateLoggedValue(t *testing.T) {
	h := models.Habit{Type: models.HabitDuration, GoalValue: fptr(1), GoalDirection: models.DirectionAtLeast}

	assert.NoError(t, ValidateLoggedValue(h, models.StatusCompleted, fptr(2)))
	assert.NoError(t, ValidateLoggedValue(h, models.StatusSkipped, nil))

	var ve *ValidationError
	assert.ErrorAs(t, ValidateLoggedValue(h, models.StatusCompleted, nil), &ve)
	assert.ErrorAs(t, ValidateLoggedValue(h, models.StatusFailed, nil), &ve)
	assert.ErrorAs(t, ValidateLoggedValue(h, models.StatusCompleted, fptr(-1)), &ve)

	simple := models.Habit{Type: models.HabitSimple}
	assert.NoError(t, ValidateLoggedValue(simple, models.StatusCompleted, nil))
}
