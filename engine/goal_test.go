package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitd/habitd/models"
)

func requireConfigError(t *testing.T, err error, field string) {
	t.Helper()
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, field, ce.Field)
}

func TestValidateGoalByType(t *testing.T) {
	cases := []struct {
		name      string
		habit     models.Habit
		wantField string
	}{
		{name: "simple needs nothing", habit: models.Habit{Type: models.HabitSimple}},
		{name: "unknown type", habit: models.Habit{Type: "reminder"}, wantField: "type"},
		{
			name:  "quantity valid",
			habit: models.Habit{Type: models.HabitQuantity, GoalValue: fptr(10), GoalDirection: models.DirectionAtLeast},
		},
		{
			name:      "quantity missing value",
			habit:     models.Habit{Type: models.HabitQuantity, GoalDirection: models.DirectionAtLeast},
			wantField: "goal_value",
		},
		{
			name:      "quantity negative value",
			habit:     models.Habit{Type: models.HabitQuantity, GoalValue: fptr(-1), GoalDirection: models.DirectionAtLeast},
			wantField: "goal_value",
		},
		{
			name:      "quantity wrong direction",
			habit:     models.Habit{Type: models.HabitQuantity, GoalValue: fptr(10), GoalDirection: models.DirectionBy},
			wantField: "goal_direction",
		},
		{
			name:  "duration valid",
			habit: models.Habit{Type: models.HabitDuration, GoalValue: fptr(1.5), GoalDirection: models.DirectionNoMoreThan},
		},
		{
			name:  "schedule valid",
			habit: models.Habit{Type: models.HabitSchedule, GoalTime: "09:00", GoalDirection: models.DirectionBy},
		},
		{
			name:      "schedule wrong direction",
			habit:     models.Habit{Type: models.HabitSchedule, GoalTime: "09:00", GoalDirection: models.DirectionAtLeast},
			wantField: "goal_direction",
		},
		{
			name:      "schedule bad time",
			habit:     models.Habit{Type: models.HabitSchedule, GoalTime: "25:00", GoalDirection: models.DirectionBy},
			wantField: "goal_time",
		},
		{
			name:      "schedule missing time",
			habit:     models.Habit{Type: models.HabitSchedule, GoalDirection: models.DirectionBy},
			wantField: "goal_time",
		},
		{
			name: "schedule complete weekday map needs no base time",
			habit: models.Habit{
				Type:          models.HabitSchedule,
				GoalDirection: models.DirectionBy,
				GoalTimesByDay: `{"mon":"06:00","tue":"06:00","wed":"06:00","thu":"06:00",` +
					`"fri":"06:00","sat":"08:00","sun":"08:00"}`,
			},
		},
		{
			name: "schedule partial weekday map needs base time",
			habit: models.Habit{
				Type:           models.HabitSchedule,
				GoalDirection:  models.DirectionBy,
				GoalTimesByDay: `{"mon":"06:00"}`,
			},
			wantField: "goal_time",
		},
		{
			name: "schedule weekday map bad json",
			habit: models.Habit{
				Type:           models.HabitSchedule,
				GoalDirection:  models.DirectionBy,
				GoalTime:       "09:00",
				GoalTimesByDay: `{"mon":`,
			},
			wantField: "goal_times_by_day",
		},
		{
			name: "schedule weekday map unknown day",
			habit: models.Habit{
				Type:           models.HabitSchedule,
				GoalDirection:  models.DirectionBy,
				GoalTime:       "09:00",
				GoalTimesByDay: `{"monday":"06:00"}`,
			},
			wantField: "goal_times_by_day",
		},
		{name: "avoidance plain", habit: models.Habit{Type: models.HabitAvoidance}},
		{
			name:  "avoidance with tolerance",
			habit: models.Habit{Type: models.HabitAvoidance, ToleranceWindow: models.ToleranceWeekly, ToleranceMaxFailures: 2},
		},
		{
			name:      "avoidance tolerance without window",
			habit:     models.Habit{Type: models.HabitAvoidance, ToleranceMaxFailures: 2},
			wantField: "tolerance_window",
		},
		{
			name:      "avoidance unknown window",
			habit:     models.Habit{Type: models.HabitAvoidance, ToleranceWindow: "yearly"},
			wantField: "tolerance_window",
		},
		{
			name:      "avoidance negative tolerance",
			habit:     models.Habit{Type: models.HabitAvoidance, ToleranceMaxFailures: -1},
			wantField: "tolerance_max_failures",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGoal(tc.habit)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}
			requireConfigError(t, err, tc.wantField)
		})
	}
}

func TestValidateGoalFrequency(t *testing.T) {
	base := models.Habit{Type: models.HabitSimple}

	h := base
	h.Frequency = models.FrequencyWeekly
	requireConfigError(t, ValidateGoal(h), "goal_per_week")

	h.GoalPerWeek = 3
	assert.NoError(t, ValidateGoal(h))

	h.GoalPerWeek = 8
	requireConfigError(t, ValidateGoal(h), "goal_per_week")

	h = base
	h.Frequency = models.FrequencySpecificDays
	requireConfigError(t, ValidateGoal(h), "scheduled_days")

	h.ScheduledDays = "mon,wed,fri"
	assert.NoError(t, ValidateGoal(h))

	h.ScheduledDays = "mon,funday"
	requireConfigError(t, ValidateGoal(h), "scheduled_days")

	h = base
	h.Frequency = "hourly"
	requireConfigError(t, ValidateGoal(h), "frequency")
}

func TestGoalTimeFor(t *testing.T) {
	h := models.Habit{
		Type:           models.HabitSchedule,
		GoalDirection:  models.DirectionBy,
		GoalTime:       "09:00",
		GoalTimesByDay: `{"mon":"06:00"}`,
	}

	monday := offsetDay(t, -2) // 2024-03-18
	got, err := GoalTimeFor(h, monday)
	require.NoError(t, err)
	assert.Equal(t, "06:00", got)

	tuesday := offsetDay(t, -1)
	got, err = GoalTimeFor(h, tuesday)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got)

	h.GoalTime = ""
	_, err = GoalTimeFor(h, tuesday)
	requireConfigError(t, err, "goal_time")
}
