package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitd/habitd/models"
)

func TestAggregateStats(t *testing.T) {
	reading := models.Habit{ID: 1, Type: models.HabitSimple}
	running := models.Habit{ID: 2, Type: models.HabitSimple}
	retired := models.Habit{ID: 3, Type: models.HabitSimple, Archived: true}

	eventsByHabit := map[uint][]models.HabitEvent{
		1: {
			eventOn(offsetDay(t, -4), models.StatusFailed),
			eventOn(offsetDay(t, -3), models.StatusCompleted),
			eventOn(offsetDay(t, -2), models.StatusCompleted),
			eventOn(offsetDay(t, -1), models.StatusCompleted),
		},
		2: {
			eventOn(offsetDay(t, -20), models.StatusCompleted),
			eventOn(offsetDay(t, -19), models.StatusCompleted),
			eventOn(offsetDay(t, -1), models.StatusFailed),
		},
		3: {
			eventOn(offsetDay(t, -14), models.StatusCompleted),
			eventOn(offsetDay(t, -13), models.StatusCompleted),
			eventOn(offsetDay(t, -12), models.StatusCompleted),
			eventOn(offsetDay(t, -11), models.StatusCompleted),
			eventOn(offsetDay(t, -10), models.StatusCompleted),
		},
	}

	stats, err := AggregateStats([]models.Habit{reading, running, retired}, eventsByHabit, testToday, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalStreaks)
	assert.Equal(t, 1, stats.ActiveStreaks)
	assert.Equal(t, 1.5, stats.AverageStreak)
	assert.Equal(t, 3, stats.LongestEverStreak)
	assert.Equal(t, 12, stats.TotalDaysLogged)
}

func TestAggregateStatsEmpty(t *testing.T) {
	stats, err := AggregateStats(nil, nil, testToday, 0)
	require.NoError(t, err)
	assert.Equal(t, UserStats{}, stats)
}

func TestWeeklyProgress(t *testing.T) {
	h := models.Habit{Type: models.HabitSimple, Frequency: models.FrequencyWeekly, GoalPerWeek: 3}
	events := []models.HabitEvent{
		eventOn("2024-03-18", models.StatusCompleted), // Monday of the current week
		eventOn("2024-03-19", models.StatusCompleted),
		eventOn("2024-03-15", models.StatusCompleted), // previous week, ignored
	}

	progress, err := WeeklyProgress(h, events, testToday)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18", progress.WeekStart)
	assert.Equal(t, 2, progress.Completed)
	assert.Equal(t, 3, progress.Goal)
	assert.False(t, progress.Met)

	events = append(events, eventOn(testToday, models.StatusCompleted))
	progress, err = WeeklyProgress(h, events, testToday)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Completed)
	assert.True(t, progress.Met)
}

func TestWeeklyProgressGoalByFrequency(t *testing.T) {
	daily := models.Habit{Type: models.HabitSimple, Frequency: models.FrequencyDaily}
	progress, err := WeeklyProgress(daily, nil, testToday)
	require.NoError(t, err)
	assert.Equal(t, 7, progress.Goal)

	scheduled := models.Habit{
		Type:          models.HabitSimple,
		Frequency:     models.FrequencySpecificDays,
		ScheduledDays: "mon,wed,fri",
	}
	progress, err = WeeklyProgress(scheduled, nil, testToday)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.Goal)
}

func TestToleranceStatusWeekly(t *testing.T) {
	h := models.Habit{
		Type:                 models.HabitAvoidance,
		ToleranceWindow:      models.ToleranceWeekly,
		ToleranceMaxFailures: 2,
	}
	events := []models.HabitEvent{
		eventOn("2024-03-18", models.StatusFailed),
		eventOn("2024-03-18", models.StatusFailed), // two slips on one day both count
		eventOn("2024-03-15", models.StatusFailed), // previous week, ignored
	}

	report, ok, err := ToleranceStatus(h, events, testToday)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-18", report.WindowStart)
	assert.Equal(t, 2, report.Relapses)
	assert.True(t, report.Within)

	events = append(events, eventOn("2024-03-19", models.StatusFailed))
	report, ok, err = ToleranceStatus(h, events, testToday)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, report.Relapses)
	assert.False(t, report.Within)
}

func TestToleranceStatusMonthly(t *testing.T) {
	h := models.Habit{
		Type:                 models.HabitAvoidance,
		ToleranceWindow:      models.ToleranceMonthly,
		ToleranceMaxFailures: 5,
	}
	events := []models.HabitEvent{
		eventOn("2024-03-01", models.StatusFailed),
		eventOn("2024-03-10", models.StatusFailed),
		eventOn("2024-02-28", models.StatusFailed), // previous month, ignored
	}

	report, ok, err := ToleranceStatus(h, events, testToday)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", report.WindowStart)
	assert.Equal(t, 2, report.Relapses)
	assert.True(t, report.Within)
}

func TestToleranceStatusNotConfigured(t *testing.T) {
	_, ok, err := ToleranceStatus(models.Habit{Type: models.HabitAvoidance}, nil, testToday)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ToleranceStatus(models.Habit{Type: models.HabitSimple}, nil, testToday)
	require.NoError(t, err)
	assert.False(t, ok)
}
