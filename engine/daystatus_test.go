package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitd/habitd/models"
)

func TestResolveDayWithoutEvents(t *testing.T) {
	h := models.Habit{Type: models.HabitSimple}

	res := ResolveDay(h, testToday, nil, testToday)
	assert.Equal(t, DayPending, res.Status)

	res = ResolveDay(h, offsetDay(t, -1), nil, testToday)
	assert.Equal(t, DayNotLogged, res.Status)

	res = ResolveDay(h, offsetDay(t, 3), nil, testToday)
	assert.Equal(t, DayNotLogged, res.Status)
}

func TestResolveDaySingleEvent(t *testing.T) {
	h := models.Habit{Type: models.HabitSimple}
	events := []models.HabitEvent{eventOn(testToday, models.StatusCompleted)}

	res := ResolveDay(h, testToday, events, testToday)
	assert.Equal(t, DayCompleted, res.Status)
	require.NotNil(t, res.Event)
	assert.Equal(t, models.StatusCompleted, res.Event.Status)
	assert.Empty(t, res.Relapses)
}

func TestResolveDayLatestUpdateWins(t *testing.T) {
	h := models.Habit{Type: models.HabitSimple}
	base := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)

	stale := eventOn(testToday, models.StatusFailed)
	stale.ID = 1
	stale.UpdatedAt = base

	fresh := eventOn(testToday, models.StatusSkipped)
	fresh.ID = 2
	fresh.UpdatedAt = base.Add(time.Hour)

	res := ResolveDay(h, testToday, []models.HabitEvent{fresh, stale}, testToday)
	assert.Equal(t, DaySkipped, res.Status)
	require.NotNil(t, res.Event)
	assert.Equal(t, uint(2), res.Event.ID)
}

func TestResolveDayAvoidanceRelapses(t *testing.T) {
	h := models.Habit{Type: models.HabitAvoidance}
	base := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	first := eventOn(testToday, models.StatusFailed)
	first.ID = 1
	first.CreatedAt = base

	second := eventOn(testToday, models.StatusFailed)
	second.ID = 2
	second.CreatedAt = base.Add(2 * time.Hour)

	res := ResolveDay(h, testToday, []models.HabitEvent{second, first}, testToday)
	assert.Equal(t, DayFailed, res.Status)
	assert.Nil(t, res.Event)
	require.Len(t, res.Relapses, 2)
	assert.Equal(t, uint(1), res.Relapses[0].ID)
	assert.Equal(t, uint(2), res.Relapses[1].ID)
}

func TestResolveDayAvoidanceCompletionSupersedes(t *testing.T) {
	h := models.Habit{Type: models.HabitAvoidance}

	events := []models.HabitEvent{
		eventOn(testToday, models.StatusFailed),
		eventOn(testToday, models.StatusCompleted),
		eventOn(testToday, models.StatusFailed),
	}

	res := ResolveDay(h, testToday, events, testToday)
	assert.Equal(t, DayCompleted, res.Status)
	require.NotNil(t, res.Event)
	assert.Equal(t, models.StatusCompleted, res.Event.Status)
	assert.Len(t, res.Relapses, 2)
}

func TestResolveDayAvoidanceSkipped(t *testing.T) {
	h := models.Habit{Type: models.HabitAvoidance}
	events := []models.HabitEvent{eventOn(testToday, models.StatusSkipped)}

	res := ResolveDay(h, testToday, events, testToday)
	assert.Equal(t, DaySkipped, res.Status)
}

func TestHasRelapses(t *testing.T) {
	events := []models.HabitEvent{
		eventOn(testToday, models.StatusFailed),
		eventOn(offsetDay(t, -1), models.StatusCompleted),
	}

	assert.True(t, HasRelapses(events, testToday))
	assert.False(t, HasRelapses(events, offsetDay(t, -1)))
	assert.False(t, HasRelapses(nil, testToday))
}

func TestRelapsesOnFiltersAndOrders(t *testing.T) {
	base := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	late := eventOn(testToday, models.StatusFailed)
	late.ID = 7
	late.CreatedAt = base.Add(time.Hour)

	early := eventOn(testToday, models.StatusFailed)
	early.ID = 3
	early.CreatedAt = base

	other := eventOn(offsetDay(t, -2), models.StatusFailed)
	done := eventOn(testToday, models.StatusCompleted)

	got := RelapsesOn([]models.HabitEvent{late, other, done, early}, testToday)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID)
	assert.Equal(t, uint(7), got[1].ID)
}
