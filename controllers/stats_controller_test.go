package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitd/habitd/models"
)

func TestGetHabitStats(t *testing.T) {
	st := newMockStore()
	habit := seedHabit(t, st, models.Habit{Name: "Stretch", Type: models.HabitSimple})
	seedEvent(t, st, habit.ID, day(t, -3), models.StatusFailed)
	seedEvent(t, st, habit.ID, day(t, -1), models.StatusCompleted)
	seedEvent(t, st, habit.ID, day(t, 0), models.StatusCompleted)

	r := newTestRouter(st, testOwner)
	w, resp := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/habits/%d/stats", habit.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, resp)
	assert.Equal(t, "Stretch", data["name"])
	assert.Equal(t, float64(2), data["current_streak"])
	assert.Equal(t, float64(2), data["longest_streak"])
	assert.Equal(t, float64(3), data["days_logged"])

	recent := data["recent"].([]interface{})
	require.Len(t, recent, 7)
	last := recent[6].(map[string]interface{})
	assert.Equal(t, todayUTC(), last["date"])
	assert.Equal(t, "completed", last["status"])
	third := recent[3].(map[string]interface{})
	assert.Equal(t, day(t, -3), third["date"])
	assert.Equal(t, "failed", third["status"])
}

func TestGetHabitStatsWeekly(t *testing.T) {
	st := newMockStore()
	habit := seedHabit(t, st, models.Habit{
		Name: "Gym", Type: models.HabitSimple,
		Frequency: models.FrequencyWeekly, GoalPerWeek: 3,
	})
	r := newTestRouter(st, testOwner)

	_, resp := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/v1/habits/%d/stats", habit.ID), nil)
	week := dataMap(t, resp)["week"].(map[string]interface{})
	assert.Equal(t, float64(3), week["goal"])
	assert.Equal(t, false, week["met"])
}

func TestGetStatsAggregates(t *testing.T) {
	st := newMockStore()
	active := seedHabit(t, st, models.Habit{Name: "Stretch", Type: models.HabitSimple})
	seedEvent(t, st, active.ID, day(t, -1), models.StatusCompleted)
	seedEvent(t, st, active.ID, day(t, 0), models.StatusCompleted)
	seedHabit(t, st, models.Habit{Name: "Idle", Type: models.HabitSimple})

	r := newTestRouter(st, testOwner)
	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, resp)
	assert.Equal(t, todayUTC(), data["date"])
	stats := data["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_streaks"])
	assert.Equal(t, float64(1), stats["active_streaks"])
	assert.Equal(t, float64(1), stats["average_streak"])
	assert.Equal(t, float64(2), stats["longest_ever_streak"])
	assert.Equal(t, float64(2), stats["total_days_logged"])

	summaries := data["habits"].([]interface{})
	require.Len(t, summaries, 2)
	first := summaries[0].(map[string]interface{})
	assert.Equal(t, "Stretch", first["habit"].(map[string]interface{})["name"])
	assert.Equal(t, float64(2), first["current_streak"])
}

func TestGetMilestones(t *testing.T) {
	st := newMockStore()
	habit := seedHabit(t, st, models.Habit{Name: "Stretch", Type: models.HabitSimple})
	for offset := -6; offset <= 0; offset++ {
		seedEvent(t, st, habit.ID, day(t, offset), models.StatusCompleted)
	}

	r := newTestRouter(st, testOwner)
	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/milestones", nil)
	require.Equal(t, http.StatusOK, w.Code)

	milestones := dataMap(t, resp)["milestones"].([]interface{})
	byID := make(map[string]map[string]interface{}, len(milestones))
	for _, m := range milestones {
		entry := m.(map[string]interface{})
		byID[entry["id"].(string)] = entry
	}

	require.Contains(t, byID, "week-warrior")
	assert.Equal(t, true, byID["week-warrior"]["achieved"])
	assert.Equal(t, float64(7), byID["week-warrior"]["progress"])
	assert.Equal(t, true, byID["first-step"]["achieved"])
	assert.Equal(t, false, byID["fortnight-strong"]["achieved"])
	assert.Equal(t, false, byID["habit-juggler"]["achieved"])
}
