package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestoneByID(t *testing.T, statuses []MilestoneStatus, id string) MilestoneStatus {
	t.Helper()
	for _, s := range statuses {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("milestone %q not in result", id)
	return MilestoneStatus{}
}

func TestEvaluateMilestonesStreakTargets(t *testing.T) {
	statuses := EvaluateMilestones(UserStats{LongestEverStreak: 7})

	assert.True(t, milestoneByID(t, statuses, "first-step").Achieved)
	assert.True(t, milestoneByID(t, statuses, "three-in-a-row").Achieved)
	assert.True(t, milestoneByID(t, statuses, "week-warrior").Achieved)
	assert.False(t, milestoneByID(t, statuses, "fortnight-strong").Achieved)
	assert.False(t, milestoneByID(t, statuses, "monthly-master").Achieved)

	week := milestoneByID(t, statuses, "week-warrior")
	assert.Equal(t, 7, week.Progress)
	assert.Equal(t, 7, week.Target)

	shortOfWeek := EvaluateMilestones(UserStats{LongestEverStreak: 6})
	assert.False(t, milestoneByID(t, shortOfWeek, "week-warrior").Achieved)
	assert.Equal(t, 6, milestoneByID(t, shortOfWeek, "week-warrior").Progress)
}

func TestEvaluateMilestonesOtherMetrics(t *testing.T) {
	statuses := EvaluateMilestones(UserStats{ActiveStreaks: 3, TotalDaysLogged: 42})

	assert.True(t, milestoneByID(t, statuses, "habit-juggler").Achieved)
	assert.True(t, milestoneByID(t, statuses, "steady-logger").Achieved)
	assert.False(t, milestoneByID(t, statuses, "century-club").Achieved)
	assert.False(t, milestoneByID(t, statuses, "week-warrior").Achieved)

	logger := milestoneByID(t, statuses, "steady-logger")
	assert.Equal(t, 42, logger.Progress)
}

func TestEvaluateMilestonesIsStateless(t *testing.T) {
	achieved := milestoneByID(t, EvaluateMilestones(UserStats{LongestEverStreak: 7}), "week-warrior")
	require.True(t, achieved.Achieved)

	// Editing history back below the target revokes the milestone.
	revoked := milestoneByID(t, EvaluateMilestones(UserStats{LongestEverStreak: 6}), "week-warrior")
	assert.False(t, revoked.Achieved)
	assert.Equal(t, 6, revoked.Progress)
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	require.NotEmpty(t, first)
	first[0].Title = "mutated"

	again := Catalog()
	assert.NotEqual(t, "mutated", again[0].Title)
	assert.Len(t, again, len(first))
}

func TestCatalogEntriesComplete(t *testing.T) {
	for _, m := range Catalog() {
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Title)
		assert.NotEmpty(t, m.Icon)
		assert.Positive(t, m.Target)
	}
}
