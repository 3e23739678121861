package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/habitd/habitd/models"
)

// testToday is a Wednesday; the surrounding week runs 2024-03-18 (Mon)
// through 2024-03-24 (Sun).
const testToday = "2024-03-20"

func fptr(v float64) *float64 { return &v }

func offsetDay(t *testing.T, offset int) string {
	t.Helper()
	day, err := AddDays(testToday, offset)
	require.NoError(t, err)
	return day
}

func eventOn(day string, status models.EventStatus) models.HabitEvent {
	return models.HabitEvent{Date: day, Status: status}
}
