package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayHelpers(t *testing.T) {
	day, err := AddDays("2024-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", day) // leap year

	key, err := WeekdayOf(testToday)
	require.NoError(t, err)
	assert.Equal(t, "wed", key)

	start, err := WeekStart(testToday)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18", start)

	start, err = WeekStart("2024-03-18") // Monday is its own week start
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18", start)

	start, err = WeekStart("2024-03-24") // Sunday belongs to the week before
	require.NoError(t, err)
	assert.Equal(t, "2024-03-18", start)

	month, err := MonthOf(testToday)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", month)
}

func TestValidDay(t *testing.T) {
	assert.True(t, ValidDay("2024-03-20"))
	assert.False(t, ValidDay("2024-3-20"))
	assert.False(t, ValidDay("2024-02-30"))
	assert.False(t, ValidDay("today"))
	assert.False(t, ValidDay(""))
}

func TestClocks(t *testing.T) {
	assert.Equal(t, "2024-03-20", FixedClock("2024-03-20").Today())

	clock := NewSystemClock(time.UTC)
	assert.True(t, ValidDay(clock.Today()))

	fallback := NewSystemClock(nil)
	assert.True(t, ValidDay(fallback.Today()))
}
