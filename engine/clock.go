package engine

import (
	"fmt"
	"time"

	"github.com/habitd/habitd/models"
)

// DayFormat is the canonical calendar-day layout used everywhere a date
// crosses a package boundary. Days are owner-local and carry no zone.
const DayFormat = "2006-01-02"

// TimeFormat is the canonical 24-hour time-of-day layout.
const TimeFormat = "15:04"

// Clock supplies the owner-local current day. Evaluation code never calls
// time.Now directly so that tests and backfills can pin "today".
type Clock interface {
	Today() string
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock for loc, falling back to time.Local when
// loc is nil.
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{loc: loc}
}

func (c SystemClock) Today() string {
	return time.Now().In(c.loc).Format(DayFormat)
}

// FixedClock always reports the same day. Useful in tests and when a
// request pins the evaluation day explicitly.
type FixedClock string

func (c FixedClock) Today() string { return string(c) }

// ParseDay parses a canonical day string strictly.
func ParseDay(day string) (time.Time, error) {
	t, err := time.Parse(DayFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", day)
	}
	return t, nil
}

// ValidDay reports whether day is a well-formed canonical day string.
func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// AddDays shifts a canonical day string by n calendar days.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DayFormat), nil
}

// WeekdayOf returns the canonical weekday key ("mon".."sun") for a day.
func WeekdayOf(day string) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return models.WeekdayKeys[int(t.Weekday())], nil
}

// WeekStart returns the Monday on or before day.
func WeekStart(day string) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset).Format(DayFormat), nil
}

// MonthOf returns the "YYYY-MM" prefix of a day.
func MonthOf(day string) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01"), nil
}
