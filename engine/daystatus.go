package engine

import (
	"sort"

	"github.com/habitd/habitd/models"
)

// DayStatus is the resolved state of one habit on one calendar day. Unlike
// EventStatus it also covers days that have no events at all.
type DayStatus string

const (
	DayCompleted DayStatus = "completed"
	DaySkipped   DayStatus = "skipped"
	DayFailed    DayStatus = "failed"
	DayPending   DayStatus = "pending"    // today, nothing logged yet
	DayNotLogged DayStatus = "not_logged" // past or future day without events
)

// DayResolution is the answer to "what happened on this day". Event is the
// authoritative single event when one exists. Relapses is populated for
// avoidance habits only, ordered by creation; when Status is Completed the
// listed relapses are superseded by the completion.
type DayResolution struct {
	Date     string              `json:"date"`
	Status   DayStatus           `json:"status"`
	Event    *models.HabitEvent  `json:"event,omitempty"`
	Relapses []models.HabitEvent `json:"relapses,omitempty"`
}

// ResolveDay collapses the events of one calendar day into a single status.
// For avoidance habits a Completed event supersedes any Failed events on
// the same date; otherwise any relapse makes the day Failed. For all other
// habit types the most recently updated event wins. Days without events
// resolve to Pending when they are today and NotLogged otherwise.
func ResolveDay(h models.Habit, day string, events []models.HabitEvent, today string) DayResolution {
	onDay := eventsOn(events, day)
	res := DayResolution{Date: day}

	if len(onDay) == 0 {
		if day == today {
			res.Status = DayPending
		} else {
			res.Status = DayNotLogged
		}
		return res
	}

	if h.Type == models.HabitAvoidance {
		res.Relapses = filterStatus(onDay, models.StatusFailed)
		if done := latestWithStatus(onDay, models.StatusCompleted); done != nil {
			res.Status = DayCompleted
			res.Event = done
			return res
		}
		if len(res.Relapses) > 0 {
			res.Status = DayFailed
			return res
		}
		if skipped := latestWithStatus(onDay, models.StatusSkipped); skipped != nil {
			res.Status = DaySkipped
			res.Event = skipped
			return res
		}
		res.Status = DayNotLogged
		return res
	}

	latest := onDay[len(onDay)-1]
	res.Event = &latest
	res.Status = statusOfEvent(latest.Status)
	return res
}

// RelapsesOn returns the Failed events recorded on a day, ordered by
// creation time.
func RelapsesOn(events []models.HabitEvent, day string) []models.HabitEvent {
	return filterStatus(eventsOn(events, day), models.StatusFailed)
}

// HasRelapses reports whether any relapse is recorded on a day.
func HasRelapses(events []models.HabitEvent, day string) bool {
	for _, e := range events {
		if e.Date == day && e.Status == models.StatusFailed {
			return true
		}
	}
	return false
}

func statusOfEvent(s models.EventStatus) DayStatus {
	switch s {
	case models.StatusCompleted:
		return DayCompleted
	case models.StatusSkipped:
		return DaySkipped
	case models.StatusFailed:
		return DayFailed
	}
	return DayNotLogged
}

// eventsOn filters events to one day, ordered by update time so the last
// element is the most recent write.
func eventsOn(events []models.HabitEvent, day string) []models.HabitEvent {
	var onDay []models.HabitEvent
	for _, e := range events {
		if e.Date == day {
			onDay = append(onDay, e)
		}
	}
	sort.SliceStable(onDay, func(i, j int) bool {
		if !onDay[i].UpdatedAt.Equal(onDay[j].UpdatedAt) {
			return onDay[i].UpdatedAt.Before(onDay[j].UpdatedAt)
		}
		return onDay[i].ID < onDay[j].ID
	})
	return onDay
}

func filterStatus(events []models.HabitEvent, status models.EventStatus) []models.HabitEvent {
	var matched []models.HabitEvent
	for _, e := range events {
		if e.Status == status {
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return matched
}

func latestWithStatus(events []models.HabitEvent, status models.EventStatus) *models.HabitEvent {
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Status == status {
			e := events[i]
			return &e
		}
	}
	return nil
}

// dayOutcomes collapses an event history into one status per calendar day,
// using the same supersession rules as ResolveDay. Days without events do
// not appear in the map.
func dayOutcomes(h models.Habit, events []models.HabitEvent) map[string]DayStatus {
	byDay := map[string][]models.HabitEvent{}
	for _, e := range events {
		byDay[e.Date] = append(byDay[e.Date], e)
	}
	outcomes := make(map[string]DayStatus, len(byDay))
	for day := range byDay {
		// today is irrelevant here: every listed day has events.
		outcomes[day] = ResolveDay(h, day, byDay[day], "").Status
	}
	return outcomes
}
