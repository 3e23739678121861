package store

import (
	"context"
	"errors"

	"github.com/habitd/habitd/models"
)

// ErrNotFound is returned when a lookup matches nothing the owner can see.
var ErrNotFound = errors.New("store: not found")

// StoreError wraps an unexpected persistence failure with the operation
// that caused it. Not-found conditions use ErrNotFound instead.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "store: " + e.Op + ": " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

// EventFilter narrows event listings. Zero-valued fields are ignored.
// From and To are inclusive "YYYY-MM-DD" bounds.
type EventFilter struct {
	From   string
	To     string
	Status models.EventStatus
}

// Store is the persistence surface the evaluation code depends on. Every
// lookup is owner-scoped; implementations must never return rows belonging
// to another owner.
type Store interface {
	CreateHabit(ctx context.Context, habit *models.Habit) error
	GetHabit(ctx context.Context, ownerID, habitID uint) (*models.Habit, error)
	ListHabits(ctx context.Context, ownerID uint, includeArchived bool) ([]models.Habit, error)
	UpdateHabit(ctx context.Context, habit *models.Habit) error
	DeleteHabit(ctx context.Context, ownerID, habitID uint) error

	CreateEvent(ctx context.Context, event *models.HabitEvent) error
	GetEventByUID(ctx context.Context, ownerID uint, uid string) (*models.HabitEvent, error)
	ListEvents(ctx context.Context, ownerID, habitID uint, filter EventFilter) ([]models.HabitEvent, error)
	ListEventsForOwner(ctx context.Context, ownerID uint) (map[uint][]models.HabitEvent, error)
	UpdateEvent(ctx context.Context, event *models.HabitEvent) error
	DeleteEvent(ctx context.Context, ownerID, eventID uint) error
	DeleteEventsOnDay(ctx context.Context, ownerID, habitID uint, day string) error
}
