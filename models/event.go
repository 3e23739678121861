package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventStatus is the recorded outcome of a habit on one calendar day.
type EventStatus string

const (
	StatusCompleted EventStatus = "completed"
	StatusSkipped   EventStatus = "skipped"
	StatusFailed    EventStatus = "failed"
)

// Valid reports whether s is a known event status.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusSkipped, StatusFailed:
		return true
	}
	return false
}

// HabitEvent records what happened for one habit on one owner-local day.
// Most habits keep at most one event per day; avoidance habits may
// accumulate several Failed events (relapses) on the same date.
type HabitEvent struct {
	ID      uint        `gorm:"primaryKey" json:"id"`
	UID     string      `gorm:"size:36;uniqueIndex" json:"uid"`
	HabitID uint        `gorm:"not null;index:idx_events_habit_date" json:"habit_id"`
	OwnerID uint        `gorm:"index;not null" json:"owner_id"`
	Date    string      `gorm:"size:10;not null;index:idx_events_habit_date" json:"date"` // "YYYY-MM-DD", owner-local
	Status  EventStatus `gorm:"size:16;not null" json:"status"`
	Value   *float64    `json:"value,omitempty"`
	Note    string      `gorm:"size:512" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UID and ensures timestamps are set.
func (e *HabitEvent) BeforeCreate(tx *gorm.DB) error {
	if e.UID == "" {
		e.UID = uuid.NewString()
	}
	now := time.Now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (e *HabitEvent) BeforeUpdate(tx *gorm.DB) error {
	e.UpdatedAt = time.Now()
	return nil
}
