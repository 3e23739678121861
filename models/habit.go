package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HabitType discriminates what "success" means for a habit. Goal fields on
// Habit are only interpreted when they match the declared type.
type HabitType string

const (
	HabitSimple    HabitType = "simple"
	HabitQuantity  HabitType = "quantity"
	HabitDuration  HabitType = "duration"
	HabitSchedule  HabitType = "schedule"
	HabitAvoidance HabitType = "avoidance"
)

// Valid reports whether t is a known habit type.
func (t HabitType) Valid() bool {
	switch t {
	case HabitSimple, HabitQuantity, HabitDuration, HabitSchedule, HabitAvoidance:
		return true
	}
	return false
}

// GoalDirection is the comparison sense used to judge a logged value against
// a goal. AtLeast/NoMoreThan apply to quantity and duration habits,
// By/After to schedule habits.
type GoalDirection string

const (
	DirectionAtLeast    GoalDirection = "at_least"
	DirectionNoMoreThan GoalDirection = "no_more_than"
	DirectionBy         GoalDirection = "by"
	DirectionAfter      GoalDirection = "after"
)

// Frequency describes how often a habit is meant to be practiced.
type Frequency string

const (
	FrequencyDaily        Frequency = "daily"
	FrequencyWeekly       Frequency = "weekly"
	FrequencySpecificDays Frequency = "specific_days"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencySpecificDays:
		return true
	}
	return false
}

// ToleranceWindow is the rolling summary window for avoidance habits.
type ToleranceWindow string

const (
	ToleranceWeekly  ToleranceWindow = "weekly"
	ToleranceMonthly ToleranceWindow = "monthly"
)

// WeekdayKeys are the canonical short weekday names used in ScheduledDays
// and as keys of GoalTimesByDay, indexed by time.Weekday (Sunday = 0).
var WeekdayKeys = [7]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// IsWeekdayKey reports whether s is one of the canonical weekday keys.
func IsWeekdayKey(s string) bool {
	for _, known := range WeekdayKeys {
		if s == known {
			return true
		}
	}
	return false
}

// Habit is a user-owned tracked behavior. Which goal fields are meaningful
// depends on Type; the rest are ignored if present.
type Habit struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UID     string    `gorm:"size:36;uniqueIndex" json:"uid"`
	OwnerID uint      `gorm:"index;not null" json:"owner_id"`
	Name    string    `gorm:"size:128;not null" json:"name"`
	Type    HabitType `gorm:"size:16;not null" json:"type"`

	Frequency     Frequency `gorm:"size:16;default:'daily'" json:"frequency"`
	GoalPerWeek   int       `json:"goal_per_week,omitempty"`
	ScheduledDays string    `gorm:"size:64" json:"scheduled_days,omitempty"` // CSV of mon..sun

	GoalValue      *float64      `json:"goal_value,omitempty"`
	GoalDirection  GoalDirection `gorm:"size:16" json:"goal_direction,omitempty"`
	Unit           string        `gorm:"size:32" json:"unit,omitempty"`
	GoalTime       string        `gorm:"size:5" json:"goal_time,omitempty"`            // "HH:MM"
	GoalTimesByDay string        `gorm:"type:text" json:"goal_times_by_day,omitempty"` // JSON: weekday key -> "HH:MM"

	ToleranceWindow      ToleranceWindow `gorm:"size:16" json:"tolerance_window,omitempty"`
	ToleranceMaxFailures int             `json:"tolerance_max_failures,omitempty"`

	Archived     bool `gorm:"default:false" json:"archived"`
	DisplayOrder int  `gorm:"column:display_order;default:0" json:"order"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UID and ensures timestamps are set even when not
// provided by the caller.
func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.UID == "" {
		h.UID = uuid.NewString()
	}
	now := time.Now()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	return nil
}

// BeforeUpdate refreshes the UpdatedAt timestamp.
func (h *Habit) BeforeUpdate(tx *gorm.DB) error {
	h.UpdatedAt = time.Now()
	return nil
}

// ScheduledDaySet parses ScheduledDays into a lookup set of weekday keys.
// Unknown tokens are dropped.
func (h *Habit) ScheduledDaySet() map[string]bool {
	set := map[string]bool{}
	for _, part := range strings.Split(h.ScheduledDays, ",") {
		key := strings.ToLower(strings.TrimSpace(part))
		if key == "" {
			continue
		}
		for _, known := range WeekdayKeys {
			if key == known {
				set[key] = true
				break
			}
		}
	}
	return set
}

// GoalTimes decodes the per-weekday goal time overrides. An empty column
// yields an empty map, not an error.
func (h *Habit) GoalTimes() (map[string]string, error) {
	if strings.TrimSpace(h.GoalTimesByDay) == "" {
		return map[string]string{}, nil
	}
	times := map[string]string{}
	if err := json.Unmarshal([]byte(h.GoalTimesByDay), &times); err != nil {
		return nil, err
	}
	return times, nil
}
