package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/habitd/habitd/models"
)

// GormStore implements Store on a gorm connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return &StoreError{Op: op, Err: err}
}

func (s *GormStore) CreateHabit(ctx context.Context, habit *models.Habit) error {
	return wrap("create habit", s.db.WithContext(ctx).Create(habit).Error)
}

func (s *GormStore) GetHabit(ctx context.Context, ownerID, habitID uint) (*models.Habit, error) {
	var habit models.Habit
	err := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", habitID, ownerID).
		First(&habit).Error
	if err != nil {
		return nil, wrap("get habit", err)
	}
	return &habit, nil
}

func (s *GormStore) ListHabits(ctx context.Context, ownerID uint, includeArchived bool) ([]models.Habit, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeArchived {
		query = query.Where("archived = ?", false)
	}
	var habits []models.Habit
	if err := query.Order("display_order ASC, id ASC").Find(&habits).Error; err != nil {
		return nil, wrap("list habits", err)
	}
	return habits, nil
}

func (s *GormStore) UpdateHabit(ctx context.Context, habit *models.Habit) error {
	return wrap("update habit", s.db.WithContext(ctx).Save(habit).Error)
}

// DeleteHabit removes a habit and its event history together.
func (s *GormStore) DeleteHabit(ctx context.Context, ownerID, habitID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND owner_id = ?", habitID, ownerID).Delete(&models.Habit{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("habit_id = ? AND owner_id = ?", habitID, ownerID).
			Delete(&models.HabitEvent{}).Error
	})
	return wrap("delete habit", err)
}

func (s *GormStore) CreateEvent(ctx context.Context, event *models.HabitEvent) error {
	return wrap("create event", s.db.WithContext(ctx).Create(event).Error)
}

func (s *GormStore) GetEventByUID(ctx context.Context, ownerID uint, uid string) (*models.HabitEvent, error) {
	var event models.HabitEvent
	err := s.db.WithContext(ctx).
		Where("uid = ? AND owner_id = ?", uid, ownerID).
		First(&event).Error
	if err != nil {
		return nil, wrap("get event", err)
	}
	return &event, nil
}

func (s *GormStore) ListEvents(ctx context.Context, ownerID, habitID uint, filter EventFilter) ([]models.HabitEvent, error) {
	query := s.db.WithContext(ctx).Where("habit_id = ? AND owner_id = ?", habitID, ownerID)
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var events []models.HabitEvent
	if err := query.Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, wrap("list events", err)
	}
	return events, nil
}

func (s *GormStore) ListEventsForOwner(ctx context.Context, ownerID uint) (map[uint][]models.HabitEvent, error) {
	var events []models.HabitEvent
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("date ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, wrap("list owner events", err)
	}
	byHabit := map[uint][]models.HabitEvent{}
	for _, e := range events {
		byHabit[e.HabitID] = append(byHabit[e.HabitID], e)
	}
	return byHabit, nil
}

func (s *GormStore) UpdateEvent(ctx context.Context, event *models.HabitEvent) error {
	return wrap("update event", s.db.WithContext(ctx).Save(event).Error)
}

func (s *GormStore) DeleteEvent(ctx context.Context, ownerID, eventID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", eventID, ownerID).
		Delete(&models.HabitEvent{})
	if result.Error != nil {
		return wrap("delete event", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEventsOnDay clears a day without caring whether anything was there.
func (s *GormStore) DeleteEventsOnDay(ctx context.Context, ownerID, habitID uint, day string) error {
	err := s.db.WithContext(ctx).
		Where("habit_id = ? AND owner_id = ? AND date = ?", habitID, ownerID, day).
		Delete(&models.HabitEvent{}).Error
	return wrap("delete day events", err)
}
