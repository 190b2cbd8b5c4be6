package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ajurnie/internal/model"
)

// CalendarRepository defines calendar event persistence operations.
type CalendarRepository interface {
	Create(ctx context.Context, event *model.CalendarEvent) error
	ListForUser(ctx context.Context, userID uint, start, end *time.Time) ([]model.CalendarEvent, error)
}

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository builds a GORM-backed repository.
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(ctx context.Context, event *model.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarRepository) ListForUser(ctx context.Context, userID uint, start, end *time.Time) ([]model.CalendarEvent, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("start_time >= ?", *start)
	}
	if end != nil {
		q = q.Where("start_time <= ?", *end)
	}

	var events []model.CalendarEvent
	if err := q.Order("start_time ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
