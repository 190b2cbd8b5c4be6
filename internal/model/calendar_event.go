package model

import "time"

// CalendarEvent is a scheduled workout or session on a member's
// calendar tracker.
type CalendarEvent struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"type:text"`
	EventType   string     `json:"event_type" gorm:"size:50"`
	StartTime   time.Time  `json:"start_time" gorm:"index;not null"`
	EndTime     *time.Time `json:"end_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
