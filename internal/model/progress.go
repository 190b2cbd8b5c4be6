package model

import "time"

// ProgressEntry is a dated measurement logged from the progress tracker.
type ProgressEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	EntryDate time.Time `json:"entry_date" gorm:"index;not null"`
	Weight    *float64  `json:"weight"`
	BodyFat   *float64  `json:"body_fat"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName keeps the plural form consistent with the rest of the schema.
func (ProgressEntry) TableName() string { return "progress_entries" }
