package repository

import (
	"context"

	"gorm.io/gorm"

	"ajurnie/internal/model"
)

// ProgressRepository defines progress entry persistence operations.
type ProgressRepository interface {
	Create(ctx context.Context, entry *model.ProgressEntry) error
	ListForUser(ctx context.Context, userID uint) ([]model.ProgressEntry, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository builds a GORM-backed repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(ctx context.Context, entry *model.ProgressEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *progressRepository) ListForUser(ctx context.Context, userID uint) ([]model.ProgressEntry, error) {
	var entries []model.ProgressEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
