package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ajurnie/internal/model"
)

// GoalRepository defines goal-intake persistence operations.
type GoalRepository interface {
	Create(ctx context.Context, goal *model.Goal) error
	FindByID(ctx context.Context, id uint) (*model.Goal, error)
	List(ctx context.Context, userID *uint) ([]model.Goal, error)
	SetPlanGenerated(ctx context.Context, id uint, generated bool) error
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository builds a GORM-backed repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) FindByID(ctx context.Context, id uint) (*model.Goal, error) {
	var goal model.Goal
	if err := r.db.WithContext(ctx).First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) List(ctx context.Context, userID *uint) ([]model.Goal, error) {
	q := r.db.WithContext(ctx).Model(&model.Goal{})
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	var goals []model.Goal
	if err := q.Order("created_at DESC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) SetPlanGenerated(ctx context.Context, id uint, generated bool) error {
	res := r.db.WithContext(ctx).Model(&model.Goal{}).
		Where("id = ?", id).
		Update("plan_generated", generated)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *goalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Goal{}).Count(&count).Error
	return count, err
}

func (r *goalRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Goal{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
