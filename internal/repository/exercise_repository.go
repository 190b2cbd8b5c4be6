package repository

import (
	"context"

	"gorm.io/gorm"

	"ajurnie/internal/model"
)

// ExerciseRepository defines exercise persistence operations.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	Update(ctx context.Context, exercise *model.Exercise) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Exercise, error)
	List(ctx context.Context, filter model.ExerciseFilter) ([]model.Exercise, error)
	Count(ctx context.Context) (int64, error)
}

type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository builds a GORM-backed repository.
func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

func (r *exerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	return r.db.WithContext(ctx).Create(exercise).Error
}

func (r *exerciseRepository) Update(ctx context.Context, exercise *model.Exercise) error {
	return r.db.WithContext(ctx).Save(exercise).Error
}

func (r *exerciseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Exercise{}, id).Error
}

func (r *exerciseRepository) FindByID(ctx context.Context, id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	if err := r.db.WithContext(ctx).First(&exercise, id).Error; err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (r *exerciseRepository) List(ctx context.Context, filter model.ExerciseFilter) ([]model.Exercise, error) {
	q := r.db.WithContext(ctx).Model(&model.Exercise{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.MuscleGroup != "" {
		q = q.Where("muscle_group = ?", filter.MuscleGroup)
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty_level = ?", filter.Difficulty)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var exercises []model.Exercise
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&exercises).Error
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Exercise{}).Count(&count).Error
	return count, err
}
