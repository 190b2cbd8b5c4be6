package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ajurnie/internal/cache"
	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
)

const exerciseCacheTTL = 5 * time.Minute

// ExerciseService exposes the exercise library plus the admin mutations.
type ExerciseService interface {
	List(ctx context.Context, filter model.ExerciseFilter) ([]model.Exercise, error)
	Get(ctx context.Context, id uint) (*model.Exercise, error)
	Create(ctx context.Context, exercise *model.Exercise) error
	Update(ctx context.Context, exercise *model.Exercise) error
	Delete(ctx context.Context, id uint) error
}

type exerciseService struct {
	repo  repository.ExerciseRepository
	cache *cache.Client
}

// NewExerciseService creates a new exercise service.
func NewExerciseService(repo repository.ExerciseRepository, cacheClient *cache.Client) ExerciseService {
	return &exerciseService{repo: repo, cache: cacheClient}
}

func (s *exerciseService) List(ctx context.Context, filter model.ExerciseFilter) ([]model.Exercise, error) {
	return s.repo.List(ctx, filter)
}

// Get reads through the cache; single-exercise pages are the hottest
// public reads.
func (s *exerciseService) Get(ctx context.Context, id uint) (*model.Exercise, error) {
	key := exerciseCacheKey(id)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.Exercise
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	exercise, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExerciseNotFound
		}
		return nil, fmt.Errorf("find exercise: %w", err)
	}

	if data, err := json.Marshal(exercise); err == nil {
		_ = s.cache.Set(ctx, key, data, exerciseCacheTTL)
	}
	return exercise, nil
}

func (s *exerciseService) Create(ctx context.Context, exercise *model.Exercise) error {
	if err := s.repo.Create(ctx, exercise); err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}

func (s *exerciseService) Update(ctx context.Context, exercise *model.Exercise) error {
	if _, err := s.repo.FindByID(ctx, exercise.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExerciseNotFound
		}
		return fmt.Errorf("find exercise: %w", err)
	}
	if err := s.repo.Update(ctx, exercise); err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	return s.cache.Delete(ctx, exerciseCacheKey(exercise.ID))
}

func (s *exerciseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrExerciseNotFound
		}
		return fmt.Errorf("find exercise: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return s.cache.Delete(ctx, exerciseCacheKey(id))
}

func exerciseCacheKey(id uint) string {
	return fmt.Sprintf("exercise:%d", id)
}
