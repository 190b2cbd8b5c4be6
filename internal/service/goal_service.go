package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
)

// GoalService handles goal-intake submissions and the admin review flow.
type GoalService interface {
	Create(ctx context.Context, goal *model.Goal) error
	// List returns goals visible to the requester. Admins may filter by
	// any user id; everyone else only sees their own submissions.
	List(ctx context.Context, requesterID uint, filterUserID *uint) ([]model.Goal, error)
	SetPlanStatus(ctx context.Context, id uint, generated bool) error
}

type goalService struct {
	repo      repository.GoalRepository
	adminRepo repository.AdminRepository
}

// NewGoalService creates a new goal service.
func NewGoalService(repo repository.GoalRepository, adminRepo repository.AdminRepository) GoalService {
	return &goalService{repo: repo, adminRepo: adminRepo}
}

func (s *goalService) Create(ctx context.Context, goal *model.Goal) error {
	if err := s.repo.Create(ctx, goal); err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

func (s *goalService) List(ctx context.Context, requesterID uint, filterUserID *uint) ([]model.Goal, error) {
	// Admin status is re-derived here, never taken from token claims.
	isAdmin, err := s.adminRepo.IsAdmin(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}

	userID := filterUserID
	if !isAdmin {
		// Non-admins are pinned to their own goals no matter what they ask for.
		userID = &requesterID
	}
	return s.repo.List(ctx, userID)
}

func (s *goalService) SetPlanStatus(ctx context.Context, id uint, generated bool) error {
	if err := s.repo.SetPlanGenerated(ctx, id, generated); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrGoalNotFound
		}
		return fmt.Errorf("set plan status: %w", err)
	}
	return nil
}
