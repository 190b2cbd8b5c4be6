package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
)

// billingPeriod is one subscription cycle. Stripe drives real renewals;
// this is what the dashboard shows between webhooks.
const billingPeriod = 30 * 24 * time.Hour

// SubscriptionService exposes the account-area plan operations.
type SubscriptionService interface {
	Get(ctx context.Context, userID uint) (*model.Subscription, error)
	ChangePlan(ctx context.Context, userID uint, plan string) (*model.Subscription, error)
	Cancel(ctx context.Context, userID uint) (*model.Subscription, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{subRepo: subRepo, userRepo: userRepo}
}

func (s *subscriptionService) Get(ctx context.Context, userID uint) (*model.Subscription, error) {
	sub, err := s.subRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	return sub, nil
}

// ChangePlan switches the subscription to the named plan and marks it
// active. The profile copy of plan and status is kept in step so session
// snapshots stay accurate.
func (s *subscriptionService) ChangePlan(ctx context.Context, userID uint, plan string) (*model.Subscription, error) {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	price, err := PlanPrice(plan, profile.IsFoundingMember)
	if err != nil {
		return nil, err
	}

	sub, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	periodEnd := now.Add(billingPeriod)
	sub.Plan = plan
	sub.Status = model.SubscriptionActive
	sub.Price = price
	sub.StartDate = now
	sub.CurrentPeriodEnd = periodEnd
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}

	profile.SubscriptionPlan = plan
	profile.SubscriptionStatus = model.SubscriptionActive
	profile.SubscriptionExpiresAt = &periodEnd
	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return sub, nil
}

// Cancel marks the subscription canceled. Access runs out at the end of
// the paid period; only the status flips here.
func (s *subscriptionService) Cancel(ctx context.Context, userID uint) (*model.Subscription, error) {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sub.Status = model.SubscriptionCanceled
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err == nil {
		profile.SubscriptionStatus = model.SubscriptionCanceled
		if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	return sub, nil
}
