package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalExercises      int64 `json:"totalExercises"`
	TotalGoals          int64 `json:"totalGoals"`
	RecentGoals         int64 `json:"recentGoals"`
	ActiveSubscriptions int64 `json:"activeSubscriptions"`
	FoundingMembers     int64 `json:"foundingMembers"`
}

// UserUpdate carries the admin-editable profile fields.
type UserUpdate struct {
	Role               *string
	SubscriptionStatus *string
	SubscriptionPlan   *string
	IsFoundingMember   *bool
}

// CouponInput carries a new coupon definition. Code is generated when empty.
type CouponInput struct {
	Code          string
	DiscountType  string
	DiscountValue float64
	ExpiresAt     *time.Time
}

// AdminService backs the admin panel: dashboard stats, user management
// and coupon management.
type AdminService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context) ([]model.UserProfile, error)
	UpdateUser(ctx context.Context, userID uint, update UserUpdate) (*model.UserProfile, error)
	CreateCoupon(ctx context.Context, in CouponInput) (*model.Coupon, error)
	AssignCoupon(ctx context.Context, couponID, userID uint) error
}

type adminService struct {
	userRepo     repository.UserRepository
	exerciseRepo repository.ExerciseRepository
	goalRepo     repository.GoalRepository
	couponRepo   repository.CouponRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	goalRepo repository.GoalRepository,
	couponRepo repository.CouponRepository,
) AdminService {
	return &adminService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		goalRepo:     goalRepo,
		couponRepo:   couponRepo,
	}
}

func (s *adminService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountProfiles(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalExercises, err = s.exerciseRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count exercises: %w", err)
	}
	if stats.TotalGoals, err = s.goalRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count goals: %w", err)
	}
	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	if stats.RecentGoals, err = s.goalRepo.CountSince(ctx, weekAgo); err != nil {
		return nil, fmt.Errorf("count recent goals: %w", err)
	}
	if stats.ActiveSubscriptions, err = s.userRepo.CountBySubscriptionStatus(ctx, model.SubscriptionActive, model.SubscriptionTrial); err != nil {
		return nil, fmt.Errorf("count active subscriptions: %w", err)
	}
	if stats.FoundingMembers, err = s.userRepo.CountFoundingMembers(ctx); err != nil {
		return nil, fmt.Errorf("count founding members: %w", err)
	}

	return stats, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.UserProfile, error) {
	return s.userRepo.ListProfiles(ctx)
}

func (s *adminService) UpdateUser(ctx context.Context, userID uint, update UserUpdate) (*model.UserProfile, error) {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if update.Role != nil {
		profile.Role = *update.Role
	}
	if update.SubscriptionStatus != nil {
		profile.SubscriptionStatus = *update.SubscriptionStatus
	}
	if update.SubscriptionPlan != nil {
		profile.SubscriptionPlan = *update.SubscriptionPlan
	}
	if update.IsFoundingMember != nil {
		profile.IsFoundingMember = *update.IsFoundingMember
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

func (s *adminService) CreateCoupon(ctx context.Context, in CouponInput) (*model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		code = strings.ToUpper(uuid.New().String()[:8])
	}

	coupon := &model.Coupon{
		Code:          code,
		DiscountType:  in.DiscountType,
		DiscountValue: decimal.NewFromFloat(in.DiscountValue),
		ExpiresAt:     in.ExpiresAt,
		IsActive:      true,
	}
	if err := s.couponRepo.CreateCoupon(ctx, coupon); err != nil {
		return nil, fmt.Errorf("create coupon: %w", err)
	}
	return coupon, nil
}

func (s *adminService) AssignCoupon(ctx context.Context, couponID, userID uint) error {
	if _, err := s.couponRepo.FindCouponByID(ctx, couponID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCouponNotFound
		}
		return fmt.Errorf("find coupon: %w", err)
	}
	if _, err := s.userRepo.FindProfileByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find profile: %w", err)
	}

	return s.couponRepo.AssignToUser(ctx, &model.UserCoupon{
		UserID:   userID,
		CouponID: couponID,
	})
}
