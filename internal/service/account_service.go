package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ajurnie/access"
	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
)

// ProfileUpdate carries the member-editable profile fields.
type ProfileUpdate struct {
	FullName        *string
	Role            *string
	Bio             *string
	Specializations model.StringList
	ProfileImageURL *string
}

// AccountService backs the signed-in account area: profile edits,
// coupons, the calendar tracker and the progress tracker.
type AccountService interface {
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.UserProfile, error)
	Coupons(ctx context.Context, userID uint) ([]model.UserCoupon, error)
	CalendarEvents(ctx context.Context, userID uint, start, end *time.Time) ([]model.CalendarEvent, error)
	AddCalendarEvent(ctx context.Context, userID uint, event *model.CalendarEvent) error
	ProgressEntries(ctx context.Context, userID uint) ([]model.ProgressEntry, error)
	AddProgressEntry(ctx context.Context, userID uint, entry *model.ProgressEntry) error
}

type accountService struct {
	userRepo     repository.UserRepository
	adminRepo    repository.AdminRepository
	couponRepo   repository.CouponRepository
	calendarRepo repository.CalendarRepository
	progressRepo repository.ProgressRepository
}

// NewAccountService creates a new account service.
func NewAccountService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	couponRepo repository.CouponRepository,
	calendarRepo repository.CalendarRepository,
	progressRepo repository.ProgressRepository,
) AccountService {
	return &accountService{
		userRepo:     userRepo,
		adminRepo:    adminRepo,
		couponRepo:   couponRepo,
		calendarRepo: calendarRepo,
		progressRepo: progressRepo,
	}
}

func (s *accountService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*model.UserProfile, error) {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	if update.FullName != nil {
		profile.FullName = *update.FullName
	}
	if update.Role != nil && (*update.Role == model.RoleNovice || *update.Role == model.RoleTrainer) {
		profile.Role = *update.Role
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Specializations != nil {
		profile.Specializations = update.Specializations
	}
	if update.ProfileImageURL != nil {
		profile.ProfileImageURL = *update.ProfileImageURL
	}

	if err := s.userRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

func (s *accountService) Coupons(ctx context.Context, userID uint) ([]model.UserCoupon, error) {
	return s.couponRepo.ListActiveForUser(ctx, userID)
}

func (s *accountService) CalendarEvents(ctx context.Context, userID uint, start, end *time.Time) ([]model.CalendarEvent, error) {
	if err := s.requireFeature(ctx, userID, access.FeatureCalendarTracker); err != nil {
		return nil, err
	}
	return s.calendarRepo.ListForUser(ctx, userID, start, end)
}

func (s *accountService) AddCalendarEvent(ctx context.Context, userID uint, event *model.CalendarEvent) error {
	if err := s.requireFeature(ctx, userID, access.FeatureCalendarTracker); err != nil {
		return err
	}
	event.UserID = userID
	return s.calendarRepo.Create(ctx, event)
}

func (s *accountService) ProgressEntries(ctx context.Context, userID uint) ([]model.ProgressEntry, error) {
	if err := s.requireFeature(ctx, userID, access.FeatureProgressTracker); err != nil {
		return nil, err
	}
	return s.progressRepo.ListForUser(ctx, userID)
}

func (s *accountService) AddProgressEntry(ctx context.Context, userID uint, entry *model.ProgressEntry) error {
	if err := s.requireFeature(ctx, userID, access.FeatureProgressTracker); err != nil {
		return err
	}
	entry.UserID = userID
	if entry.EntryDate.IsZero() {
		entry.EntryDate = time.Now()
	}
	return s.progressRepo.Create(ctx, entry)
}

// requireFeature enforces the role/subscription gate server-side. The UI
// hides locked features; this is the real boundary.
func (s *accountService) requireFeature(ctx context.Context, userID uint, feature string) error {
	profile, err := s.userRepo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find profile: %w", err)
	}

	isAdmin, err := s.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}

	gate := access.User{
		Role:               profile.Role,
		SubscriptionStatus: profile.SubscriptionStatus,
		IsAdmin:            isAdmin,
	}
	if !access.CanAccess(gate, feature) {
		return apperrors.ErrFeatureLocked
	}
	return nil
}
