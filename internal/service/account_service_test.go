package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/model"
)

// MockCouponRepository is a mock implementation of CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) CreateCoupon(ctx context.Context, coupon *model.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) FindCouponByID(ctx context.Context, id uint) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) AssignToUser(ctx context.Context, userCoupon *model.UserCoupon) error {
	args := m.Called(ctx, userCoupon)
	return args.Error(0)
}

func (m *MockCouponRepository) ListActiveForUser(ctx context.Context, userID uint) ([]model.UserCoupon, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserCoupon), args.Error(1)
}

// MockCalendarRepository is a mock implementation of CalendarRepository.
type MockCalendarRepository struct {
	mock.Mock
}

func (m *MockCalendarRepository) Create(ctx context.Context, event *model.CalendarEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockCalendarRepository) ListForUser(ctx context.Context, userID uint, start, end *time.Time) ([]model.CalendarEvent, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CalendarEvent), args.Error(1)
}

// MockProgressRepository is a mock implementation of ProgressRepository.
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Create(ctx context.Context, entry *model.ProgressEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockProgressRepository) ListForUser(ctx context.Context, userID uint) ([]model.ProgressEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProgressEntry), args.Error(1)
}

func newTestAccountService(userRepo *MockUserRepository, adminRepo *MockAdminRepository, calRepo *MockCalendarRepository, progRepo *MockProgressRepository) AccountService {
	return NewAccountService(userRepo, adminRepo, new(MockCouponRepository), calRepo, progRepo)
}

func TestAccountService_FeatureGate(t *testing.T) {
	tests := []struct {
		name    string
		profile *model.UserProfile
		isAdmin bool
		wantErr error
	}{
		{
			name:    "trial novice may use the trackers",
			profile: &model.UserProfile{UserID: 7, Role: model.RoleNovice, SubscriptionStatus: model.SubscriptionTrial},
		},
		{
			name:    "canceled subscription locks the feature",
			profile: &model.UserProfile{UserID: 7, Role: model.RoleTrainer, SubscriptionStatus: model.SubscriptionCanceled},
			wantErr: apperrors.ErrFeatureLocked,
		},
		{
			name:    "admin bypasses subscription state",
			profile: &model.UserProfile{UserID: 7, Role: model.RoleNovice, SubscriptionStatus: model.SubscriptionNone},
			isAdmin: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockAdmin := new(MockAdminRepository)
			mockProgress := new(MockProgressRepository)

			mockUser.On("FindProfileByUserID", mock.Anything, uint(7)).Return(tt.profile, nil)
			mockAdmin.On("IsAdmin", mock.Anything, uint(7)).Return(tt.isAdmin, nil)
			if tt.wantErr == nil {
				mockProgress.On("ListForUser", mock.Anything, uint(7)).Return([]model.ProgressEntry{}, nil)
			}

			service := newTestAccountService(mockUser, mockAdmin, new(MockCalendarRepository), mockProgress)
			_, err := service.ProgressEntries(context.Background(), 7)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mockProgress.AssertNotCalled(t, "ListForUser", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	t.Run("only provided fields change", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		existing := &model.UserProfile{
			UserID:             7,
			FullName:           "Old Name",
			Role:               model.RoleNovice,
			Bio:                "old bio",
			SubscriptionStatus: model.SubscriptionActive,
		}
		mockUser.On("FindProfileByUserID", mock.Anything, uint(7)).Return(existing, nil)
		mockUser.On("UpdateProfile", mock.Anything, existing).Return(nil)

		service := newTestAccountService(mockUser, new(MockAdminRepository), new(MockCalendarRepository), new(MockProgressRepository))

		newName := "New Name"
		profile, err := service.UpdateProfile(context.Background(), 7, ProfileUpdate{FullName: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", profile.FullName)
		assert.Equal(t, "old bio", profile.Bio)
		assert.Equal(t, model.RoleNovice, profile.Role)
	})

	t.Run("role may not be escalated to admin", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		existing := &model.UserProfile{UserID: 7, Role: model.RoleNovice}
		mockUser.On("FindProfileByUserID", mock.Anything, uint(7)).Return(existing, nil)
		mockUser.On("UpdateProfile", mock.Anything, existing).Return(nil)

		service := newTestAccountService(mockUser, new(MockAdminRepository), new(MockCalendarRepository), new(MockProgressRepository))

		adminRole := model.RoleAdmin
		profile, err := service.UpdateProfile(context.Background(), 7, ProfileUpdate{Role: &adminRole})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleNovice, profile.Role)
	})

	t.Run("progress entry gets a default date and owner", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockAdmin := new(MockAdminRepository)
		mockProgress := new(MockProgressRepository)

		mockUser.On("FindProfileByUserID", mock.Anything, uint(7)).
			Return(&model.UserProfile{UserID: 7, Role: model.RoleNovice, SubscriptionStatus: model.SubscriptionActive}, nil)
		mockAdmin.On("IsAdmin", mock.Anything, uint(7)).Return(false, nil)
		mockProgress.On("Create", mock.Anything, mock.AnythingOfType("*model.ProgressEntry")).Return(nil)

		service := newTestAccountService(mockUser, mockAdmin, new(MockCalendarRepository), mockProgress)

		entry := &model.ProgressEntry{Notes: "felt strong"}
		err := service.AddProgressEntry(context.Background(), 7, entry)

		assert.NoError(t, err)
		assert.Equal(t, uint(7), entry.UserID)
		assert.False(t, entry.EntryDate.IsZero())
	})
}
