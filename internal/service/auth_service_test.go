package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ajurnie/internal/auth"
	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/mailer"
	"ajurnie/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) CreateProfile(ctx context.Context, profile *model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) FindProfileByUserID(ctx context.Context, userID uint) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, profile *model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) ListProfiles(ctx context.Context) ([]model.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProfile), args.Error(1)
}

func (m *MockUserRepository) CountProfiles(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountBySubscriptionStatus(ctx context.Context, statuses ...string) (int64, error) {
	callArgs := make([]interface{}, 0, len(statuses)+1)
	callArgs = append(callArgs, ctx)
	for _, status := range statuses {
		callArgs = append(callArgs, status)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountFoundingMembers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdminRepository is a mock implementation of AdminRepository.
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *model.AdminUser) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Update(ctx context.Context, sub *model.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindByUserID(ctx context.Context, userID uint) (*model.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenStore) StoreResetToken(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func (m *MockTokenStore) ConsumeResetToken(ctx context.Context, email, token string) (bool, error) {
	args := m.Called(ctx, email, token)
	return args.Bool(0), args.Error(1)
}

// MockMailer is a mock implementation of mailer.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(to, resetURL string) error {
	args := m.Called(to, resetURL)
	return args.Error(0)
}

var _ mailer.Mailer = (*MockMailer)(nil)

func newTestAuthService(userRepo *MockUserRepository, adminRepo *MockAdminRepository, subRepo *MockSubscriptionRepository, tokenStore *MockTokenStore, mail *MockMailer) AuthService {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	cutoff := time.Now().Add(24 * time.Hour)
	return NewAuthService(userRepo, adminRepo, subRepo, jwtService, tokenStore, mail, cutoff, "http://localhost:5000")
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository, *MockSubscriptionRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Email: "new@example.com", Password: "password123", FullName: "New User", Role: "novice"},
			setupMock: func(mUser *MockUserRepository, mSub *MockSubscriptionRepository) {
				mUser.On("FindUserByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mUser.On("CreateProfile", mock.Anything, mock.AnythingOfType("*model.UserProfile")).Return(nil)
				mSub.On("Create", mock.Anything, mock.AnythingOfType("*model.Subscription")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "duplicate email",
			input: RegisterInput{Email: "existing@example.com", Password: "password123", FullName: "Existing"},
			setupMock: func(mUser *MockUserRepository, mSub *MockSubscriptionRepository) {
				mUser.On("FindUserByEmail", mock.Anything, "existing@example.com").
					Return(&model.User{ID: 1, Email: "existing@example.com"}, nil)
			},
			expectedError: apperrors.ErrDuplicateEmail,
		},
		{
			name:  "unknown role falls back to novice",
			input: RegisterInput{Email: "odd@example.com", Password: "password123", FullName: "Odd Role", Role: "superuser"},
			setupMock: func(mUser *MockUserRepository, mSub *MockSubscriptionRepository) {
				mUser.On("FindUserByEmail", mock.Anything, "odd@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				mUser.On("CreateProfile", mock.Anything, mock.AnythingOfType("*model.UserProfile")).Return(nil)
				mSub.On("Create", mock.Anything, mock.AnythingOfType("*model.Subscription")).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockAdmin := new(MockAdminRepository)
			mockSub := new(MockSubscriptionRepository)
			tt.setupMock(mockUser, mockSub)

			service := newTestAuthService(mockUser, mockAdmin, mockSub, new(MockTokenStore), new(MockMailer))
			token, user, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, model.SubscriptionTrial, user.SubscriptionStatus)
				assert.True(t, user.IsFoundingMember)
				if tt.input.Role != model.RoleTrainer {
					assert.Equal(t, model.RoleNovice, user.Role)
				}
			}

			mockUser.AssertExpectations(t)
			mockSub.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockAdminRepository)
		wantAdmin     bool
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "user@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mAdmin *MockAdminRepository) {
				mUser.On("FindUserByEmail", mock.Anything, "user@example.com").
					Return(&model.User{ID: 7, Email: "user@example.com", PasswordHash: string(hashed)}, nil)
				mUser.On("FindProfileByUserID", mock.Anything, uint(7)).
					Return(&model.UserProfile{UserID: 7, FullName: "Seven", Role: model.RoleTrainer, SubscriptionStatus: model.SubscriptionActive}, nil)
				mAdmin.On("IsAdmin", mock.Anything, uint(7)).Return(false, nil)
			},
			expectedError: nil,
		},
		{
			name:     "admin flag comes from the admin table",
			email:    "boss@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mAdmin *MockAdminRepository) {
				mUser.On("FindUserByEmail", mock.Anything, "boss@example.com").
					Return(&model.User{ID: 9, Email: "boss@example.com", PasswordHash: string(hashed)}, nil)
				mUser.On("FindProfileByUserID", mock.Anything, uint(9)).
					Return(&model.UserProfile{UserID: 9, Role: model.RoleNovice, SubscriptionStatus: model.SubscriptionActive}, nil)
				mAdmin.On("IsAdmin", mock.Anything, uint(9)).Return(true, nil)
			},
			wantAdmin:     true,
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mAdmin *MockAdminRepository) {
				mUser.On("FindUserByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "not-the-password",
			setupMock: func(mUser *MockUserRepository, mAdmin *MockAdminRepository) {
				mUser.On("FindUserByEmail", mock.Anything, "user@example.com").
					Return(&model.User{ID: 7, Email: "user@example.com", PasswordHash: string(hashed)}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockAdmin := new(MockAdminRepository)
			tt.setupMock(mockUser, mockAdmin)

			service := newTestAuthService(mockUser, mockAdmin, new(MockSubscriptionRepository), new(MockTokenStore), new(MockMailer))
			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				// Unknown email and wrong password must be indistinguishable.
				assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.wantAdmin, user.IsAdmin)
			}

			mockUser.AssertExpectations(t)
			mockAdmin.AssertExpectations(t)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("current-pass"), 10)

	tests := []struct {
		name            string
		currentPassword string
		setupMock       func(*MockUserRepository)
		expectedError   error
	}{
		{
			name:            "successful change",
			currentPassword: "current-pass",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindUserByID", mock.Anything, uint(3)).
					Return(&model.User{ID: 3, PasswordHash: string(hashed)}, nil)
				mUser.On("UpdatePassword", mock.Anything, uint(3), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:            "wrong current password",
			currentPassword: "wrong-pass",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindUserByID", mock.Anything, uint(3)).
					Return(&model.User{ID: 3, PasswordHash: string(hashed)}, nil)
			},
			expectedError: apperrors.ErrInvalidCurrentPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			tt.setupMock(mockUser)

			service := newTestAuthService(mockUser, new(MockAdminRepository), new(MockSubscriptionRepository), new(MockTokenStore), new(MockMailer))
			err := service.ChangePassword(context.Background(), 3, tt.currentPassword, "brand-new-pass")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockUser.AssertExpectations(t)
		})
	}
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	t.Run("known email stores token and sends mail", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockTokens := new(MockTokenStore)
		mockMail := new(MockMailer)

		mockUser.On("FindUserByEmail", mock.Anything, "user@example.com").
			Return(&model.User{ID: 5, Email: "user@example.com"}, nil)
		mockTokens.On("StoreResetToken", mock.Anything, "user@example.com", mock.AnythingOfType("string")).Return(nil)
		mockMail.On("SendPasswordReset", "user@example.com", mock.AnythingOfType("string")).Return(nil)

		service := newTestAuthService(mockUser, new(MockAdminRepository), new(MockSubscriptionRepository), mockTokens, mockMail)
		err := service.RequestPasswordReset(context.Background(), "user@example.com")

		assert.NoError(t, err)
		mockTokens.AssertExpectations(t)
		mockMail.AssertExpectations(t)
	})

	t.Run("unknown email succeeds without storing anything", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockTokens := new(MockTokenStore)
		mockMail := new(MockMailer)

		mockUser.On("FindUserByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := newTestAuthService(mockUser, new(MockAdminRepository), new(MockSubscriptionRepository), mockTokens, mockMail)
		err := service.RequestPasswordReset(context.Background(), "ghost@example.com")

		assert.NoError(t, err)
		mockTokens.AssertNotCalled(t, "StoreResetToken", mock.Anything, mock.Anything, mock.Anything)
		mockMail.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything)
	})

	t.Run("mail failure is swallowed", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockTokens := new(MockTokenStore)
		mockMail := new(MockMailer)

		mockUser.On("FindUserByEmail", mock.Anything, "user@example.com").
			Return(&model.User{ID: 5, Email: "user@example.com"}, nil)
		mockTokens.On("StoreResetToken", mock.Anything, "user@example.com", mock.AnythingOfType("string")).Return(nil)
		mockMail.On("SendPasswordReset", "user@example.com", mock.AnythingOfType("string")).Return(assert.AnError)

		service := newTestAuthService(mockUser, new(MockAdminRepository), new(MockSubscriptionRepository), mockTokens, mockMail)
		err := service.RequestPasswordReset(context.Background(), "user@example.com")

		assert.NoError(t, err)
	})
}

func TestAuthService_CompletePasswordReset(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		confirmation  string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:         "successful reset",
			password:     "new-password",
			confirmation: "new-password",
			setupMock: func(mUser *MockUserRepository, mTokens *MockTokenStore) {
				mTokens.On("ConsumeResetToken", mock.Anything, "user@example.com", "token-123").Return(true, nil)
				mUser.On("FindUserByEmail", mock.Anything, "user@example.com").
					Return(&model.User{ID: 5, Email: "user@example.com"}, nil)
				mUser.On("UpdatePassword", mock.Anything, uint(5), mock.AnythingOfType("string")).Return(nil)
			},
		},
		{
			name:          "password mismatch",
			password:      "new-password",
			confirmation:  "other-password",
			setupMock:     func(mUser *MockUserRepository, mTokens *MockTokenStore) {},
			expectedError: apperrors.ErrPasswordMismatch,
		},
		{
			name:         "invalid token",
			password:     "new-password",
			confirmation: "new-password",
			setupMock: func(mUser *MockUserRepository, mTokens *MockTokenStore) {
				mTokens.On("ConsumeResetToken", mock.Anything, "user@example.com", "token-123").Return(false, nil)
			},
			expectedError: apperrors.ErrInvalidResetToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockTokens := new(MockTokenStore)
			tt.setupMock(mockUser, mockTokens)

			service := newTestAuthService(mockUser, new(MockAdminRepository), new(MockSubscriptionRepository), mockTokens, new(MockMailer))
			err := service.CompletePasswordReset(context.Background(), "user@example.com", "token-123", tt.password, tt.confirmation)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockUser.AssertExpectations(t)
			mockTokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("revokes token until expiry", func(t *testing.T) {
		mockTokens := new(MockTokenStore)
		mockTokens.On("RevokeToken", mock.Anything, "jti-1", mock.AnythingOfType("time.Duration")).Return(nil)

		service := newTestAuthService(new(MockUserRepository), new(MockAdminRepository), new(MockSubscriptionRepository), mockTokens, new(MockMailer))
		err := service.Logout(context.Background(), "jti-1", time.Now().Add(time.Hour))

		assert.NoError(t, err)
		mockTokens.AssertExpectations(t)
	})

	t.Run("expired token needs no denylist entry", func(t *testing.T) {
		mockTokens := new(MockTokenStore)

		service := newTestAuthService(new(MockUserRepository), new(MockAdminRepository), new(MockSubscriptionRepository), mockTokens, new(MockMailer))
		err := service.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute))

		assert.NoError(t, err)
		mockTokens.AssertNotCalled(t, "RevokeToken", mock.Anything, mock.Anything, mock.Anything)
	})
}
