package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ajurnie/internal/auth"
	apperrors "ajurnie/internal/errors"
	"ajurnie/internal/mailer"
	"ajurnie/internal/model"
	"ajurnie/internal/repository"
)

const bcryptCost = 10

// trialPeriod is the subscription trial granted at registration.
const trialPeriod = 7 * 24 * time.Hour

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// AuthService handles the session lifecycle: registration, login,
// current-user snapshots, password changes and resets, logout.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (token string, user *model.UserSnapshot, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.UserSnapshot, err error)
	CurrentUser(ctx context.Context, userID uint) (*model.UserSnapshot, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	RequestPasswordReset(ctx context.Context, email string) error
	CompletePasswordReset(ctx context.Context, email, token, password, confirmation string) error
}

type authService struct {
	userRepo       repository.UserRepository
	adminRepo      repository.AdminRepository
	subRepo        repository.SubscriptionRepository
	jwtService     *auth.JWTService
	tokenStore     auth.TokenStoreInterface
	mail           mailer.Mailer
	foundingCutoff time.Time
	appBaseURL     string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	subRepo repository.SubscriptionRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mail mailer.Mailer,
	foundingCutoff time.Time,
	appBaseURL string,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		adminRepo:      adminRepo,
		subRepo:        subRepo,
		jwtService:     jwtService,
		tokenStore:     tokenStore,
		mail:           mail,
		foundingCutoff: foundingCutoff,
		appBaseURL:     appBaseURL,
	}
}

// Register creates the user, a trial profile and a trial subscription,
// then issues a session token.
func (s *authService) Register(ctx context.Context, in RegisterInput) (string, *model.UserSnapshot, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	role := in.Role
	if role != model.RoleNovice && role != model.RoleTrainer {
		role = model.RoleNovice
	}

	user := &model.User{
		Email:          in.Email,
		PasswordHash:   string(hashedPassword),
		EmailConfirmed: true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	now := time.Now()
	trialEnds := now.Add(trialPeriod)
	founding := now.Before(s.foundingCutoff)

	profile := &model.UserProfile{
		UserID:                user.ID,
		Email:                 in.Email,
		FullName:              in.FullName,
		Role:                  role,
		SubscriptionStatus:    model.SubscriptionTrial,
		SubscriptionPlan:      model.PlanBasic,
		SubscriptionExpiresAt: &trialEnds,
		IsFoundingMember:      founding,
	}
	if err := s.userRepo.CreateProfile(ctx, profile); err != nil {
		return "", nil, fmt.Errorf("create profile: %w", err)
	}

	price, _ := PlanPrice(model.PlanBasic, founding)
	sub := &model.Subscription{
		UserID:           user.ID,
		Plan:             model.PlanBasic,
		Status:           model.SubscriptionTrial,
		Price:            price,
		StartDate:        now,
		CurrentPeriodEnd: trialEnds,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return "", nil, fmt.Errorf("create subscription: %w", err)
	}

	_, token, err := s.jwtService.GenerateToken(user.ID, user.Email, role, false)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, &model.UserSnapshot{
		ID:                 user.ID,
		Email:              user.Email,
		FullName:           in.FullName,
		Role:               role,
		SubscriptionStatus: model.SubscriptionTrial,
		SubscriptionPlan:   model.PlanBasic,
		IsFoundingMember:   founding,
	}, nil
}

// Login authenticates the pair and issues a session token. Unknown email
// and wrong password both map to ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.UserSnapshot, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	snapshot, err := s.snapshot(ctx, user)
	if err != nil {
		return "", nil, err
	}

	_, token, err := s.jwtService.GenerateToken(user.ID, user.Email, snapshot.Role, snapshot.IsAdmin)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, snapshot, nil
}

// CurrentUser returns a fresh snapshot for the session's user id. Role,
// admin flag and subscription state come from the database, not from
// token claims.
func (s *authService) CurrentUser(ctx context.Context, userID uint) (*model.UserSnapshot, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.snapshot(ctx, user)
}

// ChangePassword verifies the current password before storing a new hash.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrInvalidCurrentPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

// Logout denylists the session token id until its natural expiry.
func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.tokenStore.RevokeToken(ctx, tokenID, ttl)
}

// RequestPasswordReset stores a one-shot token and mails a reset link.
// The outcome is identical whether or not the email exists.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil
	}

	token := uuid.New().String()
	if err := s.tokenStore.StoreResetToken(ctx, email, token); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?email=%s&token=%s", s.appBaseURL, email, token)
	if err := s.mail.SendPasswordReset(email, resetURL); err != nil {
		// Deliverability problems must not reveal whether the account exists.
		log.Printf("password reset mail for %s failed: %v", email, err)
	}
	return nil
}

// CompletePasswordReset consumes the token and stores the new password.
// The caller signs in afterwards; no session is created here.
func (s *authService) CompletePasswordReset(ctx context.Context, email, token, password, confirmation string) error {
	if password != confirmation {
		return apperrors.ErrPasswordMismatch
	}

	ok, err := s.tokenStore.ConsumeResetToken(ctx, email, token)
	if err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	if !ok {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.userRepo.UpdatePassword(ctx, user.ID, string(hashed))
}

// snapshot builds the current-session view from fresh profile and
// admin-table lookups.
func (s *authService) snapshot(ctx context.Context, user *model.User) (*model.UserSnapshot, error) {
	snap := &model.UserSnapshot{
		ID:                 user.ID,
		Email:              user.Email,
		Role:               model.RoleNovice,
		SubscriptionStatus: model.SubscriptionNone,
	}

	profile, err := s.userRepo.FindProfileByUserID(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	if profile != nil {
		snap.FullName = profile.FullName
		snap.Role = profile.Role
		snap.SubscriptionStatus = profile.SubscriptionStatus
		snap.SubscriptionPlan = profile.SubscriptionPlan
		snap.IsFoundingMember = profile.IsFoundingMember
	}

	isAdmin, err := s.adminRepo.IsAdmin(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}
	snap.IsAdmin = isAdmin || snap.Role == model.RoleAdmin

	return snap, nil
}
