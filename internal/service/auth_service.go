package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"siteworks/internal/auth"
	"siteworks/internal/cache"
	"siteworks/internal/errors"
	"siteworks/internal/mailer"
	"siteworks/internal/model"
	"siteworks/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Company   string
}

// AuthService orchestrates registration, login and credential recovery.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	GetProfile(ctx context.Context, userID uint) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uint, update model.ProfileUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword, confirmPassword string) error
	UpdateNotificationPreferences(ctx context.Context, userID uint, update model.NotificationUpdate) (model.NotificationPreferences, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error
}

type authService struct {
	userRepo      repository.UserRepository
	hasher        *auth.PasswordHasher
	jwtService    *auth.JWTService
	resetStore    auth.ResetTokenStoreInterface
	mailer        mailer.Mailer
	cache         *cache.Client
	resetLinkBase string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	resetStore auth.ResetTokenStoreInterface,
	m mailer.Mailer,
	cacheClient *cache.Client,
	resetLinkBase string,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		hasher:        hasher,
		jwtService:    jwtService,
		resetStore:    resetStore,
		mailer:        m,
		cache:         cacheClient,
		resetLinkBase: resetLinkBase,
	}
}

func (s *authService) profileCacheKey(userID uint) string {
	return fmt.Sprintf("user:%d", userID)
}

// Register creates a client account and returns it with a fresh bearer token.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, "", errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Email:                in.Email,
		PasswordHash:         hash,
		Role:                 model.RoleClient, // role is fixed at registration
		FirstName:            in.FirstName,
		LastName:             in.LastName,
		Phone:                in.Phone,
		Company:              in.Company,
		NotifyProjectUpdates: true,
		NotifyTicketReplies:  true,
		NotifyInvoices:       true,
		NotifyMarketing:      false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip in after the existence check;
		// the unique index on email reports it as a duplicate key.
		if err == gorm.ErrDuplicatedKey {
			return nil, "", errors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user and returns a fresh bearer token. Unknown email
// and wrong password both yield ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

// GetProfile retrieves a user by id with caching.
func (s *authService) GetProfile(ctx context.Context, userID uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.profileCacheKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetJSON(ctx, s.profileCacheKey(userID), user, profileCacheTTL)
	return user, nil
}

// UpdateProfile applies the supplied fields and returns the updated user.
// An empty update fails with ErrNoChanges and writes nothing.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, update model.ProfileUpdate) (*model.User, error) {
	if !update.HasChanges() {
		return nil, errors.ErrNoChanges
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, update); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	s.cache.Delete(ctx, s.profileCacheKey(userID))

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reload user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *authService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return errors.ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return errors.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.cache.Delete(ctx, s.profileCacheKey(userID))
	return nil
}

// UpdateNotificationPreferences applies the supplied flags and returns the
// resulting preference set. An empty update fails with ErrNoChanges.
func (s *authService) UpdateNotificationPreferences(ctx context.Context, userID uint, update model.NotificationUpdate) (model.NotificationPreferences, error) {
	if !update.HasChanges() {
		return model.NotificationPreferences{}, errors.ErrNoChanges
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return model.NotificationPreferences{}, errors.ErrUserNotFound
		}
		return model.NotificationPreferences{}, fmt.Errorf("find user: %w", err)
	}

	if err := s.userRepo.UpdateNotificationPrefs(ctx, userID, update); err != nil {
		return model.NotificationPreferences{}, fmt.Errorf("update preferences: %w", err)
	}
	s.cache.Delete(ctx, s.profileCacheKey(userID))

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.NotificationPreferences{}, fmt.Errorf("reload user: %w", err)
	}
	return user.Notifications(), nil
}

// ForgotPassword issues a reset token when the email belongs to an account.
// It returns nil either way: the response must not reveal whether the email
// exists.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, _, err := s.resetStore.IssueFor(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := s.resetLinkBase + "?token=" + token
	if err := s.mailer.SendPasswordReset(user.Email, link); err != nil {
		// Delivery failure must not surface to the client either.
		log.Printf("send password reset to %s: %v", user.Email, err)
	}
	return nil
}

// ResetPassword redeems a reset token and stores the new password. A token
// that fails after redemption stays burned.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return errors.ErrPasswordMismatch
	}

	userID, err := s.resetStore.Redeem(ctx, token)
	if err != nil {
		switch err {
		case auth.ErrResetTokenUsed:
			return errors.ErrResetLinkUsed
		case auth.ErrResetTokenNotFound, auth.ErrResetTokenExpired:
			return errors.ErrInvalidResetToken
		default:
			return fmt.Errorf("redeem reset token: %w", err)
		}
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.cache.Delete(ctx, s.profileCacheKey(userID))
	return nil
}
