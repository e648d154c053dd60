package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"siteworks/internal/model"
)

// ResetTokenTTL is how long a password reset token stays redeemable.
const ResetTokenTTL = time.Hour

var (
	// ErrResetTokenNotFound is returned when no row matches the token.
	ErrResetTokenNotFound = errors.New("reset token not found")
	// ErrResetTokenUsed is returned when the token was already redeemed.
	ErrResetTokenUsed = errors.New("reset token already used")
	// ErrResetTokenExpired is returned when the token's expiry has passed.
	ErrResetTokenExpired = errors.New("reset token expired")
)

// ResetTokenStoreInterface defines the reset token lifecycle operations.
type ResetTokenStoreInterface interface {
	IssueFor(ctx context.Context, userID uint) (token string, expiresAt time.Time, err error)
	Redeem(ctx context.Context, token string) (userID uint, err error)
}

// ResetTokenStore manages single-use, time-boxed password reset tokens in the
// database. At most one unexpired, unused token exists per user: issuing a
// new token deletes all prior ones for that user in the same transaction.
type ResetTokenStore struct {
	db      *gorm.DB
	migrate sync.Once
}

// Ensure ResetTokenStore implements ResetTokenStoreInterface
var _ ResetTokenStoreInterface = (*ResetTokenStore)(nil)

// NewResetTokenStore creates a new reset token store.
func NewResetTokenStore(db *gorm.DB) *ResetTokenStore {
	return &ResetTokenStore{db: db}
}

// ensureTable creates the token table on first use.
func (s *ResetTokenStore) ensureTable() error {
	var err error
	s.migrate.Do(func() {
		err = s.db.AutoMigrate(&model.PasswordResetToken{})
	})
	return err
}

// IssueFor replaces any existing tokens for the user with a fresh one and
// returns it along with its expiry. Delete and insert run in one transaction
// so concurrent calls for the same user cannot leave two valid tokens.
func (s *ResetTokenStore) IssueFor(ctx context.Context, userID uint) (string, time.Time, error) {
	if err := s.ensureTable(); err != nil {
		return "", time.Time{}, fmt.Errorf("ensure reset token table: %w", err)
	}

	token, err := generateToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate reset token: %w", err)
	}
	expiresAt := time.Now().Add(ResetTokenTTL)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&model.PasswordResetToken{
			Token:     token,
			UserID:    userID,
			ExpiresAt: expiresAt,
		}).Error
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("store reset token: %w", err)
	}

	return token, expiresAt, nil
}

// Redeem looks up the token, marks it used and returns the owning user id.
// Once redeemed a token stays burned even if the caller's follow-up password
// write fails.
func (s *ResetTokenStore) Redeem(ctx context.Context, token string) (uint, error) {
	if err := s.ensureTable(); err != nil {
		return 0, fmt.Errorf("ensure reset token table: %w", err)
	}

	var row model.PasswordResetToken
	if err := s.db.WithContext(ctx).Where("token = ?", token).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrResetTokenNotFound
		}
		return 0, fmt.Errorf("find reset token: %w", err)
	}

	if err := checkRedeemable(&row, time.Now()); err != nil {
		return 0, err
	}

	res := s.db.WithContext(ctx).Model(&model.PasswordResetToken{}).
		Where("id = ? AND used = ?", row.ID, false).
		Update("used", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark reset token used: %w", res.Error)
	}
	// A concurrent redeem can burn the token between the lookup and the
	// update; zero rows affected means this call lost that race.
	if res.RowsAffected == 0 {
		return 0, ErrResetTokenUsed
	}

	return row.UserID, nil
}

// checkRedeemable reports whether a token row is still redeemable at the
// given instant.
func checkRedeemable(row *model.PasswordResetToken, now time.Time) error {
	if row.Used {
		return ErrResetTokenUsed
	}
	if now.After(row.ExpiresAt) {
		return ErrResetTokenExpired
	}
	return nil
}

// generateToken returns 256 bits of entropy, hex-encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
