package model

import "time"

// PasswordResetToken is a single-use credential authorizing one password
// change without a session. A token is redeemable while Used is false and
// ExpiresAt has not passed; both terminal states are permanent.
type PasswordResetToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Token     string    `json:"-" gorm:"size:64;uniqueIndex;not null"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	ExpiresAt time.Time `json:"-" gorm:"not null"`
	Used      bool      `json:"-" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"-"`
}

// TableName keeps the table name stable regardless of struct renames.
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
