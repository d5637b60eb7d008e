package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use emailed token, valid for one hour.
type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Token     string    `gorm:"column:token;not null;uniqueIndex:password_reset_tokens_token_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
}

// IsValid reports whether the token is still inside its expiry window.
func (t PasswordResetToken) IsValid(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
