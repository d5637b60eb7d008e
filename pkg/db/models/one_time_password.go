package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// OneTimePassword is a 6-digit verification code tied to a mobile number.
// A row is spent once VerifiedAt is set.
type OneTimePassword struct {
	ID           uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MobileNumber string           `gorm:"column:mobile_number;not null"`
	Email        *string          `gorm:"column:email"`
	Code         string           `gorm:"column:code;not null"`
	Purpose      enums.OTPPurpose `gorm:"column:purpose;not null;default:'register'"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt    time.Time        `gorm:"column:expires_at;not null"`
	VerifiedAt   *time.Time       `gorm:"column:verified_at"`
	CustomerCode *string          `gorm:"column:customer_code"`
}

// IsValid reports whether the code is unspent and unexpired.
func (o OneTimePassword) IsValid(now time.Time) bool {
	return o.VerifiedAt == nil && now.Before(o.ExpiresAt)
}
