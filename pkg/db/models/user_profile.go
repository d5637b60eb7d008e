package models

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is the storefront-facing customer record, one per user.
// CustomerCode stays null until a flow needs it (checkout, address capture).
type UserProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:user_profiles_user_id_key"`
	CustomerCode *string   `gorm:"column:customer_code;uniqueIndex:user_profiles_customer_code_key"`
	Name         string    `gorm:"column:name;not null"`
	Phone        *string   `gorm:"column:phone"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
