package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// CustomerAddress is the single shipping address kept per profile.
type CustomerAddress struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProfileID uuid.UUID        `gorm:"column:profile_id;type:uuid;not null;uniqueIndex:customer_addresses_profile_id_key"`
	Name      *string          `gorm:"column:name"`
	Prefix    enums.NamePrefix `gorm:"column:prefix;not null"`
	Address   string           `gorm:"column:address;type:text;not null"`
	Post      string           `gorm:"column:post;not null"`
	District  string           `gorm:"column:district;not null"`
	State     string           `gorm:"column:state;not null"`
	Pin       string           `gorm:"column:pin;not null"`
	Country   string           `gorm:"column:country;not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
