package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// Coupon is a percentage promo with an optional validity window.
type Coupon struct {
	ID          uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string             `gorm:"column:name;not null"`
	PromoStart  *time.Time         `gorm:"column:promo_start;type:date"`
	PromoEnd    *time.Time         `gorm:"column:promo_end;type:date"`
	DiscountPct decimal.Decimal    `gorm:"column:discount_pct;type:numeric(5,2);not null"`
	Status      enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	Type        enums.CouponType   `gorm:"column:type;not null;default:'new'"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
