package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// Cart is the draft-or-confirmed order. While DeliveryStatus is CART the
// totals are advisory; confirmation recomputes and freezes them together
// with the invoice number.
type Cart struct {
	ID             uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNo        string               `gorm:"column:order_no;not null;uniqueIndex:carts_order_no_key"`
	Date           *time.Time           `gorm:"column:date;type:date"`
	Time           *string              `gorm:"column:time;type:time"`
	CCode          *string              `gorm:"column:ccode"`
	InvNo          *string              `gorm:"column:inv_no;uniqueIndex:carts_inv_no_key"`
	TotalAmount    decimal.Decimal      `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	CourierAmount  decimal.Decimal      `gorm:"column:courier_amount;type:numeric(12,2);not null;default:0"`
	NetAmount      decimal.Decimal      `gorm:"column:net_amount;type:numeric(12,2);not null;default:0"`
	DespatchNo     *string              `gorm:"column:despatch_no"`
	Courier        *string              `gorm:"column:courier"`
	DeliveryStatus enums.DeliveryStatus `gorm:"column:delivery_status;not null;default:'CART'"`
	Discount       decimal.Decimal      `gorm:"column:discount;type:numeric(12,2);not null;default:0"`
	PaymentMode    *enums.PaymentMode   `gorm:"column:payment_mode"`
	Items          []OrderItem          `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
