package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a cart line. The composite unique index is the authority for
// the one-line-per-product rule; the upsert path relies on it.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CartID    uuid.UUID       `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:order_items_cart_id_item_code_key"`
	ItemCode  string          `gorm:"column:item_code;not null;uniqueIndex:order_items_cart_id_item_code_key"`
	Qty       int             `gorm:"column:qty;not null;default:1"`
	Rate      decimal.Decimal `gorm:"column:rate;type:numeric(12,2);not null;default:0"`
	Amt       decimal.Decimal `gorm:"column:amt;type:numeric(12,2);not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
