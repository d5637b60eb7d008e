package models

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a purchasing counterparty, coded SUP + date + random.
type Supplier struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SupplierCode string    `gorm:"column:supplier_code;not null;uniqueIndex:suppliers_supplier_code_key"`
	Name         string    `gorm:"column:name;not null"`
	Position     *string   `gorm:"column:position"`
	Company      *string   `gorm:"column:company"`
	Address      *string   `gorm:"column:address;type:text"`
	Post         *string   `gorm:"column:post"`
	Pin          *string   `gorm:"column:pin"`
	District     *string   `gorm:"column:district"`
	State        *string   `gorm:"column:state"`
	Country      *string   `gorm:"column:country"`
	Mob          *string   `gorm:"column:mob"`
	Email        *string   `gorm:"column:email"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
