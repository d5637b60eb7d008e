package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// PurchaseOrder is a supplier order, coded PO + date + random. Items are
// replaced wholesale on update.
type PurchaseOrder struct {
	ID              uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseOrderNo string                    `gorm:"column:purchase_order_no;not null;uniqueIndex:purchase_orders_po_no_key"`
	Date            time.Time                 `gorm:"column:date;type:date;not null"`
	SupplierID      uuid.UUID                 `gorm:"column:supplier_id;type:uuid;not null"`
	StaffID         *uuid.UUID                `gorm:"column:staff_id;type:uuid"`
	Status          enums.PurchaseOrderStatus `gorm:"column:status;not null;default:'issued'"`
	Remarks         *string                   `gorm:"column:remarks;type:text"`
	Supplier        *Supplier                 `gorm:"foreignKey:SupplierID"`
	Items           []PurchaseOrderItem       `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

// PurchaseOrderItem is a single ordered SKU with requested vs delivered
// quantities.
type PurchaseOrderItem struct {
	ID              uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseOrderID uuid.UUID               `gorm:"column:purchase_order_id;type:uuid;not null"`
	ItemCode        *string                 `gorm:"column:item_code"`
	SKUCode         *string                 `gorm:"column:sku_code"`
	SKUName         *string                 `gorm:"column:sku_name"`
	ItemType        *enums.PurchaseItemType `gorm:"column:item_type"`
	Unit            *string                 `gorm:"column:unit"`
	FullQuantity    int                     `gorm:"column:full_quantity;not null;default:0"`
	ActualQuantity  int                     `gorm:"column:actual_quantity;not null;default:0"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
}
