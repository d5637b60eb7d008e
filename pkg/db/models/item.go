package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is the general-goods catalog entity, sequentially coded like
// MedicalItem but kept as its own table.
type Item struct {
	ID                 uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemCode           string           `gorm:"column:item_code;not null;uniqueIndex:items_item_code_key"`
	SKUName            string           `gorm:"column:sku_name;not null"`
	SKUCode            string           `gorm:"column:sku_code;not null;uniqueIndex:items_sku_code_key"`
	Unit               string           `gorm:"column:unit;not null"`
	UnitPrefix         *string          `gorm:"column:unit_prefix"`
	PrefixQty          *int             `gorm:"column:prefix_qty"`
	Category           *string          `gorm:"column:category"`
	PackageCount       int              `gorm:"column:package_count;not null;default:1"`
	ReorderLevel       int              `gorm:"column:reorder_level;not null;default:0"`
	MRP                *decimal.Decimal `gorm:"column:mrp;type:numeric(12,2)"`
	SellDiscount       *decimal.Decimal `gorm:"column:sell_discount;type:numeric(5,2)"`
	StorageLocation1   *string          `gorm:"column:storage_location1"`
	StorageLocation2   *string          `gorm:"column:storage_location2"`
	HSNCode            *string          `gorm:"column:hsn_code"`
	Description        *string          `gorm:"column:description;type:text"`
	DosageInstructions *string          `gorm:"column:dosage_instructions;type:text"`
	Ingredients        *string          `gorm:"column:ingredients;type:text"`
	Media              *ItemMedia       `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// ItemMedia holds media URLs for an item, one row per item.
type ItemMedia struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:item_media_item_key"`
	Img1      *string   `gorm:"column:img1"`
	Img2      *string   `gorm:"column:img2"`
	Img3      *string   `gorm:"column:img3"`
	Img4      *string   `gorm:"column:img4"`
	VideoURL  *string   `gorm:"column:video_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
