package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MedicalItem is the storefront catalog product. MCode is a sequential
// natural-number code assigned on create.
type MedicalItem struct {
	ID                 uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MCode              string            `gorm:"column:mcode;not null;uniqueIndex:medical_items_mcode_key"`
	SKUName            string            `gorm:"column:sku_name;not null"`
	SKUCode            string            `gorm:"column:sku_code;not null;uniqueIndex:medical_items_sku_code_key"`
	Unit               string            `gorm:"column:unit;not null"`
	UnitPrefix         *string           `gorm:"column:unit_prefix"`
	PrefixQty          *int              `gorm:"column:prefix_qty"`
	CatCode            *string           `gorm:"column:catcode"`
	PackageCount       int               `gorm:"column:package_count;not null;default:1"`
	ReorderLevel       int               `gorm:"column:reorder_level;not null;default:0"`
	MRP                *decimal.Decimal  `gorm:"column:mrp;type:numeric(12,2)"`
	SellDiscount       *decimal.Decimal  `gorm:"column:sell_discount;type:numeric(5,2)"`
	StorageLocation1   *string           `gorm:"column:storage_location1"`
	StorageLocation2   *string           `gorm:"column:storage_location2"`
	HSNCode            *string           `gorm:"column:hsn_code"`
	Description        *string           `gorm:"column:description;type:text"`
	DosageInstructions *string           `gorm:"column:dosage_instructions;type:text"`
	BasicPrize         *decimal.Decimal  `gorm:"column:basic_prize;type:numeric(12,2)"`
	GST                *decimal.Decimal  `gorm:"column:gst;type:numeric(5,2)"`
	Media              *MedicalItemMedia `gorm:"foreignKey:MedicalItemID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// MedicalItemMedia holds the image and video URLs for a catalog product.
type MedicalItemMedia struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MedicalItemID uuid.UUID `gorm:"column:medical_item_id;type:uuid;not null;uniqueIndex:medical_item_media_item_key"`
	Img1          *string   `gorm:"column:img1"`
	Img2          *string   `gorm:"column:img2"`
	Img3          *string   `gorm:"column:img3"`
	Img4          *string   `gorm:"column:img4"`
	VideoURL      *string   `gorm:"column:video_url"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
