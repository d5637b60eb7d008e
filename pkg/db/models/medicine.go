package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// Medicine is the back-office stock entity, coded MED + date + random.
type Medicine struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MedicineCode string            `gorm:"column:medicine_code;not null;uniqueIndex:medicines_medicine_code_key"`
	SKUName      string            `gorm:"column:sku_name;not null"`
	SKUCode      *string           `gorm:"column:sku_code"`
	UnitPrefix   *string           `gorm:"column:unit_prefix"`
	PrefixQty    *int              `gorm:"column:prefix_qty"`
	CatCode      *string           `gorm:"column:catcode"`
	PackageCount int               `gorm:"column:package_count;not null;default:1"`
	MRP          *decimal.Decimal  `gorm:"column:mrp;type:numeric(12,2)"`
	SellDiscount *decimal.Decimal  `gorm:"column:sell_discount;type:numeric(5,2)"`
	Unit         string            `gorm:"column:unit;not null"`
	Location1    *string           `gorm:"column:location1"`
	Location2    *string           `gorm:"column:location2"`
	Description  *string           `gorm:"column:description;type:text"`
	Dosage       *string           `gorm:"column:dosage"`
	Ingredients  *string           `gorm:"column:ingredients;type:text"`
	Status       enums.StockStatus `gorm:"column:status;not null;default:'in stock'"`
	HSNCode      *string           `gorm:"column:hsn_code"`
	ReorderLevel int               `gorm:"column:reorder_level;not null;default:0"`
	Media        *MedicineMedia    `gorm:"foreignKey:MedicineID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// MedicineMedia holds media URLs for a medicine, one row per medicine.
type MedicineMedia struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MedicineID uuid.UUID `gorm:"column:medicine_id;type:uuid;not null;uniqueIndex:medicine_media_medicine_key"`
	Img1       *string   `gorm:"column:img1"`
	Img2       *string   `gorm:"column:img2"`
	Img3       *string   `gorm:"column:img3"`
	Img4       *string   `gorm:"column:img4"`
	VideoURL   *string   `gorm:"column:video_url"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
