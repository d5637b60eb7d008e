package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups catalog products. CatCode is sequential.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CatCode     string    `gorm:"column:catcode;not null;uniqueIndex:categories_catcode_key"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description;type:text"`
	Image       *string   `gorm:"column:image"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
