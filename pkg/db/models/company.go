package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is the licensed trading entity, coded C + date + random.
type Company struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyCode string     `gorm:"column:company_code;not null;uniqueIndex:companies_company_code_key"`
	CompanyName string     `gorm:"column:company_name;not null"`
	Address     string     `gorm:"column:address;type:text;not null"`
	Post        string     `gorm:"column:post;not null"`
	Dist        string     `gorm:"column:dist;not null"`
	State       string     `gorm:"column:state;not null"`
	Pin         string     `gorm:"column:pin;not null"`
	Country     string     `gorm:"column:country;not null"`
	Logo        *string    `gorm:"column:logo"`
	GST         string     `gorm:"column:gst;not null"`
	RegDate     *time.Time `gorm:"column:reg_date;type:date"`
	ExpDate     *time.Time `gorm:"column:exp_date;type:date"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
