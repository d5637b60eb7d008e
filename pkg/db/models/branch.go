package models

import (
	"time"

	"github.com/google/uuid"
)

// Branch is a company outlet, coded B + date + random.
type Branch struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BranchCode string     `gorm:"column:branch_code;not null;uniqueIndex:branches_branch_code_key"`
	Name       string     `gorm:"column:name;not null"`
	Address    string     `gorm:"column:address;type:text;not null"`
	Post       string     `gorm:"column:post;not null"`
	Dist       string     `gorm:"column:dist;not null"`
	State      string     `gorm:"column:state;not null"`
	Pin        string     `gorm:"column:pin;not null"`
	Country    string     `gorm:"column:country;not null"`
	RegDate    *time.Time `gorm:"column:reg_date;type:date"`
	ExpDate    *time.Time `gorm:"column:exp_date;type:date"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
