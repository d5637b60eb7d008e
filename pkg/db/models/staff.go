package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// Staff is a pharmacy employee, coded P + date + random.
type Staff struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PCode         string             `gorm:"column:pcode;not null;uniqueIndex:staff_pcode_key"`
	Name          string             `gorm:"column:name;not null"`
	Address       string             `gorm:"column:address;type:text;not null"`
	Post          string             `gorm:"column:post;not null"`
	Dist          string             `gorm:"column:dist;not null"`
	State         string             `gorm:"column:state;not null"`
	Country       string             `gorm:"column:country;not null"`
	Pin           string             `gorm:"column:pin;not null"`
	JoiningDate   *time.Time         `gorm:"column:joining_date;type:date"`
	ResignDate    *time.Time         `gorm:"column:resign_date;type:date"`
	Status        enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	Biodata       *string            `gorm:"column:biodata"`
	Photo         *string            `gorm:"column:photo"`
	Qualification string             `gorm:"column:qualification;not null"`
	Email         *string            `gorm:"column:email"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the plural irregular.
func (Staff) TableName() string {
	return "staff"
}
