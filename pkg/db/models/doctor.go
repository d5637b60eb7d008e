package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// Doctor is a consulting physician on record, coded D + date + random.
type Doctor struct {
	ID             uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	DoctorCode     string             `gorm:"column:doctor_code;not null;uniqueIndex:doctors_doctor_code_key"`
	Name           string             `gorm:"column:name;not null"`
	Qualification  string             `gorm:"column:qualification;not null"`
	Address        string             `gorm:"column:address;type:text;not null"`
	Post           string             `gorm:"column:post;not null"`
	Dist           string             `gorm:"column:dist;not null"`
	State          string             `gorm:"column:state;not null"`
	Country        string             `gorm:"column:country;not null"`
	Pin            string             `gorm:"column:pin;not null"`
	JoiningDate    *time.Time         `gorm:"column:joining_date;type:date"`
	ResignDate     *time.Time         `gorm:"column:resign_date;type:date"`
	Specialization string             `gorm:"column:specialization;not null"`
	Status         enums.RecordStatus `gorm:"column:status;not null;default:'active'"`
	Biodata        *string            `gorm:"column:biodata"`
	Photo          *string            `gorm:"column:photo"`
	Email          *string            `gorm:"column:email"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
