package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/enums"
)

// Patient is a walk-in or referred customer record, coded PT + date + random.
type Patient struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PatientCode string     `gorm:"column:patient_code;not null;uniqueIndex:patients_patient_code_key"`
	Name        string     `gorm:"column:name;not null"`
	Mobile      string     `gorm:"column:mobile;not null"`
	Address     string     `gorm:"column:address;type:text;not null"`
	Post        string     `gorm:"column:post;not null"`
	Dist        string     `gorm:"column:dist;not null"`
	State       string     `gorm:"column:state;not null"`
	Country     string     `gorm:"column:country;not null"`
	Email       *string    `gorm:"column:email"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth;type:date"`
	Photo       *string    `gorm:"column:photo"`
	AdharNumber *string    `gorm:"column:adhar_number"`
	RegDate     *time.Time `gorm:"column:reg_date;type:date"`
	ReferredBy  *string    `gorm:"column:referred_by"`
	Sex         *enums.Sex `gorm:"column:sex"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
