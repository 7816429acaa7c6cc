package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Merchant struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:varchar(255);not null;index"`
	BusinessType        string    `gorm:"type:varchar(50);not null;index"`
	RegistrationNumber  string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	TaxID               *string   `gorm:"type:varchar(100)"`
	Website             *string   `gorm:"type:varchar(255)"`
	Email               string    `gorm:"type:varchar(255);not null"`
	Phone               string    `gorm:"type:varchar(20);not null"`
	Address             string    `gorm:"type:text;not null"`
	City                string    `gorm:"type:varchar(100);not null"`
	State               string    `gorm:"type:varchar(100);not null"`
	Country             string    `gorm:"type:varchar(100);not null;index"`
	PostalCode          string    `gorm:"type:varchar(20);not null"`
	Status              string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	RiskLevel           *string   `gorm:"type:varchar(20);index"`
	RiskScore           *float64  `gorm:"type:double precision"`
	VerificationData    datatypes.JSON
	ExternalAPIResponse datatypes.JSON `gorm:"column:external_api_response"`
	CreatedBy           *uuid.UUID     `gorm:"type:uuid"`
	VerifiedBy          *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt           time.Time      `gorm:"index"`
	UpdatedAt           time.Time
	LastVerifiedAt      *time.Time
}
