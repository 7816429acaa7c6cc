package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type VerificationReport struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	MerchantID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	GeneratedBy     *uuid.UUID     `gorm:"type:uuid"`
	ReportDate      time.Time      `gorm:"not null;index"`
	ReportData      datatypes.JSON `gorm:"not null"`
	RiskAssessment  string         `gorm:"type:text;not null"`
	Recommendations string         `gorm:"type:text;not null"`

	// Associations
	Merchant Merchant  `gorm:"foreignKey:MerchantID"`
	Reviewer *Reviewer `gorm:"foreignKey:GeneratedBy"`
}
