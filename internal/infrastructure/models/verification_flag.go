package models

import (
	"time"

	"github.com/google/uuid"
)

type VerificationFlag struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	MerchantID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	FlagType        string     `gorm:"type:varchar(50);not null"`
	Description     string     `gorm:"type:text;not null"`
	Severity        string     `gorm:"type:varchar(20);not null;default:'medium'"`
	Status          string     `gorm:"type:varchar(20);not null;default:'open';index"`
	CreatedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"index"`
	ResolvedAt      *time.Time
	ResolvedBy      *uuid.UUID `gorm:"type:uuid"`
	ResolutionNotes *string    `gorm:"type:text"`
}
