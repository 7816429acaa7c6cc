package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ReviewerID *uuid.UUID `gorm:"type:uuid;index"`
	MerchantID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Action     string     `gorm:"type:varchar(20);not null"`
	Timestamp  time.Time  `gorm:"not null;index"`
	IPAddress  *string    `gorm:"type:varchar(45)"`
	Details    datatypes.JSON
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
