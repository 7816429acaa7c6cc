package models

import (
	"time"

	"github.com/google/uuid"
)

type Reviewer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'reviewer'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
