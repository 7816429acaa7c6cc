package postgres

import (
	"fmt"

	"gorm.io/gorm"
	"merchant-verify.backend/internal/infrastructure/models"
)

// Models lists every persisted model in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Reviewer{},
		&models.Merchant{},
		&models.TransactionPattern{},
		&models.VerificationFlag{},
		&models.VerificationReport{},
		&models.AuditLog{},
	}
}

// AutoMigrate creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
