package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TransactionPattern struct {
	ID                            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	MerchantID                    uuid.UUID           `gorm:"type:uuid;not null;index:idx_patterns_merchant_date,priority:1"`
	AverageTransactionAmount      decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	MonthlyTransactionVolume      int                 `gorm:"not null;default:0"`
	HighRiskCountriesPercentage   float64             `gorm:"not null;default:0"`
	UnusualHoursPercentage        float64             `gorm:"not null;default:0"`
	SimilarTransactionsPercentage float64             `gorm:"not null;default:0"`
	ChargebackRate                float64             `gorm:"not null;default:0"`
	TransactionData               datatypes.JSON
	AnalysisError                 *string   `gorm:"type:text"`
	AnalysisDate                  time.Time `gorm:"not null;index:idx_patterns_merchant_date,priority:2"`
}
