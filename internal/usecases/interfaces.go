package usecases

import (
	"context"

	"merchant-verify.backend/internal/domain/entities"
)

// ExternalVerifier screens a merchant with a KYB provider and sanctions lists
type ExternalVerifier interface {
	Verify(ctx context.Context, m *entities.Merchant) (*entities.ExternalVerification, error)
	CheckSanctions(ctx context.Context, m *entities.Merchant) (*entities.SanctionsCheck, error)
}

// TransactionSource supplies a merchant's recent transactions
type TransactionSource interface {
	Transactions(ctx context.Context, m *entities.Merchant) ([]entities.Transaction, error)
}

// StatsCache stores dashboard aggregates
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}
