package repositories

import (
	"context"

	"github.com/google/uuid"
	"merchant-verify.backend/internal/domain/entities"
)

// FlagRepository defines verification flag data operations
type FlagRepository interface {
	Create(ctx context.Context, flag *entities.VerificationFlag) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationFlag, error)
	Update(ctx context.Context, flag *entities.VerificationFlag) error
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationFlag, error)
	ListActive(ctx context.Context, limit, offset int) ([]*entities.VerificationFlag, int64, error)
	CountActiveByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
