package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"merchant-verify.backend/internal/domain/entities"
)

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
	UpdateRisk(ctx context.Context, id uuid.UUID, score float64, level entities.RiskLevel) (bool, error)
	List(ctx context.Context, filter entities.MerchantFilter, limit, offset int) ([]*entities.Merchant, int64, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*entities.Merchant, int64, error)
	ListUnscored(ctx context.Context, limit int) ([]*entities.Merchant, error)
	CountByStatus(ctx context.Context) (map[entities.MerchantStatus]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByRiskLevel(ctx context.Context) (map[entities.RiskLevel]int64, error)
	CountByBusinessType(ctx context.Context) (map[entities.BusinessType]int64, error)
}

// TransactionPatternRepository stores transaction analysis snapshots
type TransactionPatternRepository interface {
	Create(ctx context.Context, pattern *entities.TransactionPattern) error
	GetLatest(ctx context.Context, merchantID uuid.UUID) (*entities.TransactionPattern, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.TransactionPattern, error)
}
