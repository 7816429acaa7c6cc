package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/internal/workflow"
	"merchant-verify.backend/pkg/logger"
)

// latestPattern returns nil when the merchant has never been analyzed.
func latestPattern(ctx context.Context, repo repositories.TransactionPatternRepository, merchantID uuid.UUID) (*entities.TransactionPattern, error) {
	p, err := repo.GetLatest(ctx, merchantID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// applyTransition persists the merchant and audit records of a workflow
// transition. Flags are written by the caller. It must run inside a unit
// of work.
func applyTransition(
	ctx context.Context,
	t *workflow.Transition,
	merchants repositories.MerchantRepository,
	audit repositories.AuditLogRepository,
	newMerchant bool,
) error {
	if t.Merchant != nil {
		var err error
		if newMerchant {
			err = merchants.Create(ctx, t.Merchant)
		} else {
			err = merchants.Update(ctx, t.Merchant)
		}
		if err != nil {
			return err
		}
	}
	if t.Audit != nil {
		if err := audit.Create(ctx, t.Audit); err != nil {
			return err
		}
	}
	return nil
}

func invalidateStats(ctx context.Context, cache StatsCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn(ctx, "Failed to invalidate dashboard cache", zap.Error(err))
	}
}
