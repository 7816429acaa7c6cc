package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/internal/workflow"
	"merchant-verify.backend/pkg/logger"
	"merchant-verify.backend/pkg/metrics"
	"merchant-verify.backend/pkg/utils"
)

// FlagUsecase raises and resolves verification flags. Every command that
// can move a merchant between flagged and verified holds the merchant row
// lock for the whole transaction.
type FlagUsecase struct {
	uow          repositories.UnitOfWork
	merchantRepo repositories.MerchantRepository
	flagRepo     repositories.FlagRepository
	auditRepo    repositories.AuditLogRepository
	cache        StatsCache
	now          func() time.Time
}

func NewFlagUsecase(
	uow repositories.UnitOfWork,
	merchantRepo repositories.MerchantRepository,
	flagRepo repositories.FlagRepository,
	auditRepo repositories.AuditLogRepository,
	cache StatsCache,
) *FlagUsecase {
	return &FlagUsecase{
		uow:          uow,
		merchantRepo: merchantRepo,
		flagRepo:     flagRepo,
		auditRepo:    auditRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// Raise opens a flag on a merchant
func (u *FlagUsecase) Raise(ctx context.Context, merchantID uuid.UUID, input *entities.CreateFlagInput, actor entities.Actor) (*entities.VerificationFlag, error) {
	var flag *entities.VerificationFlag
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		current, err := u.merchantRepo.GetByID(u.uow.WithLock(txCtx), merchantID)
		if err != nil {
			return err
		}
		t, err := workflow.RaiseFlag(current, *input, actor, u.now())
		if err != nil {
			return err
		}
		if err := u.flagRepo.Create(txCtx, t.Flag); err != nil {
			return err
		}
		if err := applyTransition(txCtx, t, u.merchantRepo, u.auditRepo, false); err != nil {
			return err
		}
		flag = t.Flag
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordFlagEvent("raised")
	invalidateStats(ctx, u.cache)
	logger.Info(ctx, "Verification flag raised",
		logger.MerchantID(merchantID),
		zap.String("flag_type", string(flag.FlagType)),
		zap.String("severity", string(flag.Severity)),
	)
	return flag, nil
}

// Resolve closes a flag as resolved or dismissed
func (u *FlagUsecase) Resolve(ctx context.Context, flagID uuid.UUID, input *entities.ResolveFlagInput, actor entities.Actor) (*entities.VerificationFlag, error) {
	var closed *entities.VerificationFlag
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)
		flag, err := u.flagRepo.GetByID(lockCtx, flagID)
		if err != nil {
			return err
		}
		current, err := u.merchantRepo.GetByID(lockCtx, flag.MerchantID)
		if err != nil {
			return err
		}
		active, err := u.flagRepo.CountActiveByMerchant(txCtx, flag.MerchantID)
		if err != nil {
			return err
		}
		otherActive := active
		if flag.Status.IsActive() && otherActive > 0 {
			otherActive--
		}

		t, err := workflow.ResolveFlag(current, flag, *input, otherActive, actor, u.now())
		if err != nil {
			return err
		}
		if err := u.flagRepo.Update(txCtx, t.Flag); err != nil {
			return err
		}
		if err := applyTransition(txCtx, t, u.merchantRepo, u.auditRepo, false); err != nil {
			return err
		}
		closed = t.Flag
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordFlagEvent(string(closed.Status))
	invalidateStats(ctx, u.cache)
	logger.Info(ctx, "Verification flag closed",
		logger.MerchantID(closed.MerchantID),
		zap.String("flag_id", closed.ID.String()),
		zap.String("status", string(closed.Status)),
	)
	return closed, nil
}

// Update edits an active flag's description, severity or review status
func (u *FlagUsecase) Update(ctx context.Context, flagID uuid.UUID, input *entities.UpdateFlagInput, actor entities.Actor) (*entities.VerificationFlag, error) {
	var updated *entities.VerificationFlag
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		flag, err := u.flagRepo.GetByID(u.uow.WithLock(txCtx), flagID)
		if err != nil {
			return err
		}
		t, err := workflow.UpdateFlag(flag, *input, actor, u.now())
		if err != nil {
			return err
		}
		if err := u.flagRepo.Update(txCtx, t.Flag); err != nil {
			return err
		}
		if err := u.auditRepo.Create(txCtx, t.Audit); err != nil {
			return err
		}
		updated = t.Flag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *FlagUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationFlag, error) {
	return u.flagRepo.GetByID(ctx, id)
}

// ListByMerchant returns every flag of a merchant, newest first
func (u *FlagUsecase) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationFlag, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	return u.flagRepo.ListByMerchant(ctx, merchantID)
}

// ListActive returns open and investigating flags across merchants
func (u *FlagUsecase) ListActive(ctx context.Context, params utils.PaginationParams) (utils.Page[*entities.VerificationFlag], error) {
	items, total, err := u.flagRepo.ListActive(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return utils.Page[*entities.VerificationFlag]{}, err
	}
	return utils.NewPage(items, total, params), nil
}
