package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/internal/workflow"
	"merchant-verify.backend/pkg/logger"
	"merchant-verify.backend/pkg/metrics"
	"merchant-verify.backend/pkg/utils"
)

const recentAuditLimit = 10

// MerchantUsecase handles merchant registration, review and verification
type MerchantUsecase struct {
	uow          repositories.UnitOfWork
	merchantRepo repositories.MerchantRepository
	patternRepo  repositories.TransactionPatternRepository
	flagRepo     repositories.FlagRepository
	reportRepo   repositories.ReportRepository
	auditRepo    repositories.AuditLogRepository
	assessor     *scoring.Assessor
	verifier     ExternalVerifier
	cache        StatsCache
	now          func() time.Time
}

// NewMerchantUsecase creates a new merchant usecase
func NewMerchantUsecase(
	uow repositories.UnitOfWork,
	merchantRepo repositories.MerchantRepository,
	patternRepo repositories.TransactionPatternRepository,
	flagRepo repositories.FlagRepository,
	reportRepo repositories.ReportRepository,
	auditRepo repositories.AuditLogRepository,
	assessor *scoring.Assessor,
	verifier ExternalVerifier,
	cache StatsCache,
) *MerchantUsecase {
	return &MerchantUsecase{
		uow:          uow,
		merchantRepo: merchantRepo,
		patternRepo:  patternRepo,
		flagRepo:     flagRepo,
		reportRepo:   reportRepo,
		auditRepo:    auditRepo,
		assessor:     assessor,
		verifier:     verifier,
		cache:        cache,
		now:          time.Now,
	}
}

// Create registers a pending merchant
func (u *MerchantUsecase) Create(ctx context.Context, input *entities.CreateMerchantInput, actor entities.Actor) (*entities.Merchant, error) {
	t, err := workflow.Register(*input, actor, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return applyTransition(txCtx, t, u.merchantRepo, u.auditRepo, true)
	}); err != nil {
		return nil, err
	}

	invalidateStats(ctx, u.cache)
	logger.Info(ctx, "Merchant registered", logger.MerchantID(t.Merchant.ID), zap.String("business_type", string(t.Merchant.BusinessType)))
	return t.Merchant, nil
}

// GetByID gets a merchant by ID
func (u *MerchantUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	return u.merchantRepo.GetByID(ctx, id)
}

// GetDetail gathers the merchant with its latest pattern, flags, recent
// audit entries and reports.
func (u *MerchantUsecase) GetDetail(ctx context.Context, id uuid.UUID) (*entities.MerchantDetail, error) {
	m, err := u.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	latest, err := latestPattern(ctx, u.patternRepo, id)
	if err != nil {
		return nil, err
	}
	flags, err := u.flagRepo.ListByMerchant(ctx, id)
	if err != nil {
		return nil, err
	}
	audit, err := u.auditRepo.ListByMerchant(ctx, id, recentAuditLimit)
	if err != nil {
		return nil, err
	}
	reports, err := u.reportRepo.ListByMerchant(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.MerchantDetail{
		Merchant:      m,
		LatestPattern: latest,
		Flags:         flags,
		RecentAudit:   audit,
		Reports:       reports,
	}, nil
}

// Update edits a merchant profile
func (u *MerchantUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdateMerchantInput, actor entities.Actor) (*entities.Merchant, error) {
	var updated *entities.Merchant
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)
		current, err := u.merchantRepo.GetByID(lockCtx, id)
		if err != nil {
			return err
		}
		t, err := workflow.Update(current, *input, actor, u.now())
		if err != nil {
			return err
		}
		if err := applyTransition(txCtx, t, u.merchantRepo, u.auditRepo, false); err != nil {
			return err
		}
		updated = t.Merchant
		return nil
	})
	if err != nil {
		return nil, err
	}
	invalidateStats(ctx, u.cache)
	return updated, nil
}

// List returns merchants matching filter, newest first
func (u *MerchantUsecase) List(ctx context.Context, filter entities.MerchantFilter, params utils.PaginationParams) (utils.Page[*entities.Merchant], error) {
	items, total, err := u.merchantRepo.List(ctx, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return utils.Page[*entities.Merchant]{}, err
	}
	return utils.NewPage(items, total, params), nil
}

// Search matches name, registration number, website or email
func (u *MerchantUsecase) Search(ctx context.Context, query string, params utils.PaginationParams) (utils.Page[*entities.Merchant], error) {
	items, total, err := u.merchantRepo.Search(ctx, query, params.Limit, params.CalculateOffset())
	if err != nil {
		return utils.Page[*entities.Merchant]{}, err
	}
	return utils.NewPage(items, total, params), nil
}

// Verify scores the merchant, runs the external checks and records the
// reviewer's decision. The merchant row stays locked from the flag count
// to the status write.
func (u *MerchantUsecase) Verify(ctx context.Context, id uuid.UUID, input *entities.VerifyMerchantInput, actor entities.Actor) (*entities.VerificationResult, error) {
	snapshot, err := u.merchantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	external := u.externalCheck(ctx, snapshot)

	var result *entities.VerificationResult
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)
		current, err := u.merchantRepo.GetByID(lockCtx, id)
		if err != nil {
			return err
		}
		latest, err := latestPattern(txCtx, u.patternRepo, id)
		if err != nil {
			return err
		}
		active, err := u.flagRepo.CountActiveByMerchant(txCtx, id)
		if err != nil {
			return err
		}

		assessment := u.assessor.Assess(current, latest)
		t, err := workflow.Verify(current, *input, assessment, external, active, actor, u.now())
		if err != nil {
			return err
		}
		if err := applyTransition(txCtx, t, u.merchantRepo, u.auditRepo, false); err != nil {
			return err
		}
		result = &entities.VerificationResult{
			Merchant:             t.Merchant,
			RiskAssessment:       assessment,
			ExternalVerification: external,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordRiskAssessment(string(result.RiskAssessment.RiskLevel))
	invalidateStats(ctx, u.cache)
	logger.Info(ctx, "Merchant verification recorded",
		logger.MerchantID(id),
		zap.String("status", string(result.Merchant.Status)),
		zap.Float64("risk_score", result.RiskAssessment.RiskScore),
	)
	return result, nil
}

// externalCheck never fails: provider errors are folded into an error
// status so the decision can still be recorded.
func (u *MerchantUsecase) externalCheck(ctx context.Context, m *entities.Merchant) *entities.ExternalCheckResult {
	result := &entities.ExternalCheckResult{}

	verification, err := u.verifier.Verify(ctx, m)
	if err != nil {
		logger.Error(ctx, "External verification failed", logger.MerchantID(m.ID), zap.Error(err))
		verification = &entities.ExternalVerification{
			Timestamp:          u.now(),
			VerificationStatus: entities.VerificationStatusError,
			Message:            fmt.Sprintf("Failed to verify with external API: %v", err),
		}
	}
	result.Verification = verification

	sanctions, err := u.verifier.CheckSanctions(ctx, m)
	if err != nil {
		logger.Error(ctx, "Sanctions check failed", logger.MerchantID(m.ID), zap.Error(err))
	} else {
		result.Sanctions = sanctions
	}
	return result
}
