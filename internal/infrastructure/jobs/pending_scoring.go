package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/pkg/logger"
	"merchant-verify.backend/pkg/metrics"
)

type unscoredMerchantStore interface {
	ListUnscored(ctx context.Context, limit int) ([]*entities.Merchant, error)
	UpdateRisk(ctx context.Context, id uuid.UUID, score float64, level entities.RiskLevel) (bool, error)
}

type latestPatternStore interface {
	GetLatest(ctx context.Context, merchantID uuid.UUID) (*entities.TransactionPattern, error)
}

type statsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// PendingScoringJob gives newly registered merchants an initial risk score
// so listings and the dashboard can rank them before a reviewer verifies.
// Status is never changed.
type PendingScoringJob struct {
	merchants unscoredMerchantStore
	patterns  latestPatternStore
	assessor  *scoring.Assessor
	cache     statsInvalidator
	interval  time.Duration
	batch     int
	stop      chan struct{}
}

func NewPendingScoringJob(
	merchants unscoredMerchantStore,
	patterns latestPatternStore,
	assessor *scoring.Assessor,
	cache statsInvalidator,
	interval time.Duration,
	batch int,
) *PendingScoringJob {
	if interval <= 0 {
		interval = time.Minute
	}
	if batch <= 0 {
		batch = 50
	}
	return &PendingScoringJob{
		merchants: merchants,
		patterns:  patterns,
		assessor:  assessor,
		cache:     cache,
		interval:  interval,
		batch:     batch,
		stop:      make(chan struct{}),
	}
}

func (j *PendingScoringJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting pending scoring job", zap.Duration("interval", j.interval), zap.Int("batch", j.batch))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Pending scoring job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Pending scoring job stopped")
			return
		case <-ticker.C:
			j.scorePending(ctx)
		}
	}
}

func (j *PendingScoringJob) Stop() {
	close(j.stop)
}

// scorePending scores one batch and returns how many merchants were updated.
func (j *PendingScoringJob) scorePending(ctx context.Context) int {
	pending, err := j.merchants.ListUnscored(ctx, j.batch)
	if err != nil {
		logger.Error(ctx, "Failed to fetch unscored merchants", zap.Error(err))
		return 0
	}
	if len(pending) == 0 {
		return 0
	}

	scored := 0
	for _, m := range pending {
		latest, err := j.patterns.GetLatest(ctx, m.ID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			logger.Error(ctx, "Failed to load transaction pattern", logger.MerchantID(m.ID), zap.Error(err))
			metrics.RecordScoringJob("failed")
			continue
		}

		assessment := j.assessor.Assess(m, latest)
		updated, err := j.merchants.UpdateRisk(ctx, m.ID, assessment.RiskScore, assessment.RiskLevel)
		if err != nil {
			logger.Error(ctx, "Failed to store risk score", logger.MerchantID(m.ID), zap.Error(err))
			metrics.RecordScoringJob("failed")
			continue
		}
		if !updated {
			logger.Debug(ctx, "Merchant no longer pending, score skipped", logger.MerchantID(m.ID))
			metrics.RecordScoringJob("skipped")
			continue
		}
		metrics.RecordScoringJob("scored")
		metrics.RecordRiskAssessment(string(assessment.RiskLevel))
		scored++
	}

	if scored > 0 && j.cache != nil {
		if err := j.cache.Invalidate(ctx); err != nil {
			logger.Warn(ctx, "Failed to invalidate dashboard cache", zap.Error(err))
		}
	}
	logger.Info(ctx, "Scored pending merchants", zap.Int("scored", scored), zap.Int("fetched", len(pending)))
	return scored
}
