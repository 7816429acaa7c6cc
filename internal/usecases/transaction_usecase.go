package usecases

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/pkg/logger"
	"merchant-verify.backend/pkg/metrics"
)

// TransactionUsecase analyzes merchant transaction patterns
type TransactionUsecase struct {
	merchantRepo repositories.MerchantRepository
	patternRepo  repositories.TransactionPatternRepository
	source       TransactionSource
	analyzer     *scoring.Analyzer
	now          func() time.Time
}

func NewTransactionUsecase(
	merchantRepo repositories.MerchantRepository,
	patternRepo repositories.TransactionPatternRepository,
	source TransactionSource,
	analyzer *scoring.Analyzer,
) *TransactionUsecase {
	return &TransactionUsecase{
		merchantRepo: merchantRepo,
		patternRepo:  patternRepo,
		source:       source,
		analyzer:     analyzer,
		now:          time.Now,
	}
}

// ListPatterns returns a merchant's snapshots, newest first
func (u *TransactionUsecase) ListPatterns(ctx context.Context, merchantID uuid.UUID) ([]*entities.TransactionPattern, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	return u.patternRepo.ListByMerchant(ctx, merchantID)
}

// Analyze fetches the merchant's transactions, analyzes them and stores a
// new snapshot. A failed analysis is stored too, marked with its error, so
// scoring falls back to the neutral transaction factor.
func (u *TransactionUsecase) Analyze(ctx context.Context, merchantID uuid.UUID) (*entities.TransactionPattern, error) {
	m, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	txs, err := u.source.Transactions(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	analysis := u.analyzer.Analyze(ctx, txs)
	pattern := toPattern(m.ID, analysis, u.now())
	if err := u.patternRepo.Create(ctx, pattern); err != nil {
		return nil, err
	}

	switch {
	case analysis.Failed():
		metrics.RecordAnalysis("error")
	case len(txs) == 0:
		metrics.RecordAnalysis("empty")
	default:
		metrics.RecordAnalysis("ok")
	}
	logger.Info(ctx, "Transaction pattern stored",
		logger.MerchantID(m.ID),
		zap.Int("transactions", len(txs)),
		zap.Bool("failed", analysis.Failed()),
	)
	return pattern, nil
}

func toPattern(merchantID uuid.UUID, a *entities.TransactionAnalysis, at time.Time) *entities.TransactionPattern {
	p := &entities.TransactionPattern{
		MerchantID:                    merchantID,
		MonthlyTransactionVolume:      a.MonthlyTransactionVolume,
		HighRiskCountriesPercentage:   a.HighRiskCountriesPercentage,
		UnusualHoursPercentage:        a.UnusualHoursPercentage,
		SimilarTransactionsPercentage: a.SimilarTransactionsPercentage,
		ChargebackRate:                a.ChargebackRate,
		TransactionData:               a.Detail,
		AnalysisDate:                  at,
	}
	if a.AverageTransactionAmount.Valid && !math.IsNaN(a.AverageTransactionAmount.Float64) && !math.IsInf(a.AverageTransactionAmount.Float64, 0) {
		p.AverageTransactionAmount = decimal.NewNullDecimal(decimal.NewFromFloat(a.AverageTransactionAmount.Float64).Round(2))
	}
	if a.Failed() {
		p.AnalysisError = null.StringFrom(a.Error)
	}
	return p
}
