package scoring

import (
	"context"
	"fmt"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/pkg/logger"
)

// Analyzer reduces a transaction set to pattern statistics.
type Analyzer struct {
	profile Profile
	cluster func([]float64) ([]entities.AmountCluster, error)
}

func NewAnalyzer(profile Profile) *Analyzer {
	return &Analyzer{profile: profile, cluster: ClusterAmounts}
}

// Analyze summarises txs. An empty set yields a zeroed result with a null
// average and no detail. A failure while clustering yields a zeroed result
// carrying an error marker; it is logged and never returned as an error.
func (a *Analyzer) Analyze(ctx context.Context, txs []entities.Transaction) *entities.TransactionAnalysis {
	if len(txs) == 0 {
		logger.Warn(ctx, "No transaction data available for analysis")
		return &entities.TransactionAnalysis{}
	}

	res, err := a.analyze(txs)
	if err != nil {
		logger.Error(ctx, "Error analyzing transactions", zap.Error(err), zap.Int("transactions", len(txs)))
		return &entities.TransactionAnalysis{Error: err.Error()}
	}
	return res
}

func (a *Analyzer) analyze(txs []entities.Transaction) (*entities.TransactionAnalysis, error) {
	n := float64(len(txs))
	amounts := make([]float64, len(txs))
	countries := make(map[string]int)
	hours := make(map[int]int)

	var sum float64
	var highRisk, unusual, chargebacks int
	for i, tx := range txs {
		amounts[i] = tx.Amount
		sum += tx.Amount

		countries[tx.Country]++
		if a.profile.IsHighRiskCountry(tx.Country) {
			highRisk++
		}

		h := tx.Timestamp.Hour()
		hours[h]++
		if h >= 22 || h <= 5 {
			unusual++
		}

		if tx.IsChargeback {
			chargebacks++
		}
	}

	clusters, err := a.cluster(amounts)
	if err != nil {
		return nil, fmt.Errorf("cluster amounts: %w", err)
	}
	if len(clusters) == 0 {
		return nil, fmt.Errorf("cluster amounts: no clusters for %d amounts", len(amounts))
	}

	return &entities.TransactionAnalysis{
		AverageTransactionAmount:      null.Float64From(sum / n),
		MonthlyTransactionVolume:      len(txs),
		HighRiskCountriesPercentage:   float64(highRisk) / n * 100,
		UnusualHoursPercentage:        float64(unusual) / n * 100,
		SimilarTransactionsPercentage: float64(LargestCluster(clusters)) / n * 100,
		ChargebackRate:                float64(chargebacks) / n * 100,
		Detail: &entities.AnalysisDetail{
			CountryDistribution: countries,
			HourlyDistribution:  hours,
			AmountDistribution:  clusters,
			TransactionCount:    len(txs),
			ChargebackCount:     chargebacks,
		},
	}, nil
}
