// Package transactions provides transaction feeds for pattern analysis.
// Simulator stands in for a payment processor integration and generates a
// plausible synthetic history from merchant attributes.
package transactions

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/pkg/logger"
)

var commonCountries = []string{
	"United States", "United Kingdom", "Canada", "Germany", "France",
	"Australia", "Japan", "Italy", "Spain", "Netherlands",
}

var roundAmounts = []float64{25, 50, 100, 200, 500}

// hour weights, index is the hour of day
var (
	elevatedHourWeights = []int{1, 1, 1, 1, 1, 1, 2, 3, 4, 5, 5, 5, 5, 5, 5, 5, 5, 5, 4, 4, 3, 3, 2, 2}
	normalHourWeights   = []int{1, 1, 1, 1, 1, 1, 2, 4, 6, 8, 8, 8, 8, 8, 8, 8, 7, 6, 5, 4, 3, 2, 1, 1}
)

const (
	elevatedChargebackRate = 0.03
	normalChargebackRate   = 0.01
	roundAmountShare       = 0.7
	historyDays            = 30
)

// Simulator generates synthetic transactions. It is safe for concurrent use.
type Simulator struct {
	profile       scoring.Profile
	highRiskNames []string

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator builds a simulator. A zero seed seeds from the clock.
func NewSimulator(profile scoring.Profile, seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		profile:       profile,
		highRiskNames: profile.HighRiskCountryNames(),
		rng:           rand.New(rand.NewSource(seed)),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type params struct {
	elevated     bool
	minCount     int
	maxCount     int
	minAmount    float64
	maxAmount    float64
	highRiskFrom float64
	highRiskTo   float64
}

func (s *Simulator) paramsFor(m *entities.Merchant) params {
	p := params{
		elevated: m.BusinessType == entities.BusinessTypeGambling || s.profile.IsHighRiskCountry(m.Country),
	}

	switch {
	case p.elevated:
		p.minCount, p.maxCount = 500, 2000
	case m.BusinessType == entities.BusinessTypeFinancial, m.BusinessType == entities.BusinessTypeOnline:
		p.minCount, p.maxCount = 200, 1000
	default:
		p.minCount, p.maxCount = 50, 500
	}

	switch m.BusinessType {
	case entities.BusinessTypeRetail:
		p.minAmount, p.maxAmount = 10, 500
	case entities.BusinessTypeFinancial:
		p.minAmount, p.maxAmount = 100, 5000
	case entities.BusinessTypeGambling:
		p.minAmount, p.maxAmount = 20, 1000
	default:
		p.minAmount, p.maxAmount = 50, 1000
	}

	if p.elevated {
		p.highRiskFrom, p.highRiskTo = 0.2, 0.6
	} else {
		p.highRiskFrom, p.highRiskTo = 0, 0.1
	}
	return p
}

// Transactions returns a synthetic 30 day history for m.
func (s *Simulator) Transactions(ctx context.Context, m *entities.Merchant) ([]entities.Transaction, error) {
	if m == nil {
		return nil, fmt.Errorf("simulate transactions: nil merchant")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := s.paramsFor(m)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	count := s.intBetween(p.minCount, p.maxCount)
	highRiskShare := s.uniform(p.highRiskFrom, p.highRiskTo)

	txs := make([]entities.Transaction, 0, count)
	for i := 0; i < count; i++ {
		day := now.AddDate(0, 0, -s.intBetween(0, historyDays))

		var country string
		if s.rng.Float64() < highRiskShare {
			country = s.highRiskNames[s.rng.Intn(len(s.highRiskNames))]
		} else {
			country = commonCountries[s.rng.Intn(len(commonCountries))]
		}

		var hour int
		var chargeback bool
		var amount float64
		if p.elevated {
			hour = s.weightedIndex(elevatedHourWeights)
			chargeback = s.rng.Float64() < elevatedChargebackRate
			if s.rng.Float64() < roundAmountShare {
				amount = roundAmounts[s.rng.Intn(len(roundAmounts))]
			} else {
				amount = round2(s.uniform(p.minAmount, p.maxAmount))
			}
		} else {
			hour = s.weightedIndex(normalHourWeights)
			chargeback = s.rng.Float64() < normalChargebackRate
			amount = round2(s.uniform(p.minAmount, p.maxAmount))
		}

		minute := s.rng.Intn(60)
		ts := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, day.Second(), day.Nanosecond(), day.Location())

		txs = append(txs, entities.Transaction{
			ID:           fmt.Sprintf("TX%d", s.intBetween(10000000, 99999999)),
			Timestamp:    ts,
			Amount:       amount,
			Country:      country,
			IsChargeback: chargeback,
		})
	}

	logger.Debug(ctx, "Simulated transactions",
		logger.MerchantID(m.ID),
		zap.Int("count", len(txs)),
		zap.Bool("elevated", p.elevated),
	)
	return txs, nil
}

// intBetween returns a uniform int in [lo, hi].
func (s *Simulator) intBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

func (s *Simulator) weightedIndex(weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	target := s.rng.Intn(total)
	for i, w := range weights {
		if target < w {
			return i
		}
		target -= w
	}
	return len(weights) - 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
