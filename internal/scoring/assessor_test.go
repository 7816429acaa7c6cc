package scoring

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"merchant-verify.backend/internal/domain/entities"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		want  entities.RiskLevel
	}{
		{1.0, entities.RiskLevelLow},
		{1.9999, entities.RiskLevelLow},
		{2.0, entities.RiskLevelMedium},
		{2.9999, entities.RiskLevelMedium},
		{3.0, entities.RiskLevelHigh},
		{3.9999, entities.RiskLevelHigh},
		{4.0, entities.RiskLevelExtreme},
		{5.0, entities.RiskLevelExtreme},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, LevelFor(tt.score))
		})
	}
}

func TestWeightsSumToOne(t *testing.T) {
	w := DefaultProfile().Weights()
	assert.InDelta(t, 1.0, w.BusinessType+w.Country+w.Website+w.Completeness+w.BusinessAge+w.Transaction, 1e-9)
}

func randomMerchant(rng *rand.Rand) (*entities.Merchant, *entities.TransactionPattern) {
	pick := func(opts ...string) string { return opts[rng.Intn(len(opts))] }
	m := &entities.Merchant{
		Name:               pick("", "Acme"),
		BusinessType:       entities.BusinessType(pick("retail", "online", "gambling", "financial", "mystery", "")),
		RegistrationNumber: pick("", "AB-12345"),
		Email:              pick("", "a@b.io"),
		Phone:              pick("", "555"),
		Address:            pick("", "1 Road"),
		City:               pick("", "Town"),
		State:              pick("", "State"),
		Country:            pick("", "Iran", "France", " cuba "),
	}
	if w := pick("", "https://plainshop.com", "https://casino.io", "https://x.poker"); w != "" {
		m.Website = null.StringFrom(w)
	}
	if rng.Intn(2) == 0 {
		return m, nil
	}
	return m, &entities.TransactionPattern{
		MonthlyTransactionVolume:      rng.Intn(20000),
		HighRiskCountriesPercentage:   rng.Float64() * 100,
		UnusualHoursPercentage:        rng.Float64() * 100,
		SimilarTransactionsPercentage: rng.Float64() * 100,
		ChargebackRate:                rng.Float64() * 5,
	}
}

func TestAssess_ScoreIsWeightedSumAndFactorsInRange(t *testing.T) {
	a := NewAssessor(DefaultProfile())
	w := a.Profile().Weights()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		m, p := randomMerchant(rng)
		res := a.Assess(m, p)
		f := res.RiskFactors

		for _, v := range []float64{f.BusinessTypeRisk, f.CountryRisk, f.WebsiteRisk, f.CompletenessRisk, f.BusinessAgeRisk, f.TransactionRisk} {
			require.GreaterOrEqual(t, v, 1.0)
			require.LessOrEqual(t, v, 5.0)
		}
		expected := f.BusinessTypeRisk*0.25 + f.CountryRisk*0.20 + f.WebsiteRisk*0.20 +
			f.CompletenessRisk*0.15 + f.BusinessAgeRisk*0.10 + f.TransactionRisk*0.10
		require.InDelta(t, expected, res.RiskScore, 1e-9)
		require.InDelta(t, w.Score(f), res.RiskScore, 1e-9)
		require.GreaterOrEqual(t, res.RiskScore, 1.0)
		require.LessOrEqual(t, res.RiskScore, 5.0)
		require.Equal(t, LevelFor(res.RiskScore), res.RiskLevel)
		require.Equal(t, res.RiskLevel, res.SuggestedRiskLevel)
		require.NotEmpty(t, res.Recommendations)
		require.NotNil(t, res.HighRiskFlags)
	}
}

func TestAssess_GamblingHighRiskIncompleteMerchant(t *testing.T) {
	m := &entities.Merchant{
		Name:         "Lucky Star",
		BusinessType: entities.BusinessTypeGambling,
		Country:      "Iran",
		Website:      null.StringFrom("https://example.bet"),
	}
	res := NewAssessor(DefaultProfile()).Assess(m, nil)

	assert.Contains(t, []entities.RiskLevel{entities.RiskLevelHigh, entities.RiskLevelExtreme}, res.RiskLevel)
	assert.Contains(t, res.HighRiskFlags, "Gambling/gaming business type")
	assert.Contains(t, res.HighRiskFlags, "Located in high-risk country: Iran")
	assert.Contains(t, res.HighRiskFlags, "Website contains gambling-related content")
	assert.Contains(t, res.HighRiskFlags, "Incomplete merchant information")
	assert.Equal(t, []string{
		"Conduct enhanced due diligence (EDD)",
		"Verify business registration with official sources",
		"Request additional documentation for business legitimacy",
		"Verify appropriate licenses for regulated business activities",
		"Conduct detailed content analysis of merchant website",
		"Implement additional monitoring for transactions from Iran",
	}, res.Recommendations)
}

func TestAssess_CompleteRetailMerchant(t *testing.T) {
	res := NewAssessor(DefaultProfile()).Assess(completeMerchant(), nil)

	assert.Less(t, res.RiskScore, 3.0)
	assert.Contains(t, []entities.RiskLevel{entities.RiskLevelLow, entities.RiskLevelMedium}, res.RiskLevel)
	assert.InDelta(t, 1.55, res.RiskScore, 1e-9)
	assert.Empty(t, res.HighRiskFlags)
	assert.Equal(t, []string{"Standard verification procedures", "Periodic review of transaction patterns"}, res.Recommendations)
}

func TestAssess_MediumAsksForCompleteInformation(t *testing.T) {
	m := &entities.Merchant{Name: "Sparse", BusinessType: entities.BusinessTypeRetail, Country: "France"}
	res := NewAssessor(DefaultProfile()).Assess(m, nil)

	require.Equal(t, entities.RiskLevelMedium, res.RiskLevel)
	assert.Equal(t, []string{
		"Verify business registration documentation",
		"Monitor transaction patterns during initial period",
		"Request complete merchant information",
	}, res.Recommendations)
}

func TestAssess_TransactionSubFlags(t *testing.T) {
	pattern := &entities.TransactionPattern{
		HighRiskCountriesPercentage: 30,
		ChargebackRate:              1.5,
	}
	res := NewAssessor(DefaultProfile()).Assess(completeMerchant(), pattern)

	assert.Equal(t, 3.5, res.RiskFactors.TransactionRisk)
	assert.Equal(t, []string{
		"Suspicious transaction patterns",
		"High percentage (30.0%) of transactions from high-risk countries",
		"Elevated chargeback rate: 1.5%",
	}, res.HighRiskFlags)
}

func TestAssess_ErrorMarkedPatternIsIgnored(t *testing.T) {
	pattern := &entities.TransactionPattern{
		MonthlyTransactionVolume:    50000,
		HighRiskCountriesPercentage: 90,
		ChargebackRate:              9,
		AnalysisError:               null.StringFrom("cluster amounts: amount is not a finite number"),
	}
	res := NewAssessor(DefaultProfile()).Assess(completeMerchant(), pattern)
	assert.Equal(t, 2.5, res.RiskFactors.TransactionRisk)
	assert.Empty(t, res.HighRiskFlags)
}

func TestAssess_NilMerchantUsesDefaults(t *testing.T) {
	res := NewAssessor(DefaultProfile()).Assess(nil, nil)
	assert.Equal(t, 2.5, res.RiskFactors.BusinessTypeRisk)
	assert.Equal(t, 5.0, res.RiskFactors.CompletenessRisk)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "30.0", formatFloat(30))
	assert.Equal(t, "33.333333333333336", formatFloat(100.0/3))
	assert.Equal(t, "1.5", formatFloat(1.5))
}
