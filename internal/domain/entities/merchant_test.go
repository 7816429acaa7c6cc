package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumsValidity(t *testing.T) {
	for _, bt := range BusinessTypes {
		assert.True(t, bt.IsValid())
		assert.NotEqual(t, string(bt), bt.Label())
	}
	assert.False(t, BusinessType("crypto").IsValid())
	assert.Equal(t, "crypto", BusinessType("crypto").Label())

	assert.True(t, MerchantStatusFlagged.IsValid())
	assert.False(t, MerchantStatus("active").IsValid())
	assert.Equal(t, "Flagged for Review", MerchantStatusFlagged.Label())

	for _, l := range RiskLevels {
		assert.True(t, l.IsValid())
	}
	assert.False(t, RiskLevel("severe").IsValid())

	assert.True(t, FlagTypeRegulatory.IsValid())
	assert.False(t, FlagType("fraud").IsValid())
	assert.True(t, FlagSeverityCritical.IsValid())
	assert.False(t, FlagSeverity("urgent").IsValid())

	assert.True(t, ReviewerRoleAdmin.IsValid())
	assert.False(t, ReviewerRole("ADMIN").IsValid())
}

func TestFlagStatus_IsActive(t *testing.T) {
	assert.True(t, FlagStatusOpen.IsActive())
	assert.True(t, FlagStatusInvestigating.IsActive())
	assert.False(t, FlagStatusResolved.IsActive())
	assert.False(t, FlagStatusDismissed.IsActive())
	for _, s := range ActiveFlagStatuses {
		assert.True(t, s.IsActive())
	}
}

func TestPatternAndAnalysisMarkers(t *testing.T) {
	var nilPattern *TransactionPattern
	assert.False(t, nilPattern.Usable())
	assert.True(t, (&TransactionPattern{}).Usable())

	var nilAnalysis *TransactionAnalysis
	assert.False(t, nilAnalysis.Failed())
	assert.True(t, (&TransactionAnalysis{Error: "boom"}).Failed())
}
