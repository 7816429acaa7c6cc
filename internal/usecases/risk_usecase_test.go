package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/internal/usecases"
)

func newRisk() (*usecases.RiskUsecase, *MockMerchantRepository, *MockPatternRepository) {
	merchants := new(MockMerchantRepository)
	patterns := new(MockPatternRepository)
	return usecases.NewRiskUsecase(merchants, patterns, scoring.NewAssessor(scoring.DefaultProfile())), merchants, patterns
}

func TestRiskUsecase_PreviewByID(t *testing.T) {
	uc, merchants, patterns := newRisk()
	m := storedMerchant(entities.MerchantStatusPending)
	merchants.On("GetByID", mock.Anything, m.ID).Return(m, nil).Once()
	patterns.On("GetLatest", mock.Anything, m.ID).Return(nil, domainerrors.ErrNotFound).Once()

	assessment, err := uc.PreviewByID(context.Background(), m.ID.String())
	require.NoError(t, err)
	assert.Equal(t, scoring.LevelFor(assessment.RiskScore), assessment.RiskLevel)
	merchants.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	_, err = uc.PreviewByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestRiskUsecase_Assess(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		uc, _, _ := newRisk()
		_, err := uc.Assess(context.Background(), &entities.AssessRiskInput{})
		require.Error(t, err)
		assert.Equal(t, "No merchant data provided", domainerrors.FromError(err).Message)
	})

	t.Run("unknown merchant id", func(t *testing.T) {
		uc, merchants, _ := newRisk()
		id := uuid.New()
		merchants.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound).Once()

		_, err := uc.Assess(context.Background(), &entities.AssessRiskInput{MerchantID: id.String()})
		require.ErrorIs(t, err, domainerrors.ErrNotFound)
		assert.Equal(t, "Merchant with id "+id.String()+" not found", domainerrors.FromError(err).Message)
	})

	t.Run("unsaved high risk merchant", func(t *testing.T) {
		uc, merchants, patterns := newRisk()
		assessment, err := uc.Assess(context.Background(), &entities.AssessRiskInput{
			BusinessType: entities.BusinessTypeGambling,
			Website:      "https://lucky-casino.bet",
			Country:      "North Korea",
		})
		require.NoError(t, err)
		assert.Contains(t, []entities.RiskLevel{entities.RiskLevelHigh, entities.RiskLevelExtreme}, assessment.RiskLevel)
		merchants.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		patterns.AssertNotCalled(t, "GetLatest", mock.Anything, mock.Anything)
	})

	t.Run("defaults name and category", func(t *testing.T) {
		uc, _, _ := newRisk()
		assessment, err := uc.Assess(context.Background(), &entities.AssessRiskInput{Country: "Canada"})
		require.NoError(t, err)
		want := scoring.DefaultProfile().BusinessTypeRisk(entities.BusinessTypeOther)
		assert.Equal(t, want, assessment.RiskFactors.BusinessTypeRisk)
	})
}
