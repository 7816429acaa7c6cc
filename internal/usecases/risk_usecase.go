package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/volatiletech/null/v8"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/pkg/metrics"
	"merchant-verify.backend/pkg/utils"
)

// RiskUsecase computes risk assessments without persisting them
type RiskUsecase struct {
	merchantRepo repositories.MerchantRepository
	patternRepo  repositories.TransactionPatternRepository
	assessor     *scoring.Assessor
}

func NewRiskUsecase(
	merchantRepo repositories.MerchantRepository,
	patternRepo repositories.TransactionPatternRepository,
	assessor *scoring.Assessor,
) *RiskUsecase {
	return &RiskUsecase{
		merchantRepo: merchantRepo,
		patternRepo:  patternRepo,
		assessor:     assessor,
	}
}

// Preview assesses a stored merchant against its latest transaction pattern
func (u *RiskUsecase) Preview(ctx context.Context, m *entities.Merchant) (*entities.RiskAssessment, error) {
	latest, err := latestPattern(ctx, u.patternRepo, m.ID)
	if err != nil {
		return nil, err
	}
	assessment := u.assessor.Assess(m, latest)
	metrics.RecordRiskAssessment(string(assessment.RiskLevel))
	return assessment, nil
}

// PreviewByID loads the merchant and assesses it
func (u *RiskUsecase) PreviewByID(ctx context.Context, id string) (*entities.RiskAssessment, error) {
	merchantID, ok := utils.ParseUUID(id)
	if !ok {
		return nil, domainerrors.BadRequest("invalid merchant id")
	}
	m, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return u.Preview(ctx, m)
}

// Assess scores either a stored merchant (MerchantID set) or unsaved data.
// Unsaved merchants default to the name "Unknown" and category other, and
// have no transaction history.
func (u *RiskUsecase) Assess(ctx context.Context, input *entities.AssessRiskInput) (*entities.RiskAssessment, error) {
	if input == nil || *input == (entities.AssessRiskInput{}) {
		return nil, domainerrors.BadRequest("No merchant data provided")
	}
	if input.MerchantID != "" {
		assessment, err := u.PreviewByID(ctx, input.MerchantID)
		if err != nil {
			if appErr := domainerrors.FromError(err); appErr.Code == domainerrors.CodeNotFound {
				return nil, domainerrors.NotFound(fmt.Sprintf("Merchant with id %s not found", input.MerchantID))
			}
			return nil, err
		}
		return assessment, nil
	}

	m := &entities.Merchant{
		Name:         strings.TrimSpace(input.Name),
		BusinessType: input.BusinessType,
		Country:      strings.TrimSpace(input.Country),
	}
	if m.Name == "" {
		m.Name = "Unknown"
	}
	if m.BusinessType == "" {
		m.BusinessType = entities.BusinessTypeOther
	}
	if w := strings.TrimSpace(input.Website); w != "" {
		m.Website = null.StringFrom(w)
	}

	assessment := u.assessor.Assess(m, nil)
	metrics.RecordRiskAssessment(string(assessment.RiskLevel))
	return assessment, nil
}
