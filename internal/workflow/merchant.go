package workflow

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/pkg/utils"
)

// Register creates a pending merchant from input.
func Register(input entities.CreateMerchantInput, actor entities.Actor, now time.Time) (*Transition, error) {
	if !input.BusinessType.IsValid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown business type %q", input.BusinessType))
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.RegistrationNumber) == "" {
		return nil, domainerrors.BadRequest("name and registration number are required")
	}

	m := &entities.Merchant{
		ID:                 utils.GenerateUUIDv7(),
		Name:               strings.TrimSpace(input.Name),
		BusinessType:       input.BusinessType,
		RegistrationNumber: strings.TrimSpace(input.RegistrationNumber),
		TaxID:              optional(strings.TrimSpace(input.TaxID)),
		Website:            optional(strings.TrimSpace(input.Website)),
		Email:              strings.TrimSpace(input.Email),
		Phone:              strings.TrimSpace(input.Phone),
		Address:            strings.TrimSpace(input.Address),
		City:               strings.TrimSpace(input.City),
		State:              strings.TrimSpace(input.State),
		Country:            strings.TrimSpace(input.Country),
		PostalCode:         strings.TrimSpace(input.PostalCode),
		Status:             entities.MerchantStatusPending,
		CreatedBy:          actor.ReviewerID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	return &Transition{
		Merchant: m,
		Audit:    newAudit(m.ID, entities.AuditActionCreate, actor, now, nil),
	}, nil
}

// Update applies a partial profile edit. Status and risk fields are not
// editable here.
func Update(current *entities.Merchant, input entities.UpdateMerchantInput, actor entities.Actor, now time.Time) (*Transition, error) {
	next := *current
	var changed []string

	setString := func(field string, dst *string, v *string) {
		if v == nil {
			return
		}
		trimmed := strings.TrimSpace(*v)
		if trimmed != *dst {
			*dst = trimmed
			changed = append(changed, field)
		}
	}
	setOptional := func(field string, dst *null.String, v *string) {
		if v == nil {
			return
		}
		o := optional(strings.TrimSpace(*v))
		if o != *dst {
			*dst = o
			changed = append(changed, field)
		}
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, domainerrors.BadRequest("name cannot be empty")
	}
	if input.BusinessType != nil {
		if !input.BusinessType.IsValid() {
			return nil, domainerrors.BadRequest(fmt.Sprintf("unknown business type %q", *input.BusinessType))
		}
		if *input.BusinessType != next.BusinessType {
			next.BusinessType = *input.BusinessType
			changed = append(changed, "businessType")
		}
	}
	setString("name", &next.Name, input.Name)
	setOptional("taxId", &next.TaxID, input.TaxID)
	setOptional("website", &next.Website, input.Website)
	setString("email", &next.Email, input.Email)
	setString("phone", &next.Phone, input.Phone)
	setString("address", &next.Address, input.Address)
	setString("city", &next.City, input.City)
	setString("state", &next.State, input.State)
	setString("country", &next.Country, input.Country)
	setString("postalCode", &next.PostalCode, input.PostalCode)

	sort.Strings(changed)
	next.UpdatedAt = now
	return &Transition{
		Merchant: &next,
		Audit: newAudit(next.ID, entities.AuditActionUpdate, actor, now, map[string]interface{}{
			"changedFields": changed,
		}),
	}, nil
}

// Verify records a reviewer decision together with a fresh assessment and
// external check. activeFlags is the number of open or investigating flags
// on the merchant; a merchant cannot be verified while any remain.
func Verify(
	current *entities.Merchant,
	decision entities.VerifyMerchantInput,
	assessment *entities.RiskAssessment,
	external *entities.ExternalCheckResult,
	activeFlags int64,
	actor entities.Actor,
	now time.Time,
) (*Transition, error) {
	if assessment == nil {
		return nil, fmt.Errorf("verify merchant %s: missing risk assessment", current.ID)
	}

	action := entities.AuditActionVerify
	switch decision.Status {
	case entities.MerchantStatusVerified:
		if activeFlags > 0 {
			return nil, domainerrors.InvalidTransition(
				fmt.Sprintf("merchant has %d active flag(s); resolve them before verifying", activeFlags))
		}
	case entities.MerchantStatusRejected:
		action = entities.AuditActionReject
	default:
		return nil, domainerrors.BadRequest(`Invalid status value. Must be "verified" or "rejected".`)
	}

	level := scoring.LevelFor(assessment.RiskScore)
	next := *current
	next.Status = decision.Status
	next.RiskScore = null.Float64From(assessment.RiskScore)
	next.RiskLevel = null.StringFrom(string(level))
	next.VerificationData = assessment
	next.ExternalAPIResponse = external
	next.VerifiedBy = actor.ReviewerID
	next.LastVerifiedAt = null.TimeFrom(now)
	next.UpdatedAt = now

	details := map[string]interface{}{
		"status":    next.Status,
		"riskLevel": level,
		"riskScore": assessment.RiskScore,
	}
	if decision.Notes != "" {
		details["notes"] = decision.Notes
	}
	return &Transition{
		Merchant: &next,
		Audit:    newAudit(next.ID, action, actor, now, details),
	}, nil
}
