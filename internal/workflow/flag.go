package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/pkg/utils"
)

// RaiseFlag opens a flag. The merchant moves to flagged unless it was
// rejected.
func RaiseFlag(current *entities.Merchant, input entities.CreateFlagInput, actor entities.Actor, now time.Time) (*Transition, error) {
	if !input.FlagType.IsValid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown flag type %q", input.FlagType))
	}
	severity := input.Severity
	if severity == "" {
		severity = entities.FlagSeverityMedium
	}
	if !severity.IsValid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown severity %q", input.Severity))
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerrors.BadRequest("description is required")
	}

	flag := &entities.VerificationFlag{
		ID:          utils.GenerateUUIDv7(),
		MerchantID:  current.ID,
		FlagType:    input.FlagType,
		Description: description,
		Severity:    severity,
		Status:      entities.FlagStatusOpen,
		CreatedBy:   actor.ReviewerID,
		CreatedAt:   now,
	}

	t := &Transition{
		Flag: flag,
		Audit: newAudit(current.ID, entities.AuditActionFlag, actor, now, map[string]interface{}{
			"flagType":    flag.FlagType,
			"severity":    flag.Severity,
			"description": flag.Description,
		}),
	}
	if current.Status != entities.MerchantStatusRejected && current.Status != entities.MerchantStatusFlagged {
		next := *current
		next.Status = entities.MerchantStatusFlagged
		next.UpdatedAt = now
		t.Merchant = &next
	}
	return t, nil
}

// ResolveFlag closes an active flag as resolved (the default) or dismissed.
// otherActive is the number of active flags on the merchant besides this
// one. A flagged merchant with none left returns to verified, never to
// pending.
func ResolveFlag(
	current *entities.Merchant,
	flag *entities.VerificationFlag,
	input entities.ResolveFlagInput,
	otherActive int64,
	actor entities.Actor,
	now time.Time,
) (*Transition, error) {
	status := input.Status
	if status == "" {
		status = entities.FlagStatusResolved
	}
	if status != entities.FlagStatusResolved && status != entities.FlagStatusDismissed {
		return nil, domainerrors.BadRequest(`Invalid status value. Must be "resolved" or "dismissed".`)
	}
	if !flag.Status.IsActive() {
		return nil, domainerrors.InvalidTransition(fmt.Sprintf("flag is already %s", flag.Status))
	}

	closed := *flag
	closed.Status = status
	closed.ResolvedAt = null.TimeFrom(now)
	closed.ResolvedBy = actor.ReviewerID
	closed.ResolutionNotes = null.StringFrom(input.ResolutionNotes)

	t := &Transition{
		Flag: &closed,
		Audit: newAudit(current.ID, entities.AuditActionReview, actor, now, map[string]interface{}{
			"flagId":          closed.ID,
			"status":          closed.Status,
			"resolutionNotes": input.ResolutionNotes,
		}),
	}
	if otherActive == 0 && current.Status == entities.MerchantStatusFlagged {
		next := *current
		next.Status = entities.MerchantStatusVerified
		next.UpdatedAt = now
		t.Merchant = &next
	}
	return t, nil
}

// UpdateFlag edits an active flag. Status may only move between open and
// investigating; closing goes through ResolveFlag.
func UpdateFlag(flag *entities.VerificationFlag, input entities.UpdateFlagInput, actor entities.Actor, now time.Time) (*Transition, error) {
	if !flag.Status.IsActive() {
		return nil, domainerrors.InvalidTransition(fmt.Sprintf("flag is already %s", flag.Status))
	}

	next := *flag
	if input.Description != nil {
		d := strings.TrimSpace(*input.Description)
		if d == "" {
			return nil, domainerrors.BadRequest("description cannot be empty")
		}
		next.Description = d
	}
	if input.Severity != nil {
		if !input.Severity.IsValid() {
			return nil, domainerrors.BadRequest(fmt.Sprintf("unknown severity %q", *input.Severity))
		}
		next.Severity = *input.Severity
	}
	if input.Status != nil {
		if !input.Status.IsActive() {
			return nil, domainerrors.BadRequest(`Invalid status value. Must be "open" or "investigating".`)
		}
		next.Status = *input.Status
	}

	return &Transition{
		Flag: &next,
		Audit: newAudit(next.MerchantID, entities.AuditActionReview, actor, now, map[string]interface{}{
			"flagId":   next.ID,
			"status":   next.Status,
			"severity": next.Severity,
		}),
	}, nil
}
