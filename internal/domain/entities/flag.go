package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// FlagType categorises a manual review marker
type FlagType string

const (
	FlagTypeSuspiciousWebsite  FlagType = "suspicious_website"
	FlagTypeMissingInfo        FlagType = "missing_info"
	FlagTypeHighRiskLocation   FlagType = "high_risk_location"
	FlagTypeTransactionPattern FlagType = "transaction_pattern"
	FlagTypeExternalData       FlagType = "external_data"
	FlagTypeRegulatory         FlagType = "regulatory"
	FlagTypeOther              FlagType = "other"
)

func (t FlagType) IsValid() bool {
	switch t {
	case FlagTypeSuspiciousWebsite, FlagTypeMissingInfo, FlagTypeHighRiskLocation,
		FlagTypeTransactionPattern, FlagTypeExternalData, FlagTypeRegulatory, FlagTypeOther:
		return true
	}
	return false
}

func (t FlagType) Label() string {
	switch t {
	case FlagTypeSuspiciousWebsite:
		return "Suspicious Website Content"
	case FlagTypeMissingInfo:
		return "Missing Information"
	case FlagTypeHighRiskLocation:
		return "High-Risk Location"
	case FlagTypeTransactionPattern:
		return "Suspicious Transaction Pattern"
	case FlagTypeExternalData:
		return "External Data Mismatch"
	case FlagTypeRegulatory:
		return "Regulatory Concern"
	case FlagTypeOther:
		return "Other"
	default:
		return string(t)
	}
}

type FlagSeverity string

const (
	FlagSeverityLow      FlagSeverity = "low"
	FlagSeverityMedium   FlagSeverity = "medium"
	FlagSeverityHigh     FlagSeverity = "high"
	FlagSeverityCritical FlagSeverity = "critical"
)

func (s FlagSeverity) IsValid() bool {
	switch s {
	case FlagSeverityLow, FlagSeverityMedium, FlagSeverityHigh, FlagSeverityCritical:
		return true
	}
	return false
}

func (s FlagSeverity) Label() string {
	switch s {
	case FlagSeverityLow:
		return "Low"
	case FlagSeverityMedium:
		return "Medium"
	case FlagSeverityHigh:
		return "High"
	case FlagSeverityCritical:
		return "Critical"
	default:
		return string(s)
	}
}

type FlagStatus string

const (
	FlagStatusOpen          FlagStatus = "open"
	FlagStatusInvestigating FlagStatus = "investigating"
	FlagStatusResolved      FlagStatus = "resolved"
	FlagStatusDismissed     FlagStatus = "dismissed"
)

// ActiveFlagStatuses keep a merchant in the flagged state
var ActiveFlagStatuses = []FlagStatus{FlagStatusOpen, FlagStatusInvestigating}

// IsActive reports whether the flag still blocks verification
func (s FlagStatus) IsActive() bool {
	return s == FlagStatusOpen || s == FlagStatusInvestigating
}

func (s FlagStatus) Label() string {
	switch s {
	case FlagStatusOpen:
		return "Open"
	case FlagStatusInvestigating:
		return "Under Investigation"
	case FlagStatusResolved:
		return "Resolved"
	case FlagStatusDismissed:
		return "Dismissed"
	default:
		return string(s)
	}
}

// VerificationFlag is a manual review marker raised against a merchant
type VerificationFlag struct {
	ID              uuid.UUID    `json:"id"`
	MerchantID      uuid.UUID    `json:"merchantId"`
	FlagType        FlagType     `json:"flagType"`
	Description     string       `json:"description"`
	Severity        FlagSeverity `json:"severity"`
	Status          FlagStatus   `json:"status"`
	CreatedBy       *uuid.UUID   `json:"createdBy,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	ResolvedAt      null.Time    `json:"resolvedAt"`
	ResolvedBy      *uuid.UUID   `json:"resolvedBy,omitempty"`
	ResolutionNotes null.String  `json:"resolutionNotes"`
}

// CreateFlagInput represents input for raising a flag
type CreateFlagInput struct {
	FlagType    FlagType     `json:"flagType" binding:"required"`
	Description string       `json:"description" binding:"required"`
	Severity    FlagSeverity `json:"severity"`
}

// UpdateFlagInput edits an active flag; nil fields are left untouched
type UpdateFlagInput struct {
	Description *string       `json:"description,omitempty"`
	Severity    *FlagSeverity `json:"severity,omitempty"`
	Status      *FlagStatus   `json:"status,omitempty"`
}

// ResolveFlagInput closes a flag. Status defaults to resolved.
type ResolveFlagInput struct {
	Status          FlagStatus `json:"status"`
	ResolutionNotes string     `json:"resolutionNotes"`
}
