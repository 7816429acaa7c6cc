package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// BusinessType represents the merchant business category
type BusinessType string

const (
	BusinessTypeRetail     BusinessType = "retail"
	BusinessTypeOnline     BusinessType = "online"
	BusinessTypeService    BusinessType = "service"
	BusinessTypeFinancial  BusinessType = "financial"
	BusinessTypeGambling   BusinessType = "gambling"
	BusinessTypeTravel     BusinessType = "travel"
	BusinessTypeHealthcare BusinessType = "healthcare"
	BusinessTypeOther      BusinessType = "other"
)

// BusinessTypes lists every accepted category in display order
var BusinessTypes = []BusinessType{
	BusinessTypeRetail,
	BusinessTypeOnline,
	BusinessTypeService,
	BusinessTypeFinancial,
	BusinessTypeGambling,
	BusinessTypeTravel,
	BusinessTypeHealthcare,
	BusinessTypeOther,
}

// Label returns the human readable category name
func (b BusinessType) Label() string {
	switch b {
	case BusinessTypeRetail:
		return "Retail"
	case BusinessTypeOnline:
		return "Online Services"
	case BusinessTypeService:
		return "Professional Services"
	case BusinessTypeFinancial:
		return "Financial Services"
	case BusinessTypeGambling:
		return "Gambling/Gaming"
	case BusinessTypeTravel:
		return "Travel & Hospitality"
	case BusinessTypeHealthcare:
		return "Healthcare"
	case BusinessTypeOther:
		return "Other"
	default:
		return string(b)
	}
}

// IsValid reports whether b is a known category
func (b BusinessType) IsValid() bool {
	for _, t := range BusinessTypes {
		if t == b {
			return true
		}
	}
	return false
}

// MerchantStatus represents merchant verification status
type MerchantStatus string

const (
	MerchantStatusPending  MerchantStatus = "pending"
	MerchantStatusVerified MerchantStatus = "verified"
	MerchantStatusFlagged  MerchantStatus = "flagged"
	MerchantStatusRejected MerchantStatus = "rejected"
)

func (s MerchantStatus) IsValid() bool {
	switch s {
	case MerchantStatusPending, MerchantStatusVerified, MerchantStatusFlagged, MerchantStatusRejected:
		return true
	}
	return false
}

func (s MerchantStatus) Label() string {
	switch s {
	case MerchantStatusPending:
		return "Pending Verification"
	case MerchantStatusVerified:
		return "Verified"
	case MerchantStatusFlagged:
		return "Flagged for Review"
	case MerchantStatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// RiskLevel is the discrete bucket derived from a risk score
type RiskLevel string

const (
	RiskLevelLow     RiskLevel = "low"
	RiskLevelMedium  RiskLevel = "medium"
	RiskLevelHigh    RiskLevel = "high"
	RiskLevelExtreme RiskLevel = "extreme"
)

// RiskLevels lists the levels from least to most severe
var RiskLevels = []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelExtreme}

func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelExtreme:
		return true
	}
	return false
}

func (l RiskLevel) Label() string {
	switch l {
	case RiskLevelLow:
		return "Low Risk"
	case RiskLevelMedium:
		return "Medium Risk"
	case RiskLevelHigh:
		return "High Risk"
	case RiskLevelExtreme:
		return "Extreme Risk"
	default:
		return string(l)
	}
}

// Merchant represents a merchant under review.
// RiskLevel, when valid, always equals the level derived from RiskScore.
type Merchant struct {
	ID                  uuid.UUID            `json:"id"`
	Name                string               `json:"name"`
	BusinessType        BusinessType         `json:"businessType"`
	RegistrationNumber  string               `json:"registrationNumber"`
	TaxID               null.String          `json:"taxId"`
	Website             null.String          `json:"website"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	Address             string               `json:"address"`
	City                string               `json:"city"`
	State               string               `json:"state"`
	Country             string               `json:"country"`
	PostalCode          string               `json:"postalCode"`
	Status              MerchantStatus       `json:"status"`
	RiskLevel           null.String          `json:"riskLevel"`
	RiskScore           null.Float64         `json:"riskScore"`
	VerificationData    *RiskAssessment      `json:"verificationData"`
	ExternalAPIResponse *ExternalCheckResult `json:"externalApiResponse"`
	CreatedBy           *uuid.UUID           `json:"createdBy,omitempty"`
	VerifiedBy          *uuid.UUID           `json:"verifiedBy,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
	LastVerifiedAt      null.Time            `json:"lastVerifiedAt"`
}

// CreateMerchantInput represents input for registering a merchant
type CreateMerchantInput struct {
	Name               string       `json:"name" binding:"required,min=1,max=255"`
	BusinessType       BusinessType `json:"businessType" binding:"required"`
	RegistrationNumber string       `json:"registrationNumber" binding:"required,max=100"`
	TaxID              string       `json:"taxId,omitempty" binding:"max=100"`
	Website            string       `json:"website,omitempty" binding:"omitempty,url"`
	Email              string       `json:"email" binding:"required,email"`
	Phone              string       `json:"phone" binding:"required,max=20"`
	Address            string       `json:"address" binding:"required"`
	City               string       `json:"city" binding:"required,max=100"`
	State              string       `json:"state" binding:"required,max=100"`
	Country            string       `json:"country" binding:"required,max=100"`
	PostalCode         string       `json:"postalCode" binding:"required,max=20"`
}

// UpdateMerchantInput carries a partial profile update; nil fields are left untouched
type UpdateMerchantInput struct {
	Name         *string       `json:"name,omitempty" binding:"omitempty,min=1,max=255"`
	BusinessType *BusinessType `json:"businessType,omitempty"`
	TaxID        *string       `json:"taxId,omitempty"`
	Website      *string       `json:"website,omitempty"`
	Email        *string       `json:"email,omitempty" binding:"omitempty,email"`
	Phone        *string       `json:"phone,omitempty"`
	Address      *string       `json:"address,omitempty"`
	City         *string       `json:"city,omitempty"`
	State        *string       `json:"state,omitempty"`
	Country      *string       `json:"country,omitempty"`
	PostalCode   *string       `json:"postalCode,omitempty"`
}

// VerifyMerchantInput is the reviewer's verification decision
type VerifyMerchantInput struct {
	Status MerchantStatus `json:"status" binding:"required"`
	Notes  string         `json:"notes,omitempty"`
}

// MerchantFilter narrows merchant listings
type MerchantFilter struct {
	Name         string
	BusinessType BusinessType
	Status       MerchantStatus
	RiskLevel    RiskLevel
	Country      string
	DateFrom     *time.Time
	DateTo       *time.Time
}

// MerchantDetail aggregates everything a reviewer sees for one merchant
type MerchantDetail struct {
	Merchant      *Merchant             `json:"merchant"`
	LatestPattern *TransactionPattern   `json:"latestPattern"`
	Flags         []*VerificationFlag   `json:"flags"`
	RecentAudit   []*AuditLogEntry      `json:"recentAudit"`
	Reports       []*VerificationReport `json:"reports"`
}

// VerificationResult is returned by the verify command
type VerificationResult struct {
	Merchant             *Merchant            `json:"merchant"`
	RiskAssessment       *RiskAssessment      `json:"riskAssessment"`
	ExternalVerification *ExternalCheckResult `json:"externalVerification"`
}
