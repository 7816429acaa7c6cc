package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReportMerchantInfo is the merchant section of a report snapshot
type ReportMerchantInfo struct {
	Name               string         `json:"name"`
	BusinessType       BusinessType   `json:"businessType"`
	RegistrationNumber string         `json:"registrationNumber"`
	Status             MerchantStatus `json:"status"`
	RiskLevel          null.String    `json:"riskLevel"`
	RiskScore          null.Float64   `json:"riskScore"`
}

// ReportPattern is the transaction section of a report snapshot
type ReportPattern struct {
	AverageTransactionAmount    string  `json:"averageTransactionAmount"`
	MonthlyTransactionVolume    int     `json:"monthlyTransactionVolume"`
	HighRiskCountriesPercentage float64 `json:"highRiskCountriesPercentage"`
	ChargebackRate              float64 `json:"chargebackRate"`
}

// ReportFlag is a flag as captured in a report snapshot
type ReportFlag struct {
	FlagType    FlagType     `json:"flagType"`
	Severity    FlagSeverity `json:"severity"`
	Status      FlagStatus   `json:"status"`
	Description string       `json:"description"`
}

// ReportData is the immutable snapshot stored with a report
type ReportData struct {
	MerchantInfo        ReportMerchantInfo   `json:"merchantInfo"`
	VerificationDetails *RiskAssessment      `json:"verificationDetails"`
	ExternalAPIData     *ExternalCheckResult `json:"externalApiData"`
	TransactionPattern  *ReportPattern       `json:"transactionPattern"`
	Flags               []ReportFlag         `json:"flags"`
}

// VerificationReport is an immutable review report
type VerificationReport struct {
	ID              uuid.UUID  `json:"id"`
	MerchantID      uuid.UUID  `json:"merchantId"`
	MerchantName    string     `json:"merchantName,omitempty"`
	GeneratedBy     *uuid.UUID `json:"generatedBy,omitempty"`
	GeneratedByName string     `json:"generatedByName,omitempty"`
	ReportDate      time.Time  `json:"reportDate"`
	ReportData      ReportData `json:"reportData"`
	RiskAssessment  string     `json:"riskAssessment"`
	Recommendations string     `json:"recommendations"`
}

// CreateReportInput carries the reviewer's free text
type CreateReportInput struct {
	RiskAssessment  string `json:"riskAssessment" binding:"required"`
	Recommendations string `json:"recommendations" binding:"required"`
}

// ReportExport is a rendered report file
type ReportExport struct {
	Filename    string
	ContentType string
	Content     []byte
}
