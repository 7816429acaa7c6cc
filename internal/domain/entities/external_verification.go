package entities

import "time"

type VerificationStatus string

const (
	VerificationStatusVerified   VerificationStatus = "verified"
	VerificationStatusSuspicious VerificationStatus = "suspicious"
	VerificationStatusIncomplete VerificationStatus = "incomplete"
	VerificationStatusUnverified VerificationStatus = "unverified"
	VerificationStatusError      VerificationStatus = "error"
)

type BusinessDetails struct {
	Name               string  `json:"name"`
	RegistrationNumber string  `json:"registrationNumber"`
	Country            string  `json:"country"`
	AddressVerified    bool    `json:"addressVerified"`
	WebsiteDomain      *string `json:"websiteDomain"`
}

type RegistryInfo struct {
	RegistryName     string `json:"registryName"`
	RegistrationDate string `json:"registrationDate"`
	Status           string `json:"status"`
	RegistryURL      string `json:"registryUrl"`
}

type LicenseInfo struct {
	LicenseNumber    string `json:"licenseNumber"`
	IssuingAuthority string `json:"issuingAuthority"`
	ValidUntil       string `json:"validUntil"`
}

// ExternalVerification mirrors the response shape of a KYB provider
type ExternalVerification struct {
	Timestamp           time.Time          `json:"timestamp"`
	RequestID           string             `json:"requestId"`
	VerificationStatus  VerificationStatus `json:"verificationStatus"`
	ConfidenceScore     float64            `json:"confidenceScore"`
	BusinessDetails     BusinessDetails    `json:"businessDetails"`
	RegistryInformation *RegistryInfo      `json:"registryInformation"`
	LicenseInformation  *LicenseInfo       `json:"licenseInformation"`
	RiskIndicators      []string           `json:"riskIndicators"`
	VerificationMethods []string           `json:"verificationMethods"`
	Message             string             `json:"message,omitempty"`
}

type SanctionsListEntry struct {
	ListName  string `json:"listName"`
	EntryDate string `json:"entryDate"`
	Reason    string `json:"reason"`
}

// SanctionsCheck is the result of screening a business against sanctions lists
type SanctionsCheck struct {
	IsSanctioned    bool                 `json:"isSanctioned"`
	Lists           []SanctionsListEntry `json:"lists"`
	MatchConfidence float64              `json:"matchConfidence"`
}

// ExternalCheckResult bundles the third-party checks stored on a merchant
type ExternalCheckResult struct {
	Verification *ExternalVerification `json:"verification"`
	Sanctions    *SanctionsCheck       `json:"sanctions"`
}
