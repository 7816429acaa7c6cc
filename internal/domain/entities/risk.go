package entities

// RiskFactors is the per-dimension breakdown of a risk assessment.
// Every factor lies in [1.0, 5.0].
type RiskFactors struct {
	BusinessTypeRisk float64 `json:"businessTypeRisk"`
	CountryRisk      float64 `json:"countryRisk"`
	WebsiteRisk      float64 `json:"websiteRisk"`
	CompletenessRisk float64 `json:"completenessRisk"`
	BusinessAgeRisk  float64 `json:"businessAgeRisk"`
	TransactionRisk  float64 `json:"transactionRisk"`
}

// RiskAssessment is the output of the risk aggregator
type RiskAssessment struct {
	RiskScore          float64     `json:"riskScore"`
	RiskLevel          RiskLevel   `json:"riskLevel"`
	SuggestedRiskLevel RiskLevel   `json:"suggestedRiskLevel"`
	RiskFactors        RiskFactors `json:"riskFactors"`
	HighRiskFlags      []string    `json:"highRiskFlags"`
	Recommendations    []string    `json:"recommendations"`
}

// AssessRiskInput is the ad-hoc assessment request. Either MerchantID
// points at a stored merchant or the remaining fields describe an
// unsaved one.
type AssessRiskInput struct {
	MerchantID   string       `json:"merchantId,omitempty"`
	Name         string       `json:"name,omitempty"`
	BusinessType BusinessType `json:"businessType,omitempty"`
	Website      string       `json:"website,omitempty"`
	Country      string       `json:"country,omitempty"`
}
