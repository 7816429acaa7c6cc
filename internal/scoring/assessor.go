package scoring

import (
	"fmt"
	"strconv"
	"strings"

	"merchant-verify.backend/internal/domain/entities"
)

const (
	extremeThreshold = 4.0
	highThreshold    = 3.0
	mediumThreshold  = 2.0
)

// LevelFor maps a score to its risk level. Each band includes its lower bound.
func LevelFor(score float64) entities.RiskLevel {
	switch {
	case score >= extremeThreshold:
		return entities.RiskLevelExtreme
	case score >= highThreshold:
		return entities.RiskLevelHigh
	case score >= mediumThreshold:
		return entities.RiskLevelMedium
	default:
		return entities.RiskLevelLow
	}
}

// Assessor combines the factor calculators into a risk assessment.
type Assessor struct {
	profile Profile
}

func NewAssessor(profile Profile) *Assessor {
	return &Assessor{profile: profile}
}

// Profile returns the lookup tables the assessor was built with.
func (a *Assessor) Profile() Profile {
	return a.profile
}

// Assess scores a merchant. latest may be nil when no transaction history
// exists. Missing inputs fall back to their documented defaults.
func (a *Assessor) Assess(m *entities.Merchant, latest *entities.TransactionPattern) *entities.RiskAssessment {
	if m == nil {
		m = &entities.Merchant{}
	}
	factors := a.profile.Factors(m, latest)
	score := a.profile.Weights().Score(factors)
	level := LevelFor(score)

	return &entities.RiskAssessment{
		RiskScore:          score,
		RiskLevel:          level,
		SuggestedRiskLevel: level,
		RiskFactors:        factors,
		HighRiskFlags:      a.highRiskFlags(factors, m, latest),
		Recommendations:    a.recommendations(level, factors, m),
	}
}

func (a *Assessor) highRiskFlags(f entities.RiskFactors, m *entities.Merchant, latest *entities.TransactionPattern) []string {
	flags := []string{}

	if m.BusinessType == entities.BusinessTypeGambling {
		flags = append(flags, "Gambling/gaming business type")
	}
	if a.profile.IsHighRiskCountry(m.Country) {
		flags = append(flags, "Located in high-risk country: "+m.Country)
	}
	if f.WebsiteRisk >= 4.0 {
		flags = append(flags, "Website contains gambling-related content")
	}
	if f.CompletenessRisk >= 3.5 {
		flags = append(flags, "Incomplete merchant information")
	}
	if f.TransactionRisk >= 3.5 {
		flags = append(flags, "Suspicious transaction patterns")
		if latest.Usable() {
			if p := latest.HighRiskCountriesPercentage; p > 25 {
				flags = append(flags, fmt.Sprintf("High percentage (%s%%) of transactions from high-risk countries", formatFloat(p)))
			}
			if r := latest.ChargebackRate; r > 1.0 {
				flags = append(flags, fmt.Sprintf("Elevated chargeback rate: %s%%", formatFloat(r)))
			}
		}
	}
	return flags
}

func (a *Assessor) recommendations(level entities.RiskLevel, f entities.RiskFactors, m *entities.Merchant) []string {
	var recs []string

	switch level {
	case entities.RiskLevelHigh, entities.RiskLevelExtreme:
		recs = append(recs,
			"Conduct enhanced due diligence (EDD)",
			"Verify business registration with official sources",
			"Request additional documentation for business legitimacy",
		)
		if m.BusinessType == entities.BusinessTypeGambling || m.BusinessType == entities.BusinessTypeFinancial {
			recs = append(recs, "Verify appropriate licenses for regulated business activities")
		}
		if f.WebsiteRisk >= 3.5 {
			recs = append(recs, "Conduct detailed content analysis of merchant website")
		}
		if a.profile.IsHighRiskCountry(m.Country) {
			recs = append(recs, "Implement additional monitoring for transactions from "+m.Country)
		}
	case entities.RiskLevelMedium:
		recs = append(recs,
			"Verify business registration documentation",
			"Monitor transaction patterns during initial period",
		)
		if f.CompletenessRisk >= 3.0 {
			recs = append(recs, "Request complete merchant information")
		}
	default:
		recs = append(recs,
			"Standard verification procedures",
			"Periodic review of transaction patterns",
		)
	}
	return recs
}

// formatFloat renders v in its shortest form, always keeping a decimal
// point so 30 reads as "30.0".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
