package scoring

import (
	"math"
	"net/url"
	"strings"

	"merchant-verify.backend/internal/domain/entities"
)

const (
	minFactor = 1.0
	maxFactor = 5.0

	noWebsiteRisk         = 3.0
	gamblingWebsiteRisk   = 5.0
	suspiciousTLDRisk     = 4.5
	ordinaryWebsiteRisk   = 2.0
	lowCountryRisk        = 1.0
	highCountryRisk       = 5.0
	noPatternRisk         = 2.5
	requiredProfileFields = 9

	// BusinessAgeRisk is constant until an incorporation date source exists.
	BusinessAgeRisk = 3.0
)

// BusinessTypeRisk scores the merchant category.
func (p Profile) BusinessTypeRisk(bt entities.BusinessType) float64 {
	return p.CategoryRisk(bt)
}

// CountryRisk is 5.0 for a watch-listed jurisdiction, 1.0 otherwise.
func (p Profile) CountryRisk(country string) float64 {
	if p.IsHighRiskCountry(country) {
		return highCountryRisk
	}
	return lowCountryRisk
}

// WebsiteRisk scores a website URL by keyword and top level domain.
// An empty URL scores 3.0. Keywords are matched against the host without
// its final label and against the path, so a .bet TLD alone scores 4.5.
func (p Profile) WebsiteRisk(website string) float64 {
	w := strings.ToLower(strings.TrimSpace(website))
	if w == "" {
		return noWebsiteRisk
	}
	host, rest := splitWebsite(w)
	name := host
	if i := strings.LastIndex(host, "."); i >= 0 {
		name = host[:i]
	}
	for _, kw := range p.gamblingKeywords {
		if strings.Contains(name, kw) || strings.Contains(rest, kw) {
			return gamblingWebsiteRisk
		}
	}
	for _, tld := range p.suspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			return suspiciousTLDRisk
		}
	}
	return ordinaryWebsiteRisk
}

// splitWebsite returns the host and the remainder (path, query, fragment)
// of a lower-cased URL. A bare host without scheme is accepted.
func splitWebsite(w string) (string, string) {
	raw := w
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return w, ""
	}
	rest := u.EscapedPath()
	if u.RawQuery != "" {
		rest += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		rest += "#" + u.Fragment
	}
	return strings.TrimSuffix(u.Hostname(), "."), rest
}

// CompletenessRisk maps the share of the nine required profile fields that
// are filled to [1.0, 5.0].
func CompletenessRisk(m *entities.Merchant) float64 {
	if m == nil {
		return maxFactor
	}
	fields := []string{
		m.Name,
		string(m.BusinessType),
		m.RegistrationNumber,
		m.Email,
		m.Phone,
		m.Address,
		m.City,
		m.State,
		m.Country,
	}
	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	ratio := float64(filled) / float64(requiredProfileFields)
	return math.Max(minFactor, maxFactor-ratio*4.0)
}

// TransactionRisk scores the latest pattern snapshot. A missing or
// error-marked snapshot scores 2.5.
func TransactionRisk(pattern *entities.TransactionPattern) float64 {
	if !pattern.Usable() {
		return noPatternRisk
	}
	risk := 1.0

	switch v := pattern.MonthlyTransactionVolume; {
	case v > 10000:
		risk += 1.5
	case v > 5000:
		risk += 1.0
	case v > 1000:
		risk += 0.5
	}

	switch v := pattern.HighRiskCountriesPercentage; {
	case v > 50:
		risk += 2.0
	case v > 25:
		risk += 1.5
	case v > 10:
		risk += 1.0
	}

	switch v := pattern.ChargebackRate; {
	case v > 2.0:
		risk += 2.0
	case v > 1.0:
		risk += 1.0
	case v > 0.5:
		risk += 0.5
	}

	switch v := pattern.UnusualHoursPercentage; {
	case v > 30:
		risk += 1.0
	case v > 15:
		risk += 0.5
	}

	switch v := pattern.SimilarTransactionsPercentage; {
	case v > 70:
		risk += 1.0
	case v > 50:
		risk += 0.5
	}

	return math.Min(maxFactor, risk)
}

// Factors computes every factor for a merchant and its latest pattern.
func (p Profile) Factors(m *entities.Merchant, latest *entities.TransactionPattern) entities.RiskFactors {
	return entities.RiskFactors{
		BusinessTypeRisk: p.BusinessTypeRisk(m.BusinessType),
		CountryRisk:      p.CountryRisk(m.Country),
		WebsiteRisk:      p.WebsiteRisk(m.Website.String),
		CompletenessRisk: CompletenessRisk(m),
		BusinessAgeRisk:  BusinessAgeRisk,
		TransactionRisk:  TransactionRisk(latest),
	}
}
