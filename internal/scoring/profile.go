// Package scoring implements the rule based merchant risk model: factor
// calculators, the weighted aggregator, amount clustering and the
// transaction pattern analyzer. Everything here is synchronous and free of
// I/O apart from logging.
package scoring

import (
	"strings"
	"unicode"

	"merchant-verify.backend/internal/domain/entities"
)

// Weights are the per-factor multipliers of the overall score. They sum to 1.
type Weights struct {
	BusinessType float64
	Country      float64
	Website      float64
	Completeness float64
	BusinessAge  float64
	Transaction  float64
}

// Score returns the weighted sum of the factors.
func (w Weights) Score(f entities.RiskFactors) float64 {
	return f.BusinessTypeRisk*w.BusinessType +
		f.CountryRisk*w.Country +
		f.WebsiteRisk*w.Website +
		f.CompletenessRisk*w.Completeness +
		f.BusinessAgeRisk*w.BusinessAge +
		f.TransactionRisk*w.Transaction
}

// defaultWeights are the production factor weights.
var defaultWeights = Weights{
	BusinessType: 0.25,
	Country:      0.20,
	Website:      0.20,
	Completeness: 0.15,
	BusinessAge:  0.10,
	Transaction:  0.10,
}

var defaultHighRiskCountries = []string{
	"afghanistan", "belarus", "burma", "burundi", "central african republic",
	"cuba", "democratic republic of the congo", "iran", "iraq", "libya",
	"mali", "nicaragua", "north korea", "somalia", "south sudan", "sudan",
	"syria", "venezuela", "yemen", "zimbabwe",
}

var defaultGamblingKeywords = []string{
	"bet", "betting", "casino", "gambling", "poker", "slot", "slots", "lottery",
	"wager", "wagering", "bingo", "roulette", "blackjack", "sportsbook",
	"bookmaker", "bookmaking",
}

var defaultSuspiciousTLDs = []string{".bet", ".casino", ".poker", ".game"}

var defaultCategoryRisk = map[entities.BusinessType]float64{
	entities.BusinessTypeRetail:     1.0,
	entities.BusinessTypeOnline:     2.0,
	entities.BusinessTypeService:    1.5,
	entities.BusinessTypeFinancial:  3.0,
	entities.BusinessTypeGambling:   5.0,
	entities.BusinessTypeTravel:     2.0,
	entities.BusinessTypeHealthcare: 1.5,
	entities.BusinessTypeOther:      2.5,
}

const unknownCategoryRisk = 2.5

// Profile holds the lookup tables used by the calculators. A Profile is
// built once and never mutated; accessors hand out copies.
type Profile struct {
	highRiskCountries []string
	highRiskSet       map[string]struct{}
	gamblingKeywords  []string
	suspiciousTLDs    []string
	categoryRisk      map[entities.BusinessType]float64
	weights           Weights
}

// ProfileOptions overrides parts of the default tables. Zero values keep the defaults.
type ProfileOptions struct {
	HighRiskCountries []string
	GamblingKeywords  []string
	SuspiciousTLDs    []string
	CategoryRisk      map[entities.BusinessType]float64
	Weights           *Weights
}

// DefaultProfile returns the production lookup tables.
func DefaultProfile() Profile {
	return NewProfile(ProfileOptions{})
}

// NewProfile builds a Profile from opts, falling back to defaults.
func NewProfile(opts ProfileOptions) Profile {
	countries := opts.HighRiskCountries
	if len(countries) == 0 {
		countries = defaultHighRiskCountries
	}
	keywords := opts.GamblingKeywords
	if len(keywords) == 0 {
		keywords = defaultGamblingKeywords
	}
	tlds := opts.SuspiciousTLDs
	if len(tlds) == 0 {
		tlds = defaultSuspiciousTLDs
	}
	categories := opts.CategoryRisk
	if len(categories) == 0 {
		categories = defaultCategoryRisk
	}
	weights := defaultWeights
	if opts.Weights != nil {
		weights = *opts.Weights
	}

	p := Profile{
		highRiskCountries: make([]string, 0, len(countries)),
		highRiskSet:       make(map[string]struct{}, len(countries)),
		gamblingKeywords:  lowerAll(keywords),
		suspiciousTLDs:    lowerAll(tlds),
		categoryRisk:      make(map[entities.BusinessType]float64, len(categories)),
		weights:           weights,
	}
	for _, c := range countries {
		key := normalizeCountry(c)
		if _, dup := p.highRiskSet[key]; dup {
			continue
		}
		p.highRiskSet[key] = struct{}{}
		p.highRiskCountries = append(p.highRiskCountries, key)
	}
	for k, v := range categories {
		p.categoryRisk[k] = v
	}
	return p
}

// IsHighRiskCountry matches country against the watch list, ignoring case
// and surrounding whitespace.
func (p Profile) IsHighRiskCountry(country string) bool {
	_, ok := p.highRiskSet[normalizeCountry(country)]
	return ok
}

// HighRiskCountryNames returns the watch list in display case.
func (p Profile) HighRiskCountryNames() []string {
	out := make([]string, len(p.highRiskCountries))
	for i, c := range p.highRiskCountries {
		out[i] = titleCase(c)
	}
	return out
}

// Weights returns the factor weights.
func (p Profile) Weights() Weights {
	return p.weights
}

// CategoryRisk returns the base risk for a category, 2.5 when unknown.
func (p Profile) CategoryRisk(bt entities.BusinessType) float64 {
	if v, ok := p.categoryRisk[bt]; ok {
		return v
	}
	return unknownCategoryRisk
}

func normalizeCountry(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// titleCase upper-cases the first letter of every word.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}
