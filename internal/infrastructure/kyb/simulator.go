// Package kyb provides know-your-business checks. Simulator mimics a third
// party registry and sanctions provider until a real one is wired in.
package kyb

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/pkg/logger"
)

var gamblingAuthorities = []string{
	"Malta Gaming Authority",
	"UK Gambling Commission",
	"Gibraltar Regulatory Authority",
	"Alderney Gambling Control Commission",
}

const dateLayout = "2006-01-02"

// Simulator produces synthetic verification and sanctions responses. It is
// safe for concurrent use.
type Simulator struct {
	profile scoring.Profile

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewSimulator builds a simulator. A zero seed seeds from the clock.
func NewSimulator(profile scoring.Profile, seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		profile: profile,
		rng:     rand.New(rand.NewSource(seed)),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Verify returns a registry verification for m. The outcome depends on the
// completeness of the profile, the shape of the registration number and the
// business category; randomness decides within each branch.
func (s *Simulator) Verify(ctx context.Context, m *entities.Merchant) (*entities.ExternalVerification, error) {
	if m == nil {
		return nil, fmt.Errorf("verify merchant: nil merchant")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	missingInfo := strings.TrimSpace(m.RegistrationNumber) == "" || strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Country) == ""
	regulated := m.BusinessType == entities.BusinessTypeGambling || m.BusinessType == entities.BusinessTypeFinancial

	var status entities.VerificationStatus
	var confidence float64
	indicators := []string{}

	switch {
	case missingInfo:
		status = entities.VerificationStatusIncomplete
		confidence = s.uniform(0.1, 0.4)
		indicators = append(indicators, "Incomplete business information")
	case suspiciousRegistration(m.RegistrationNumber):
		status = entities.VerificationStatusSuspicious
		confidence = s.uniform(0.2, 0.5)
		indicators = append(indicators, "Suspicious registration number format")
	case regulated:
		if s.rng.Float64() < 0.7 {
			status = entities.VerificationStatusVerified
			confidence = s.uniform(0.6, 0.8)
			indicators = append(indicators, "High-risk business category")
		} else {
			status = entities.VerificationStatusSuspicious
			confidence = s.uniform(0.3, 0.6)
			indicators = append(indicators, "Potential unlicensed operation in regulated sector")
		}
	default:
		if s.rng.Float64() < 0.9 {
			status = entities.VerificationStatusVerified
			confidence = s.uniform(0.7, 0.95)
		} else {
			status = entities.VerificationStatusUnverified
			confidence = s.uniform(0.4, 0.6)
			indicators = append(indicators, "Could not confirm business registration")
		}
	}

	var license *entities.LicenseInfo
	if m.BusinessType == entities.BusinessTypeGambling && status == entities.VerificationStatusVerified {
		if s.rng.Float64() < 0.7 {
			license = &entities.LicenseInfo{
				LicenseNumber:    fmt.Sprintf("GL-%d", s.intBetween(10000, 99999)),
				IssuingAuthority: gamblingAuthorities[s.rng.Intn(len(gamblingAuthorities))],
				ValidUntil:       now.AddDate(s.intBetween(1, 3), 0, 0).Format(dateLayout),
			}
		} else {
			status = entities.VerificationStatusSuspicious
			confidence = s.uniform(0.3, 0.5)
			indicators = append(indicators, "No valid gambling license identified")
		}
	}

	var registry *entities.RegistryInfo
	if status == entities.VerificationStatusVerified || status == entities.VerificationStatusSuspicious {
		registryStatus := "Pending Review"
		if status == entities.VerificationStatusVerified {
			registryStatus = "Active"
		}
		registry = &entities.RegistryInfo{
			RegistryName:     m.Country + " Business Registry",
			RegistrationDate: now.AddDate(-s.intBetween(1, 10), 0, 0).Format(dateLayout),
			Status:           registryStatus,
			RegistryURL:      "https://registry." + strings.ReplaceAll(strings.ToLower(m.Country), " ", "") + ".example/business",
		}
	}

	addressVerified := status == entities.VerificationStatusVerified && s.rng.Float64() < 0.9

	classification := "Industry Classification"
	if m.BusinessType == entities.BusinessTypeGambling {
		classification = "License Database Check"
	}

	res := &entities.ExternalVerification{
		Timestamp:          now,
		RequestID:          fmt.Sprintf("req-%d", s.intBetween(10000000, 99999999)),
		VerificationStatus: status,
		ConfidenceScore:    round2(confidence),
		BusinessDetails: entities.BusinessDetails{
			Name:               m.Name,
			RegistrationNumber: m.RegistrationNumber,
			Country:            m.Country,
			AddressVerified:    addressVerified,
			WebsiteDomain:      websiteDomain(m.Website.String),
		},
		RegistryInformation: registry,
		LicenseInformation:  license,
		RiskIndicators:      indicators,
		VerificationMethods: []string{
			"Registry Database Check",
			"Business Name Validation",
			"Address Verification",
			classification,
		},
	}

	logger.Info(ctx, "External verification completed",
		logger.MerchantID(m.ID),
		zap.String("verification_status", string(status)),
		zap.Float64("confidence", res.ConfidenceScore),
	)
	return res, nil
}

// CheckSanctions screens m against sanctions lists. Only merchants in a
// watch-listed jurisdiction can match.
func (s *Simulator) CheckSanctions(ctx context.Context, m *entities.Merchant) (*entities.SanctionsCheck, error) {
	if m == nil {
		return nil, fmt.Errorf("check sanctions: nil merchant")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.profile.IsHighRiskCountry(m.Country) || s.rng.Float64() >= 0.3 {
		return &entities.SanctionsCheck{IsSanctioned: false, Lists: []entities.SanctionsListEntry{}, MatchConfidence: 0}, nil
	}

	res := &entities.SanctionsCheck{
		IsSanctioned: true,
		Lists: []entities.SanctionsListEntry{{
			ListName:  "OFAC SDN",
			EntryDate: s.now().AddDate(-s.intBetween(0, 2), 0, 0).Format(dateLayout),
			Reason:    "Economic sanctions",
		}},
		MatchConfidence: s.uniform(0.8, 0.95),
	}
	logger.Warn(ctx, "Sanctions match", logger.MerchantID(m.ID), zap.String("country", m.Country))
	return res, nil
}

// suspiciousRegistration flags short numbers and numbers made only of
// digits or only of letters.
func suspiciousRegistration(reg string) bool {
	if reg == "" {
		return false
	}
	if len([]rune(reg)) < 5 {
		return true
	}
	return allRunes(reg, unicode.IsDigit) || allRunes(reg, unicode.IsLetter)
}

func allRunes(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}

// websiteDomain returns the host part of a URL with a scheme, or nil.
func websiteDomain(website string) *string {
	idx := strings.Index(website, "//")
	if idx < 0 {
		return nil
	}
	rest := website[idx+2:]
	if end := strings.Index(rest, "/"); end >= 0 {
		rest = rest[:end]
	}
	return &rest
}

func (s *Simulator) intBetween(lo, hi int) int {
	return lo + s.rng.Intn(hi-lo+1)
}

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
