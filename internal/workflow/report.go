package workflow

import (
	"strings"
	"time"

	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/pkg/utils"
)

// Snapshot captures the merchant's current review state for a report.
// latest may be nil; it is included as-is even when it carries an error.
func Snapshot(m *entities.Merchant, latest *entities.TransactionPattern, flags []*entities.VerificationFlag) entities.ReportData {
	data := entities.ReportData{
		MerchantInfo: entities.ReportMerchantInfo{
			Name:               m.Name,
			BusinessType:       m.BusinessType,
			RegistrationNumber: m.RegistrationNumber,
			Status:             m.Status,
			RiskLevel:          m.RiskLevel,
			RiskScore:          m.RiskScore,
		},
		VerificationDetails: m.VerificationData,
		ExternalAPIData:     m.ExternalAPIResponse,
		Flags:               make([]entities.ReportFlag, 0, len(flags)),
	}
	if latest != nil {
		avg := "None"
		if latest.AverageTransactionAmount.Valid {
			avg = latest.AverageTransactionAmount.Decimal.StringFixed(2)
		}
		data.TransactionPattern = &entities.ReportPattern{
			AverageTransactionAmount:    avg,
			MonthlyTransactionVolume:    latest.MonthlyTransactionVolume,
			HighRiskCountriesPercentage: latest.HighRiskCountriesPercentage,
			ChargebackRate:              latest.ChargebackRate,
		}
	}
	for _, f := range flags {
		data.Flags = append(data.Flags, entities.ReportFlag{
			FlagType:    f.FlagType,
			Severity:    f.Severity,
			Status:      f.Status,
			Description: f.Description,
		})
	}
	return data
}

// RecordReport builds an immutable report from a snapshot and the
// reviewer's free text.
func RecordReport(m *entities.Merchant, data entities.ReportData, input entities.CreateReportInput, actor entities.Actor, now time.Time) (*entities.VerificationReport, *entities.AuditLogEntry, error) {
	if strings.TrimSpace(input.RiskAssessment) == "" || strings.TrimSpace(input.Recommendations) == "" {
		return nil, nil, domainerrors.BadRequest("riskAssessment and recommendations are required")
	}
	report := &entities.VerificationReport{
		ID:              utils.GenerateUUIDv7(),
		MerchantID:      m.ID,
		MerchantName:    m.Name,
		GeneratedBy:     actor.ReviewerID,
		ReportDate:      now,
		ReportData:      data,
		RiskAssessment:  input.RiskAssessment,
		Recommendations: input.Recommendations,
	}
	audit := newAudit(m.ID, entities.AuditActionReport, actor, now, map[string]interface{}{
		"reportId": report.ID,
	})
	return report, audit, nil
}
