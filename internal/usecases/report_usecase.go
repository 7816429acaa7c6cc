package usecases

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/internal/workflow"
	"merchant-verify.backend/pkg/logger"
	"merchant-verify.backend/pkg/utils"
)

const notAssessed = "Not assessed"

// ReportUsecase generates immutable verification reports and renders them
type ReportUsecase struct {
	uow          repositories.UnitOfWork
	merchantRepo repositories.MerchantRepository
	patternRepo  repositories.TransactionPatternRepository
	flagRepo     repositories.FlagRepository
	reportRepo   repositories.ReportRepository
	auditRepo    repositories.AuditLogRepository
	now          func() time.Time
}

func NewReportUsecase(
	uow repositories.UnitOfWork,
	merchantRepo repositories.MerchantRepository,
	patternRepo repositories.TransactionPatternRepository,
	flagRepo repositories.FlagRepository,
	reportRepo repositories.ReportRepository,
	auditRepo repositories.AuditLogRepository,
) *ReportUsecase {
	return &ReportUsecase{
		uow:          uow,
		merchantRepo: merchantRepo,
		patternRepo:  patternRepo,
		flagRepo:     flagRepo,
		reportRepo:   reportRepo,
		auditRepo:    auditRepo,
		now:          time.Now,
	}
}

// Generate snapshots the merchant's current review state into a new report
func (u *ReportUsecase) Generate(ctx context.Context, merchantID uuid.UUID, input *entities.CreateReportInput, actor entities.Actor) (*entities.VerificationReport, error) {
	var report *entities.VerificationReport
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		m, err := u.merchantRepo.GetByID(txCtx, merchantID)
		if err != nil {
			return err
		}
		latest, err := latestPattern(txCtx, u.patternRepo, merchantID)
		if err != nil {
			return err
		}
		flags, err := u.flagRepo.ListByMerchant(txCtx, merchantID)
		if err != nil {
			return err
		}

		r, audit, err := workflow.RecordReport(m, workflow.Snapshot(m, latest, flags), *input, actor, u.now())
		if err != nil {
			return err
		}
		if err := u.reportRepo.Create(txCtx, r); err != nil {
			return err
		}
		if err := u.auditRepo.Create(txCtx, audit); err != nil {
			return err
		}
		report = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Verification report generated",
		logger.MerchantID(merchantID),
		zap.String("report_id", report.ID.String()),
	)

	stored, err := u.reportRepo.GetByID(ctx, report.ID)
	if err != nil {
		logger.Warn(ctx, "Failed to reload generated report", zap.Error(err))
		return report, nil
	}
	return stored, nil
}

func (u *ReportUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationReport, error) {
	return u.reportRepo.GetByID(ctx, id)
}

// ListByMerchant returns a merchant's reports, newest first
func (u *ReportUsecase) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationReport, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	return u.reportRepo.ListByMerchant(ctx, merchantID)
}

func (u *ReportUsecase) List(ctx context.Context, params utils.PaginationParams) (utils.Page[*entities.VerificationReport], error) {
	items, total, err := u.reportRepo.List(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return utils.Page[*entities.VerificationReport]{}, err
	}
	return utils.NewPage(items, total, params), nil
}

// ExportCSV renders a report as CSV. The merchant block and flag table
// reflect the merchant as it is now, the free text comes from the report.
func (u *ReportUsecase) ExportCSV(ctx context.Context, id uuid.UUID) (*entities.ReportExport, error) {
	report, err := u.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := u.merchantRepo.GetByID(ctx, report.MerchantID)
	if err != nil {
		return nil, err
	}
	flags, err := u.flagRepo.ListByMerchant(ctx, report.MerchantID)
	if err != nil {
		return nil, err
	}

	content, err := renderReportCSV(report, m, flags)
	if err != nil {
		return nil, fmt.Errorf("render report csv: %w", err)
	}
	return &entities.ReportExport{
		Filename:    fmt.Sprintf("verification_report_%s_%s.csv", m.Name, report.ReportDate.Format("20060102")),
		ContentType: "text/csv",
		Content:     content,
	}, nil
}

func renderReportCSV(report *entities.VerificationReport, m *entities.Merchant, flags []*entities.VerificationFlag) ([]byte, error) {
	generatedBy := report.GeneratedByName
	if generatedBy == "" {
		generatedBy = "System"
	}
	riskLevel, riskScore := notAssessed, notAssessed
	if m.RiskLevel.Valid {
		riskLevel = entities.RiskLevel(m.RiskLevel.String).Label()
	}
	if m.RiskScore.Valid {
		riskScore = strconv.FormatFloat(m.RiskScore.Float64, 'f', -1, 64)
	}

	rows := [][]string{
		{"Verification Report"},
		{"Generated on", report.ReportDate.Format("2006-01-02 15:04:05")},
		{"Generated by", generatedBy},
		{},
		{"Merchant Information"},
		{"Name", m.Name},
		{"Business Type", m.BusinessType.Label()},
		{"Registration Number", m.RegistrationNumber},
		{"Status", m.Status.Label()},
		{"Risk Level", riskLevel},
		{"Risk Score", riskScore},
		{},
		{"Risk Assessment"},
		{report.RiskAssessment},
		{},
		{"Recommendations"},
		{report.Recommendations},
		{},
	}
	if len(flags) > 0 {
		rows = append(rows,
			[]string{"Verification Flags"},
			[]string{"Type", "Severity", "Status", "Description"},
		)
		for _, f := range flags {
			rows = append(rows, []string{f.FlagType.Label(), f.Severity.Label(), f.Status.Label(), f.Description})
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
