package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/infrastructure/models"
	"merchant-verify.backend/pkg/utils"
)

// ReportRepository stores verification reports. Rows are never updated.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *entities.VerificationReport) error {
	if report.ID == uuid.Nil {
		report.ID = utils.GenerateUUIDv7()
	}
	if report.ReportDate.IsZero() {
		report.ReportDate = time.Now()
	}
	data, err := json.Marshal(report.ReportData)
	if err != nil {
		return fmt.Errorf("failed to encode report data: %w", err)
	}

	m := &models.VerificationReport{
		ID:              report.ID,
		MerchantID:      report.MerchantID,
		GeneratedBy:     report.GeneratedBy,
		ReportDate:      report.ReportDate,
		ReportData:      datatypes.JSON(data),
		RiskAssessment:  report.RiskAssessment,
		Recommendations: report.Recommendations,
	}
	return GetDB(ctx, r.db).Omit(clause.Associations).Create(m).Error
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationReport, error) {
	var m models.VerificationReport
	if err := r.withNames(GetDB(ctx, r.db)).Where("verification_reports.id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// ListByMerchant returns a merchant's reports, newest first.
func (r *ReportRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationReport, error) {
	var ms []models.VerificationReport
	if err := r.withNames(GetDB(ctx, r.db)).
		Where("merchant_id = ?", merchantID).
		Order("report_date DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms)
}

func (r *ReportRepository) List(ctx context.Context, limit, offset int) ([]*entities.VerificationReport, int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&models.VerificationReport{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.VerificationReport
	q := r.withNames(GetDB(ctx, r.db)).Order("report_date DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	items, err := r.toEntities(ms)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ReportRepository) withNames(db *gorm.DB) *gorm.DB {
	return db.Preload("Merchant").Preload("Reviewer")
}

func (r *ReportRepository) toEntities(ms []models.VerificationReport) ([]*entities.VerificationReport, error) {
	items := make([]*entities.VerificationReport, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *ReportRepository) toEntity(m *models.VerificationReport) (*entities.VerificationReport, error) {
	e := &entities.VerificationReport{
		ID:              m.ID,
		MerchantID:      m.MerchantID,
		MerchantName:    m.Merchant.Name,
		GeneratedBy:     m.GeneratedBy,
		ReportDate:      m.ReportDate,
		RiskAssessment:  m.RiskAssessment,
		Recommendations: m.Recommendations,
	}
	if m.Reviewer != nil {
		e.GeneratedByName = m.Reviewer.Username
	}
	if len(m.ReportData) > 0 {
		if err := json.Unmarshal(m.ReportData, &e.ReportData); err != nil {
			return nil, fmt.Errorf("report %s data: %w", m.ID, err)
		}
	}
	return e, nil
}
