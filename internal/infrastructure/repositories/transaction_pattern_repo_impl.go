package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/infrastructure/models"
	"merchant-verify.backend/pkg/utils"
)

// TransactionPatternRepository stores analysis snapshots
type TransactionPatternRepository struct {
	db *gorm.DB
}

// NewTransactionPatternRepository creates a new transaction pattern repository
func NewTransactionPatternRepository(db *gorm.DB) *TransactionPatternRepository {
	return &TransactionPatternRepository{db: db}
}

func (r *TransactionPatternRepository) Create(ctx context.Context, pattern *entities.TransactionPattern) error {
	if pattern.ID == uuid.Nil {
		pattern.ID = utils.GenerateUUIDv7()
	}
	if pattern.AnalysisDate.IsZero() {
		pattern.AnalysisDate = time.Now()
	}
	m, err := r.toModel(pattern)
	if err != nil {
		return err
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// GetLatest returns the most recent snapshot of a merchant, usable or not.
func (r *TransactionPatternRepository) GetLatest(ctx context.Context, merchantID uuid.UUID) (*entities.TransactionPattern, error) {
	var m models.TransactionPattern
	err := GetDB(ctx, r.db).
		Where("merchant_id = ?", merchantID).
		Order("analysis_date DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// ListByMerchant returns a merchant's snapshots, newest first.
func (r *TransactionPatternRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.TransactionPattern, error) {
	var ms []models.TransactionPattern
	if err := GetDB(ctx, r.db).
		Where("merchant_id = ?", merchantID).
		Order("analysis_date DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.TransactionPattern, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *TransactionPatternRepository) toEntity(m *models.TransactionPattern) (*entities.TransactionPattern, error) {
	e := &entities.TransactionPattern{
		ID:                            m.ID,
		MerchantID:                    m.MerchantID,
		AverageTransactionAmount:      m.AverageTransactionAmount,
		MonthlyTransactionVolume:      m.MonthlyTransactionVolume,
		HighRiskCountriesPercentage:   m.HighRiskCountriesPercentage,
		UnusualHoursPercentage:        m.UnusualHoursPercentage,
		SimilarTransactionsPercentage: m.SimilarTransactionsPercentage,
		ChargebackRate:                m.ChargebackRate,
		AnalysisError:                 null.StringFromPtr(m.AnalysisError),
		AnalysisDate:                  m.AnalysisDate,
	}
	if err := unmarshalJSON(m.TransactionData, &e.TransactionData); err != nil {
		return nil, fmt.Errorf("pattern %s transaction data: %w", m.ID, err)
	}
	return e, nil
}

func (r *TransactionPatternRepository) toModel(e *entities.TransactionPattern) (*models.TransactionPattern, error) {
	data, err := marshalJSON(e.TransactionData)
	if err != nil {
		return nil, err
	}
	return &models.TransactionPattern{
		ID:                            e.ID,
		MerchantID:                    e.MerchantID,
		AverageTransactionAmount:      e.AverageTransactionAmount,
		MonthlyTransactionVolume:      e.MonthlyTransactionVolume,
		HighRiskCountriesPercentage:   e.HighRiskCountriesPercentage,
		UnusualHoursPercentage:        e.UnusualHoursPercentage,
		SimilarTransactionsPercentage: e.SimilarTransactionsPercentage,
		ChargebackRate:                e.ChargebackRate,
		TransactionData:               data,
		AnalysisError:                 e.AnalysisError.Ptr(),
		AnalysisDate:                  e.AnalysisDate,
	}, nil
}
