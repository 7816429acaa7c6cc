package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/infrastructure/models"
	"merchant-verify.backend/pkg/utils"
)

// FlagRepository implements verification flag data operations
type FlagRepository struct {
	db *gorm.DB
}

// NewFlagRepository creates a new flag repository
func NewFlagRepository(db *gorm.DB) *FlagRepository {
	return &FlagRepository{db: db}
}

func (r *FlagRepository) Create(ctx context.Context, flag *entities.VerificationFlag) error {
	if flag.ID == uuid.Nil {
		flag.ID = utils.GenerateUUIDv7()
	}
	if flag.CreatedAt.IsZero() {
		flag.CreatedAt = time.Now()
	}
	return GetDB(ctx, r.db).Create(r.toModel(flag)).Error
}

// GetByID gets a flag by ID. Under UnitOfWork.WithLock the row is locked.
func (r *FlagRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationFlag, error) {
	var m models.VerificationFlag
	if err := GetLockedDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *FlagRepository) Update(ctx context.Context, flag *entities.VerificationFlag) error {
	result := GetDB(ctx, r.db).
		Model(&models.VerificationFlag{}).
		Where("id = ?", flag.ID).
		Updates(map[string]interface{}{
			"description":      flag.Description,
			"severity":         string(flag.Severity),
			"status":           string(flag.Status),
			"resolved_at":      flag.ResolvedAt.Ptr(),
			"resolved_by":      flag.ResolvedBy,
			"resolution_notes": flag.ResolutionNotes.Ptr(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListByMerchant returns every flag of a merchant, newest first.
func (r *FlagRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationFlag, error) {
	var ms []models.VerificationFlag
	if err := GetDB(ctx, r.db).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// ListActive returns open and investigating flags across all merchants.
func (r *FlagRepository) ListActive(ctx context.Context, limit, offset int) ([]*entities.VerificationFlag, int64, error) {
	query := GetDB(ctx, r.db).
		Model(&models.VerificationFlag{}).
		Where("status IN ?", activeStatuses())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.VerificationFlag
	q := query.Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), total, nil
}

func (r *FlagRepository) CountActiveByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).
		Model(&models.VerificationFlag{}).
		Where("merchant_id = ? AND status IN ?", merchantID, activeStatuses()).
		Count(&total).Error
	return total, err
}

func (r *FlagRepository) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).
		Model(&models.VerificationFlag{}).
		Where("status IN ?", activeStatuses()).
		Count(&total).Error
	return total, err
}

func activeStatuses() []string {
	out := make([]string, 0, len(entities.ActiveFlagStatuses))
	for _, s := range entities.ActiveFlagStatuses {
		out = append(out, string(s))
	}
	return out
}

func (r *FlagRepository) toEntities(ms []models.VerificationFlag) []*entities.VerificationFlag {
	items := make([]*entities.VerificationFlag, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items
}

func (r *FlagRepository) toEntity(m *models.VerificationFlag) *entities.VerificationFlag {
	return &entities.VerificationFlag{
		ID:              m.ID,
		MerchantID:      m.MerchantID,
		FlagType:        entities.FlagType(m.FlagType),
		Description:     m.Description,
		Severity:        entities.FlagSeverity(m.Severity),
		Status:          entities.FlagStatus(m.Status),
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
		ResolvedAt:      null.TimeFromPtr(m.ResolvedAt),
		ResolvedBy:      m.ResolvedBy,
		ResolutionNotes: null.StringFromPtr(m.ResolutionNotes),
	}
}

func (r *FlagRepository) toModel(e *entities.VerificationFlag) *models.VerificationFlag {
	return &models.VerificationFlag{
		ID:              e.ID,
		MerchantID:      e.MerchantID,
		FlagType:        string(e.FlagType),
		Description:     e.Description,
		Severity:        string(e.Severity),
		Status:          string(e.Status),
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
		ResolvedAt:      e.ResolvedAt.Ptr(),
		ResolvedBy:      e.ResolvedBy,
		ResolutionNotes: e.ResolutionNotes.Ptr(),
	}
}
