package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/infrastructure/models"
	"merchant-verify.backend/pkg/utils"
)

// MerchantRepository implements merchant data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create inserts a merchant. ID and timestamps are filled in when unset.
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	if merchant.ID == uuid.Nil {
		merchant.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	if merchant.CreatedAt.IsZero() {
		merchant.CreatedAt = now
	}
	merchant.UpdatedAt = now

	m, err := r.toModel(merchant)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("registration number %q: %w", merchant.RegistrationNumber, domainerrors.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

// GetByID gets a merchant by ID. Under UnitOfWork.WithLock the row is locked.
func (r *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	if err := GetLockedDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// Update saves every mutable column of merchant.
func (r *MerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	verificationData, err := marshalJSON(merchant.VerificationData)
	if err != nil {
		return err
	}
	externalData, err := marshalJSON(merchant.ExternalAPIResponse)
	if err != nil {
		return err
	}
	merchant.UpdatedAt = time.Now()

	updates := map[string]interface{}{
		"name":                  merchant.Name,
		"business_type":         string(merchant.BusinessType),
		"tax_id":                merchant.TaxID.Ptr(),
		"website":               merchant.Website.Ptr(),
		"email":                 merchant.Email,
		"phone":                 merchant.Phone,
		"address":               merchant.Address,
		"city":                  merchant.City,
		"state":                 merchant.State,
		"country":               merchant.Country,
		"postal_code":           merchant.PostalCode,
		"status":                string(merchant.Status),
		"risk_level":            merchant.RiskLevel.Ptr(),
		"risk_score":            merchant.RiskScore.Ptr(),
		"verification_data":     verificationData,
		"external_api_response": externalData,
		"verified_by":           merchant.VerifiedBy,
		"last_verified_at":      merchant.LastVerifiedAt.Ptr(),
		"updated_at":            merchant.UpdatedAt,
	}

	result := GetDB(ctx, r.db).
		Model(&models.Merchant{}).
		Where("id = ?", merchant.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateRisk stores a score and its level on a merchant that is still
// pending and unscored. It reports false when the row no longer qualifies,
// for example after a reviewer verified it since it was listed.
func (r *MerchantRepository) UpdateRisk(ctx context.Context, id uuid.UUID, score float64, level entities.RiskLevel) (bool, error) {
	result := GetDB(ctx, r.db).
		Model(&models.Merchant{}).
		Where("id = ? AND status = ? AND risk_score IS NULL", id, string(entities.MerchantStatusPending)).
		Updates(map[string]interface{}{
			"risk_score": score,
			"risk_level": string(level),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List returns merchants matching filter, newest first, with the total count.
func (r *MerchantRepository) List(ctx context.Context, filter entities.MerchantFilter, limit, offset int) ([]*entities.Merchant, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Merchant{})
	if name := strings.TrimSpace(filter.Name); name != "" {
		query = query.Where("LOWER(name) LIKE ?", likeTerm(name))
	}
	if filter.BusinessType != "" {
		query = query.Where("business_type = ?", string(filter.BusinessType))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.RiskLevel != "" {
		query = query.Where("risk_level = ?", string(filter.RiskLevel))
	}
	if country := strings.TrimSpace(filter.Country); country != "" {
		query = query.Where("LOWER(country) LIKE ?", likeTerm(country))
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	return r.page(query, limit, offset)
}

// Search matches q against name, registration number, website and email.
func (r *MerchantRepository) Search(ctx context.Context, q string, limit, offset int) ([]*entities.Merchant, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Merchant{})
	if term := strings.TrimSpace(q); term != "" {
		like := likeTerm(term)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(registration_number) LIKE ? OR LOWER(website) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like, like,
		)
	}
	return r.page(query, limit, offset)
}

// ListUnscored returns pending merchants that have never been scored, oldest first.
func (r *MerchantRepository) ListUnscored(ctx context.Context, limit int) ([]*entities.Merchant, error) {
	var ms []models.Merchant
	if err := GetDB(ctx, r.db).
		Where("status = ? AND risk_score IS NULL", string(entities.MerchantStatusPending)).
		Order("created_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms)
}

type groupCount struct {
	GroupKey string
	Total    int64
}

func (r *MerchantRepository) countBy(ctx context.Context, column string) ([]groupCount, error) {
	var rows []groupCount
	err := GetDB(ctx, r.db).
		Model(&models.Merchant{}).
		Select(column + " AS group_key, COUNT(*) AS total").
		Where(column + " IS NOT NULL").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func (r *MerchantRepository) CountByStatus(ctx context.Context) (map[entities.MerchantStatus]int64, error) {
	rows, err := r.countBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	out := make(map[entities.MerchantStatus]int64, len(rows))
	for _, row := range rows {
		out[entities.MerchantStatus(row.GroupKey)] = row.Total
	}
	return out, nil
}

func (r *MerchantRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&models.Merchant{}).Where("created_at >= ?", since).Count(&total).Error
	return total, err
}

func (r *MerchantRepository) CountByRiskLevel(ctx context.Context) (map[entities.RiskLevel]int64, error) {
	rows, err := r.countBy(ctx, "risk_level")
	if err != nil {
		return nil, err
	}
	out := make(map[entities.RiskLevel]int64, len(rows))
	for _, row := range rows {
		out[entities.RiskLevel(row.GroupKey)] = row.Total
	}
	return out, nil
}

func (r *MerchantRepository) CountByBusinessType(ctx context.Context) (map[entities.BusinessType]int64, error) {
	rows, err := r.countBy(ctx, "business_type")
	if err != nil {
		return nil, err
	}
	out := make(map[entities.BusinessType]int64, len(rows))
	for _, row := range rows {
		out[entities.BusinessType(row.GroupKey)] = row.Total
	}
	return out, nil
}

func (r *MerchantRepository) page(query *gorm.DB, limit, offset int) ([]*entities.Merchant, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Merchant
	q := query.Order("created_at DESC")
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

func (r *MerchantRepository) toEntities(ms []models.Merchant) ([]*entities.Merchant, error) {
	items := make([]*entities.Merchant, 0, len(ms))
	for i := range ms {
		e, err := r.toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

func (r *MerchantRepository) toEntity(m *models.Merchant) (*entities.Merchant, error) {
	e := &entities.Merchant{
		ID:                 m.ID,
		Name:               m.Name,
		BusinessType:       entities.BusinessType(m.BusinessType),
		RegistrationNumber: m.RegistrationNumber,
		TaxID:              null.StringFromPtr(m.TaxID),
		Website:            null.StringFromPtr(m.Website),
		Email:              m.Email,
		Phone:              m.Phone,
		Address:            m.Address,
		City:               m.City,
		State:              m.State,
		Country:            m.Country,
		PostalCode:         m.PostalCode,
		Status:             entities.MerchantStatus(m.Status),
		RiskLevel:          null.StringFromPtr(m.RiskLevel),
		RiskScore:          null.Float64FromPtr(m.RiskScore),
		CreatedBy:          m.CreatedBy,
		VerifiedBy:         m.VerifiedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
		LastVerifiedAt:     null.TimeFromPtr(m.LastVerifiedAt),
	}
	if err := unmarshalJSON(m.VerificationData, &e.VerificationData); err != nil {
		return nil, fmt.Errorf("merchant %s verification data: %w", m.ID, err)
	}
	if err := unmarshalJSON(m.ExternalAPIResponse, &e.ExternalAPIResponse); err != nil {
		return nil, fmt.Errorf("merchant %s external api response: %w", m.ID, err)
	}
	return e, nil
}

func (r *MerchantRepository) toModel(e *entities.Merchant) (*models.Merchant, error) {
	verificationData, err := marshalJSON(e.VerificationData)
	if err != nil {
		return nil, err
	}
	externalData, err := marshalJSON(e.ExternalAPIResponse)
	if err != nil {
		return nil, err
	}
	return &models.Merchant{
		ID:                  e.ID,
		Name:                e.Name,
		BusinessType:        string(e.BusinessType),
		RegistrationNumber:  e.RegistrationNumber,
		TaxID:               e.TaxID.Ptr(),
		Website:             e.Website.Ptr(),
		Email:               e.Email,
		Phone:               e.Phone,
		Address:             e.Address,
		City:                e.City,
		State:               e.State,
		Country:             e.Country,
		PostalCode:          e.PostalCode,
		Status:              string(e.Status),
		RiskLevel:           e.RiskLevel.Ptr(),
		RiskScore:           e.RiskScore.Ptr(),
		VerificationData:    verificationData,
		ExternalAPIResponse: externalData,
		CreatedBy:           e.CreatedBy,
		VerifiedBy:          e.VerifiedBy,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
		LastVerifiedAt:      e.LastVerifiedAt.Ptr(),
	}, nil
}

// marshalJSON encodes v for a JSON column. A nil pointer becomes SQL NULL.
func marshalJSON[T any](v *T) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// unmarshalJSON decodes a JSON column into *dst, leaving it nil for NULL.
func unmarshalJSON[T any](raw datatypes.JSON, dst **T) error {
	if len(raw) == 0 || string(raw) == "null" {
		*dst = nil
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return err
	}
	*dst = v
	return nil
}

func likeTerm(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
