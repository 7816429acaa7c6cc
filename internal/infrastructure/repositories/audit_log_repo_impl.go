package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/infrastructure/models"
	"merchant-verify.backend/pkg/utils"
)

// AuditLogRepository appends audit entries
type AuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry *entities.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = utils.GenerateUUIDv7()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	m := &models.AuditLog{
		ID:         entry.ID,
		ReviewerID: entry.ReviewerID,
		MerchantID: entry.MerchantID,
		Action:     string(entry.Action),
		Timestamp:  entry.Timestamp,
		IPAddress:  entry.IPAddress.Ptr(),
	}
	if len(entry.Details) > 0 {
		m.Details = datatypes.JSON(entry.Details)
	}
	return GetDB(ctx, r.db).Create(m).Error
}

// ListByMerchant returns the newest entries first. limit <= 0 returns all.
func (r *AuditLogRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID, limit int) ([]*entities.AuditLogEntry, error) {
	var ms []models.AuditLog
	q := GetDB(ctx, r.db).
		Where("merchant_id = ?", merchantID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true})
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.AuditLogEntry, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		e := &entities.AuditLogEntry{
			ID:         m.ID,
			ReviewerID: m.ReviewerID,
			MerchantID: m.MerchantID,
			Action:     entities.AuditAction(m.Action),
			Timestamp:  m.Timestamp,
			IPAddress:  null.StringFromPtr(m.IPAddress),
		}
		if len(m.Details) > 0 {
			e.Details = []byte(m.Details)
		}
		items = append(items, e)
	}
	return items, nil
}
