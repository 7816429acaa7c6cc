package repositories

import (
	"context"

	"github.com/google/uuid"
	"merchant-verify.backend/internal/domain/entities"
)

// ReportRepository stores immutable verification reports
type ReportRepository interface {
	Create(ctx context.Context, report *entities.VerificationReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationReport, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationReport, error)
	List(ctx context.Context, limit, offset int) ([]*entities.VerificationReport, int64, error)
}

// AuditLogRepository appends and reads audit entries. There is no update or delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *entities.AuditLogEntry) error
	ListByMerchant(ctx context.Context, merchantID uuid.UUID, limit int) ([]*entities.AuditLogEntry, error)
}
