package usecases

import (
	"context"

	"github.com/google/uuid"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/domain/repositories"
)

// AuditUsecase reads the append-only audit trail
type AuditUsecase struct {
	merchantRepo repositories.MerchantRepository
	auditRepo    repositories.AuditLogRepository
}

func NewAuditUsecase(merchantRepo repositories.MerchantRepository, auditRepo repositories.AuditLogRepository) *AuditUsecase {
	return &AuditUsecase{merchantRepo: merchantRepo, auditRepo: auditRepo}
}

// ListByMerchant returns every audit entry of a merchant, newest first
func (u *AuditUsecase) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.AuditLogEntry, error) {
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}
	return u.auditRepo.ListByMerchant(ctx, merchantID, 0)
}
