package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/usecases"
)

func TestAuditUsecase_ListByMerchant(t *testing.T) {
	merchants := new(MockMerchantRepository)
	audit := new(MockAuditLogRepository)
	uc := usecases.NewAuditUsecase(merchants, audit)

	m := storedMerchant(entities.MerchantStatusVerified)
	entries := []*entities.AuditLogEntry{
		{ID: uuid.New(), MerchantID: m.ID, Action: entities.AuditActionVerify},
		{ID: uuid.New(), MerchantID: m.ID, Action: entities.AuditActionCreate},
	}
	merchants.On("GetByID", mock.Anything, m.ID).Return(m, nil).Once()
	audit.On("ListByMerchant", mock.Anything, m.ID, 0).Return(entries, nil).Once()

	got, err := uc.ListByMerchant(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	missing := uuid.New()
	merchants.On("GetByID", mock.Anything, missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.ListByMerchant(context.Background(), missing)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
