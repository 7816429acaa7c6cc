package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/pkg/utils"
)

func (e *testEnv) raiseFlag(t *testing.T, merchantID uuid.UUID, flagType string) *entities.VerificationFlag {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/merchants/"+merchantID.String()+"/flags", map[string]interface{}{
		"flagType":    flagType,
		"description": "needs a closer look",
		"severity":    "high",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[*entities.VerificationFlag](t, w)
}

func (e *testEnv) merchantStatus(t *testing.T, id uuid.UUID) entities.MerchantStatus {
	t.Helper()
	w := e.do(t, http.MethodGet, "/api/v1/merchants/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	return decode[entities.MerchantDetail](t, w).Merchant.Status
}

func TestFlagHandler_RaiseAndResolveLifecycle(t *testing.T) {
	env := newTestEnv(t)
	m := env.createMerchant(t, "Corner Shop", "REG-100")

	first := env.raiseFlag(t, m.ID, "regulatory")
	second := env.raiseFlag(t, m.ID, "missing_info")
	assert.Equal(t, entities.FlagStatusOpen, first.Status)
	assert.Equal(t, entities.FlagSeverityHigh, first.Severity)
	assert.Equal(t, entities.MerchantStatusFlagged, env.merchantStatus(t, m.ID))

	w := env.do(t, http.MethodGet, "/api/v1/flags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[utils.Page[*entities.VerificationFlag]](t, w).Meta.TotalCount)

	w = env.do(t, http.MethodPut, "/api/v1/flags/"+first.ID.String(), map[string]interface{}{"status": "investigating"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, entities.FlagStatusInvestigating, decode[*entities.VerificationFlag](t, w).Status)

	w = env.do(t, http.MethodPost, "/api/v1/flags/"+first.ID.String()+"/resolve", map[string]interface{}{"status": "resolved", "resolutionNotes": "licence renewed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resolved := decode[*entities.VerificationFlag](t, w)
	assert.Equal(t, entities.FlagStatusResolved, resolved.Status)
	assert.True(t, resolved.ResolvedAt.Valid)
	assert.Equal(t, entities.MerchantStatusFlagged, env.merchantStatus(t, m.ID), "one flag still active")

	w = env.do(t, http.MethodPost, "/api/v1/flags/"+second.ID.String()+"/resolve", map[string]interface{}{"status": "dismissed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.MerchantStatusVerified, env.merchantStatus(t, m.ID))

	w = env.do(t, http.MethodGet, "/api/v1/merchants/"+m.ID.String()+"/flags", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]*entities.VerificationFlag](t, w), 2)

	w = env.do(t, http.MethodGet, "/api/v1/flags/"+second.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.FlagStatusDismissed, decode[*entities.VerificationFlag](t, w).Status)
}

func TestFlagHandler_InvalidTransitions(t *testing.T) {
	env := newTestEnv(t)
	m := env.createMerchant(t, "Corner Shop", "REG-100")
	flag := env.raiseFlag(t, m.ID, "other")

	w := env.do(t, http.MethodPost, "/api/v1/flags/"+flag.ID.String()+"/resolve", map[string]interface{}{"status": "open"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/flags/"+flag.ID.String()+"/resolve", map[string]interface{}{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.FlagStatusResolved, decode[*entities.VerificationFlag](t, w).Status)

	w = env.do(t, http.MethodPost, "/api/v1/flags/"+flag.ID.String()+"/resolve", map[string]interface{}{"status": "dismissed"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/flags/"+flag.ID.String(), map[string]interface{}{"severity": "low"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFlagHandler_RaiseValidation(t *testing.T) {
	env := newTestEnv(t)
	m := env.createMerchant(t, "Corner Shop", "REG-100")

	w := env.do(t, http.MethodPost, "/api/v1/merchants/"+m.ID.String()+"/flags", map[string]interface{}{"flagType": "bogus", "description": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/merchants/"+uuid.NewString()+"/flags", map[string]interface{}{"flagType": "other", "description": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/flags/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFlagHandler_RejectedMerchantStaysRejected(t *testing.T) {
	env := newTestEnv(t)
	m := env.createMerchant(t, "Corner Shop", "REG-100")
	w := env.do(t, http.MethodPost, "/api/v1/merchants/"+m.ID.String()+"/verify", map[string]interface{}{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code)

	env.raiseFlag(t, m.ID, "regulatory")
	assert.Equal(t, entities.MerchantStatusRejected, env.merchantStatus(t, m.ID))
}
