package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/infrastructure/datasources/postgres"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

// newMigratedDB opens a fresh sqlite database with the full schema.
func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	require.NoError(t, postgres.AutoMigrate(db))
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func newMerchant(name, registration string) *entities.Merchant {
	return &entities.Merchant{
		Name:               name,
		BusinessType:       entities.BusinessTypeRetail,
		RegistrationNumber: registration,
		Website:            null.StringFrom("https://" + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com"),
		Email:              "ops@" + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com",
		Phone:              "+1-555-0100",
		Address:            "1 Market St",
		City:               "Springfield",
		State:              "IL",
		Country:            "United States",
		PostalCode:         "62701",
		Status:             entities.MerchantStatusPending,
	}
}

func seedMerchant(t *testing.T, repo *MerchantRepository, name, registration string) *entities.Merchant {
	t.Helper()
	m := newMerchant(name, registration)
	require.NoError(t, repo.Create(t.Context(), m))
	require.NotEqual(t, uuid.Nil, m.ID)
	return m
}
