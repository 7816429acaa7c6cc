package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"merchant-verify.backend/internal/config"
)

func merchantDBConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "127.0.0.1",
		Port:            1,
		User:            "reviewer",
		Password:        "secret",
		DBName:          "merchant_verify",
		SSLMode:         "disable",
		MaxOpenConns:    7,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}
}

// stubConnection swaps the open and ping hooks and returns an unconnected
// lib/pq pool that NewConnection will receive.
func stubConnection(t *testing.T, pingErr error) *sql.DB {
	t.Helper()
	origOpen, origPing := sqlOpen, dbPing
	t.Cleanup(func() { sqlOpen, dbPing = origOpen, origPing })

	pool, err := origOpen("postgres", merchantDBConfig().DSN())
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	sqlOpen = func(string, string) (*sql.DB, error) { return pool, nil }
	dbPing = func(*sql.DB) error { return pingErr }
	return pool
}

func TestNewConnection_UnreachableServer(t *testing.T) {
	db, err := NewConnection(merchantDBConfig())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "failed to ping database")
}

func TestNewConnection_UsesLibPQWithKeyValueDSN(t *testing.T) {
	origOpen := sqlOpen
	t.Cleanup(func() { sqlOpen = origOpen })

	cfg := merchantDBConfig()
	var driver, dsn string
	sqlOpen = func(d, s string) (*sql.DB, error) {
		driver, dsn = d, s
		return nil, errors.New("driver missing")
	}

	db, err := NewConnection(cfg)
	require.ErrorContains(t, err, "failed to open database")
	assert.Nil(t, db)
	assert.Equal(t, "postgres", driver)
	assert.Equal(t, cfg.DSN(), dsn)
}

func TestNewConnection_AppliesPoolLimits(t *testing.T) {
	pool := stubConnection(t, nil)

	db, err := NewConnection(merchantDBConfig())
	require.NoError(t, err)
	require.Same(t, pool, db)
	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}

func TestNewConnection_PingErrorClosesPool(t *testing.T) {
	pool := stubConnection(t, errors.New("connection refused"))

	db, err := NewConnection(merchantDBConfig())
	require.ErrorContains(t, err, "connection refused")
	assert.Nil(t, db)
	assert.ErrorContains(t, pool.Ping(), "closed")
}

func TestConfigurePool_ZeroValuesKeepDefaults(t *testing.T) {
	pool := stubConnection(t, nil)

	ConfigurePool(pool, config.DatabaseConfig{})
	assert.Zero(t, pool.Stats().MaxOpenConnections)

	ConfigurePool(nil, merchantDBConfig())
}
