package logger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func resetLogger(t *testing.T) {
	t.Helper()
	log = nil
	once = sync.Once{}
	t.Cleanup(func() {
		log = nil
		once = sync.Once{}
	})
}

func TestGetLogger_NopBeforeInit(t *testing.T) {
	resetLogger(t)

	require.NotNil(t, GetLogger())
	// must not panic without Init
	Info(context.Background(), "not initialised")
	SetLevel(zapcore.DebugLevel)
}

func TestInitAndContextLogging(t *testing.T) {
	resetLogger(t)
	Init("development")
	require.NotNil(t, GetLogger())

	ctx := context.WithValue(context.Background(), "request_id", "req-1")
	ctx = context.WithValue(ctx, ReviewerIDKey, uuid.New())
	assert.NotNil(t, WithContext(ctx))

	Info(ctx, "info", MerchantID(uuid.New()))
	Debug(ctx, "debug")
	Warn(ctx, "warn")
	Error(ctx, "error")
	LogRequest(ctx, "GET", "/health", 200, 10*time.Millisecond, "127.0.0.1")
	LogRequest(ctx, "GET", "/boom", 500, time.Millisecond, "127.0.0.1")
}

func TestWithContext_NilAndTypedKey(t *testing.T) {
	resetLogger(t)
	Init("development")

	//nolint:staticcheck // nil context is handled explicitly
	assert.NotNil(t, WithContext(nil))

	ctx := context.WithValue(context.Background(), RequestIDKey, "typed-req-id")
	assert.NotNil(t, WithContext(ctx))
}

func TestInit_ProductionAndSetLevel(t *testing.T) {
	resetLogger(t)

	Init("production")
	require.NotNil(t, GetLogger())
	assert.False(t, GetLogger().Core().Enabled(zapcore.DebugLevel))

	SetLevel(zapcore.DebugLevel)
	assert.True(t, GetLogger().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_PanicWhenLoggerBuildFails(t *testing.T) {
	resetLogger(t)
	origBuild := buildLogger
	t.Cleanup(func() { buildLogger = origBuild })

	buildLogger = func(zap.Config) (*zap.Logger, error) {
		return nil, errors.New("build failed")
	}

	assert.Panics(t, func() { Init("production") })
}
