package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"merchant-verify.backend/pkg/redis"
)

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redis.SetClient(nil) })
	return mr
}

func idempotentRouter(reviewerID uuid.UUID, calls *int, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(ReviewerIDKey, reviewerID); c.Next() })
	r.Use(IdempotencyMiddleware())
	r.POST("/merchants", func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	})
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/merchants", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_ReplaysCompletedRequest(t *testing.T) {
	withMiniredis(t)
	calls := 0
	r := idempotentRouter(uuid.New(), &calls, http.StatusCreated)

	first := postWithKey(r, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := postWithKey(r, "key-1")
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	postWithKey(r, "key-2")
	postWithKey(r, "")
	assert.Equal(t, 3, calls)
}

func TestIdempotencyMiddleware_ScopedByReviewer(t *testing.T) {
	withMiniredis(t)
	calls := 0
	postWithKey(idempotentRouter(uuid.New(), &calls, http.StatusCreated), "shared")
	postWithKey(idempotentRouter(uuid.New(), &calls, http.StatusCreated), "shared")
	assert.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_FailedRequestReleasesKey(t *testing.T) {
	mr := withMiniredis(t)
	calls := 0
	r := idempotentRouter(uuid.New(), &calls, http.StatusBadRequest)

	postWithKey(r, "key-1")
	postWithKey(r, "key-1")
	assert.Equal(t, 2, calls)
	assert.Empty(t, mr.Keys())
}

func TestIdempotencyMiddleware_InProgressConflict(t *testing.T) {
	mr := withMiniredis(t)
	reviewerID := uuid.New()
	require.NoError(t, mr.Set("idempotency:"+reviewerID.String()+":/merchants:key-1", processingMarker))

	calls := 0
	w := postWithKey(idempotentRouter(reviewerID, &calls, http.StatusCreated), "key-1")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Zero(t, calls)
}

func TestIdempotencyMiddleware_PassThroughWithoutRedis(t *testing.T) {
	redis.SetClient(nil)
	calls := 0
	r := idempotentRouter(uuid.New(), &calls, http.StatusCreated)
	postWithKey(r, "key-1")
	postWithKey(r, "key-1")
	assert.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_WithHookedRedis(t *testing.T) {
	withMiniredis(t)
	origGet, origSet, origSetNX, origDel := redisGet, redisSet, redisSetNX, redisDel
	t.Cleanup(func() {
		redisGet, redisSet, redisSetNX, redisDel = origGet, origSet, origSetNX, origDel
	})
	redisSet = func(context.Context, string, interface{}, time.Duration) error { return nil }
	redisDel = func(context.Context, ...string) error { return nil }

	t.Run("store error passes through", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", errors.New("connection refused") }
		calls := 0
		w := postWithKey(idempotentRouter(uuid.New(), &calls, http.StatusCreated), "k")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
	})

	t.Run("lock lost to a concurrent request", func(t *testing.T) {
		redisGet = func(context.Context, string) (string, error) { return "", goredis.Nil }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return false, nil }
		calls := 0
		w := postWithKey(idempotentRouter(uuid.New(), &calls, http.StatusCreated), "k")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, calls)
	})

	t.Run("unreadable record is discarded", func(t *testing.T) {
		deleted := false
		redisGet = func(context.Context, string) (string, error) { return "{not json", nil }
		redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) { return true, nil }
		redisDel = func(context.Context, ...string) error { deleted = true; return nil }
		calls := 0
		w := postWithKey(idempotentRouter(uuid.New(), &calls, http.StatusCreated), "k")
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, deleted)
		assert.Equal(t, 1, calls)
	})
}
