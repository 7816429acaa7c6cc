package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv := miniredis.RunT(t)
	orig := client
	t.Cleanup(func() { client = orig })
	SetClient(goredis.NewClient(&goredis.Options{Addr: srv.Addr()}))
	return srv
}

func TestInitInvalidURL(t *testing.T) {
	err := Init("://invalid-url", "")
	assert.Error(t, err)
}

func TestInit_WithMiniredis(t *testing.T) {
	srv := miniredis.RunT(t)
	orig := client
	t.Cleanup(func() { client = orig })

	require.NoError(t, Init("redis://"+srv.Addr(), "secret"))
	assert.NotNil(t, GetClient())
	assert.Equal(t, "secret", GetClient().Options().Password)
}

func TestSetClientAndBasicOpsWithUnreachableRedis(t *testing.T) {
	orig := client
	t.Cleanup(func() { client = orig })

	cli := goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:0",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
	SetClient(cli)
	assert.NotNil(t, GetClient())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, Set(ctx, "k", "v", time.Second))
	_, err := Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, IsNil(err))
	assert.Error(t, Del(ctx, "k"))
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.Error(t, err)
}

func TestBasicOps_Miniredis(t *testing.T) {
	srv := useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, Set(ctx, "k", "v", time.Minute))
	got, err := Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	ok, err := SetNX(ctx, "k", "other", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.True(t, IsNil(err))

	require.NoError(t, Set(ctx, "ttl", "x", time.Second))
	srv.FastForward(2 * time.Second)
	_, err = Get(ctx, "ttl")
	assert.True(t, IsNil(err))
}

func TestJSONHelpers(t *testing.T) {
	useMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Total int    `json:"total"`
		Name  string `json:"name"`
	}

	require.NoError(t, SetJSON(ctx, "stats", payload{Total: 3, Name: "x"}, time.Minute))

	var out payload
	require.NoError(t, GetJSON(ctx, "stats", &out))
	assert.Equal(t, payload{Total: 3, Name: "x"}, out)

	err := GetJSON(ctx, "missing", &out)
	assert.True(t, IsNil(err))

	require.NoError(t, Set(ctx, "broken", "{not json", time.Minute))
	err = GetJSON(ctx, "broken", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode broken")

	err = SetJSON(ctx, "bad", make(chan int), time.Minute)
	require.Error(t, err)
}
