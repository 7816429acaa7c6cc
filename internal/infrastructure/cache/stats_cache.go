package cache

import (
	"context"
	"fmt"
	"time"

	"merchant-verify.backend/pkg/redis"
)

const (
	KeyDashboardStats   = "dashboard:stats"
	KeyRiskDistribution = "dashboard:risk_distribution"
	KeyBusinessTypes    = "dashboard:business_types"
)

var dashboardKeys = []string{KeyDashboardStats, KeyRiskDistribution, KeyBusinessTypes}

// StatsCache keeps dashboard aggregates in redis. Without a configured
// redis client every lookup is a miss and writes are dropped.
type StatsCache struct {
	ttl time.Duration
}

func NewStatsCache(ttl time.Duration) *StatsCache {
	return &StatsCache{ttl: ttl}
}

func (c *StatsCache) enabled() bool {
	return redis.GetClient() != nil
}

// Get loads key into dest and reports whether it was present.
func (c *StatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	if err := redis.GetJSON(ctx, key, dest); err != nil {
		if redis.IsNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("stats cache get %s: %w", key, err)
	}
	return true, nil
}

func (c *StatsCache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.enabled() {
		return nil
	}
	if err := redis.SetJSON(ctx, key, value, c.ttl); err != nil {
		return fmt.Errorf("stats cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every dashboard aggregate.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	if err := redis.Del(ctx, dashboardKeys...); err != nil {
		return fmt.Errorf("stats cache invalidate: %w", err)
	}
	return nil
}
