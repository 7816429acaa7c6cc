package usecases

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/internal/infrastructure/cache"
	"merchant-verify.backend/pkg/logger"
)

const recentWindow = 30 * 24 * time.Hour

// DashboardUsecase computes review dashboard aggregates
type DashboardUsecase struct {
	merchantRepo repositories.MerchantRepository
	flagRepo     repositories.FlagRepository
	cache        StatsCache
	now          func() time.Time
}

func NewDashboardUsecase(merchantRepo repositories.MerchantRepository, flagRepo repositories.FlagRepository, cache StatsCache) *DashboardUsecase {
	return &DashboardUsecase{
		merchantRepo: merchantRepo,
		flagRepo:     flagRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// Stats returns merchant totals per status, registrations of the last 30
// days, active flags and merchants at high or extreme risk
func (u *DashboardUsecase) Stats(ctx context.Context) (*entities.DashboardStats, error) {
	var stats entities.DashboardStats
	if u.cached(ctx, cache.KeyDashboardStats, &stats) {
		return &stats, nil
	}

	byStatus, err := u.merchantRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := u.merchantRepo.CountCreatedSince(ctx, u.now().Add(-recentWindow))
	if err != nil {
		return nil, err
	}
	openFlags, err := u.flagRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	byLevel, err := u.merchantRepo.CountByRiskLevel(ctx)
	if err != nil {
		return nil, err
	}

	for _, n := range byStatus {
		stats.TotalMerchants += n
	}
	stats.VerifiedMerchants = byStatus[entities.MerchantStatusVerified]
	stats.FlaggedMerchants = byStatus[entities.MerchantStatusFlagged]
	stats.PendingMerchants = byStatus[entities.MerchantStatusPending]
	stats.RejectedMerchants = byStatus[entities.MerchantStatusRejected]
	stats.RecentMerchants = recent
	stats.OpenFlags = openFlags
	stats.HighRiskMerchants = byLevel[entities.RiskLevelHigh] + byLevel[entities.RiskLevelExtreme]

	u.store(ctx, cache.KeyDashboardStats, stats)
	return &stats, nil
}

// RiskDistribution counts assessed merchants per risk level, lowest first.
// Levels without merchants are omitted.
func (u *DashboardUsecase) RiskDistribution(ctx context.Context) ([]entities.CategoryCount, error) {
	out := []entities.CategoryCount{}
	if u.cached(ctx, cache.KeyRiskDistribution, &out) {
		return out, nil
	}

	byLevel, err := u.merchantRepo.CountByRiskLevel(ctx)
	if err != nil {
		return nil, err
	}
	for _, level := range entities.RiskLevels {
		if n := byLevel[level]; n > 0 {
			out = append(out, entities.CategoryCount{Key: string(level), Label: level.Label(), Count: n})
		}
	}

	u.store(ctx, cache.KeyRiskDistribution, out)
	return out, nil
}

// BusinessTypes counts merchants per business type, ordered by key
func (u *DashboardUsecase) BusinessTypes(ctx context.Context) ([]entities.CategoryCount, error) {
	out := []entities.CategoryCount{}
	if u.cached(ctx, cache.KeyBusinessTypes, &out) {
		return out, nil
	}

	byType, err := u.merchantRepo.CountByBusinessType(ctx)
	if err != nil {
		return nil, err
	}
	for bt, n := range byType {
		out = append(out, entities.CategoryCount{Key: string(bt), Label: bt.Label(), Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	u.store(ctx, cache.KeyBusinessTypes, out)
	return out, nil
}

func (u *DashboardUsecase) cached(ctx context.Context, key string, dest interface{}) bool {
	if u.cache == nil {
		return false
	}
	hit, err := u.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn(ctx, "Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (u *DashboardUsecase) store(ctx context.Context, key string, value interface{}) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Set(ctx, key, value); err != nil {
		logger.Warn(ctx, "Dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
