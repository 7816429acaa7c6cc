package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"merchant-verify.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) UpdateRisk(ctx context.Context, id uuid.UUID, score float64, level entities.RiskLevel) (bool, error) {
	args := m.Called(ctx, id, score, level)
	return args.Bool(0), args.Error(1)
}

func (m *MockMerchantRepository) List(ctx context.Context, filter entities.MerchantFilter, limit, offset int) ([]*entities.Merchant, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Merchant), args.Get(1).(int64), args.Error(2)
}

func (m *MockMerchantRepository) Search(ctx context.Context, query string, limit, offset int) ([]*entities.Merchant, int64, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Merchant), args.Get(1).(int64), args.Error(2)
}

func (m *MockMerchantRepository) ListUnscored(ctx context.Context, limit int) ([]*entities.Merchant, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) CountByStatus(ctx context.Context) (map[entities.MerchantStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.MerchantStatus]int64), args.Error(1)
}

func (m *MockMerchantRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMerchantRepository) CountByRiskLevel(ctx context.Context) (map[entities.RiskLevel]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.RiskLevel]int64), args.Error(1)
}

func (m *MockMerchantRepository) CountByBusinessType(ctx context.Context) (map[entities.BusinessType]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entities.BusinessType]int64), args.Error(1)
}

// Mock TransactionPatternRepository
type MockPatternRepository struct {
	mock.Mock
}

func (m *MockPatternRepository) Create(ctx context.Context, pattern *entities.TransactionPattern) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockPatternRepository) GetLatest(ctx context.Context, merchantID uuid.UUID) (*entities.TransactionPattern, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransactionPattern), args.Error(1)
}

func (m *MockPatternRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.TransactionPattern, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TransactionPattern), args.Error(1)
}

// Mock FlagRepository
type MockFlagRepository struct {
	mock.Mock
}

func (m *MockFlagRepository) Create(ctx context.Context, flag *entities.VerificationFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *MockFlagRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationFlag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationFlag), args.Error(1)
}

func (m *MockFlagRepository) Update(ctx context.Context, flag *entities.VerificationFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *MockFlagRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationFlag, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.VerificationFlag), args.Error(1)
}

func (m *MockFlagRepository) ListActive(ctx context.Context, limit, offset int) ([]*entities.VerificationFlag, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.VerificationFlag), args.Get(1).(int64), args.Error(2)
}

func (m *MockFlagRepository) CountActiveByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlagRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *entities.VerificationReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationReport), args.Error(1)
}

func (m *MockReportRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.VerificationReport, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.VerificationReport), args.Error(1)
}

func (m *MockReportRepository) List(ctx context.Context, limit, offset int) ([]*entities.VerificationReport, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.VerificationReport), args.Get(1).(int64), args.Error(2)
}

// Mock AuditLogRepository
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *entities.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID, limit int) ([]*entities.AuditLogEntry, error) {
	args := m.Called(ctx, merchantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AuditLogEntry), args.Error(1)
}

// Mock ReviewerRepository
type MockReviewerRepository struct {
	mock.Mock
}

func (m *MockReviewerRepository) Create(ctx context.Context, reviewer *entities.Reviewer) error {
	args := m.Called(ctx, reviewer)
	return args.Error(0)
}

func (m *MockReviewerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Reviewer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reviewer), args.Error(1)
}

func (m *MockReviewerRepository) GetByUsername(ctx context.Context, username string) (*entities.Reviewer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reviewer), args.Error(1)
}

func (m *MockReviewerRepository) List(ctx context.Context) ([]*entities.Reviewer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reviewer), args.Error(1)
}

// Mock ExternalVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(ctx context.Context, merchant *entities.Merchant) (*entities.ExternalVerification, error) {
	args := m.Called(ctx, merchant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExternalVerification), args.Error(1)
}

func (m *MockVerifier) CheckSanctions(ctx context.Context, merchant *entities.Merchant) (*entities.SanctionsCheck, error) {
	args := m.Called(ctx, merchant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SanctionsCheck), args.Error(1)
}

// Mock TransactionSource
type MockTransactionSource struct {
	mock.Mock
}

func (m *MockTransactionSource) Transactions(ctx context.Context, merchant *entities.Merchant) ([]entities.Transaction, error) {
	args := m.Called(ctx, merchant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Transaction), args.Error(1)
}

// Mock StatsCache
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
