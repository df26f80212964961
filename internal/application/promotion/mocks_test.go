package promotion

import (
	"context"
	"time"

	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/promotion"
	"github.com/stretchr/testify/mock"
)

// MockOrderLineRepository is a mock implementation of order.OrderLineRepository
type MockOrderLineRepository struct {
	mock.Mock
}

func (m *MockOrderLineRepository) FindByID(ctx context.Context, id int64) (*order.OrderLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) FindByIDs(ctx context.Context, ids []int64) ([]order.OrderLine, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) FindUnprocessed(ctx context.Context) ([]order.OrderLine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) FindByCorrelationIDs(ctx context.Context, correlationIDs []string) ([]order.OrderLine, error) {
	args := m.Called(ctx, correlationIDs)
	if rf, ok := args.Get(0).(func(context.Context, []string) []order.OrderLine); ok {
		return rf(ctx, correlationIDs), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

func (m *MockOrderLineRepository) BulkInsert(ctx context.Context, lines []order.OrderLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockOrderLineRepository) MarkGiftApplied(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderLineRepository) RevertGiftApplied(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderLineRepository) MarkAllDone(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderLineRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockOrderLineRepository) FindDispatchable(ctx context.Context, from, to time.Time) ([]order.OrderLine, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.OrderLine), args.Error(1)
}

// MockRuleRepository is a mock implementation of promotion.RuleRepository
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindByID(ctx context.Context, id int64) (*promotion.Rule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.Rule), args.Error(1)
}

func (m *MockRuleRepository) FindCandidates(ctx context.Context, minDate, maxDate time.Time, promoType promotion.PromoType) ([]promotion.Rule, error) {
	args := m.Called(ctx, minDate, maxDate, promoType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promotion.Rule), args.Error(1)
}

func (m *MockRuleRepository) Save(ctx context.Context, rule *promotion.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGiftApplicationRepository is a mock implementation of
// promotion.GiftApplicationRepository
type MockGiftApplicationRepository struct {
	mock.Mock
}

func (m *MockGiftApplicationRepository) Save(ctx context.Context, record *promotion.GiftApplicationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGiftApplicationRepository) FindByGeneratedOrderIDs(ctx context.Context, orderIDs []int64) ([]promotion.GiftApplicationRecord, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]promotion.GiftApplicationRecord), args.Error(1)
}

func (m *MockGiftApplicationRepository) DeleteByGeneratedOrderIDs(ctx context.Context, orderIDs []int64) error {
	args := m.Called(ctx, orderIDs)
	return args.Error(0)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
