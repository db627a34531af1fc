package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"sales-service/internal/domain"
)

type MockQuoteRepository struct {
	mock.Mock
}

type MockOrderRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockCache struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockQuoteRepository) Save(ctx context.Context, draft *domain.QuoteDraft) (uint64, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockQuoteRepository) Update(ctx context.Context, id uint64, patch domain.QuotePatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuoteRepository) FindByID(ctx context.Context, id uint64) (*domain.QuoteAggregate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteAggregate), args.Error(1)
}

func (m *MockQuoteRepository) Items(ctx context.Context, agg *domain.QuoteAggregate) ([]domain.QuoteItem, error) {
	args := m.Called(ctx, agg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuoteItem), args.Error(1)
}

func (m *MockQuoteRepository) Payment(ctx context.Context, agg *domain.QuoteAggregate) (*domain.QuotePayment, error) {
	args := m.Called(ctx, agg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuotePayment), args.Error(1)
}

func (m *MockQuoteRepository) Load(ctx context.Context, id uint64) (*domain.QuoteAggregate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteAggregate), args.Error(1)
}

func (m *MockQuoteRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) FindItemByID(ctx context.Context, id uint64) (*domain.QuoteItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuoteItem), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, draft *domain.OrderDraft) (uint64, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, id uint64, patch domain.OrderPatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.OrderAggregate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderAggregate), args.Error(1)
}

func (m *MockOrderRepository) Items(ctx context.Context, agg *domain.OrderAggregate) ([]domain.OrderItem, error) {
	args := m.Called(ctx, agg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderItem), args.Error(1)
}

func (m *MockOrderRepository) Payment(ctx context.Context, agg *domain.OrderAggregate) (*domain.OrderPayment, error) {
	args := m.Called(ctx, agg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderPayment), args.Error(1)
}

func (m *MockOrderRepository) Load(ctx context.Context, id uint64) (*domain.OrderAggregate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderAggregate), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindItemByID(ctx context.Context, id uint64) (*domain.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderItem), args.Error(1)
}

// Get returns the configured hit flag and, on a hit, copies the configured
// value into dest through JSON like the real cache does.
func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	found := args.Bool(0)
	if found && len(args) > 2 && args.Get(2) != nil {
		raw, err := json.Marshal(args.Get(2))
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(raw, dest); err != nil {
			return false, err
		}
	}
	return found, args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *domain.Customer) (uint64, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uint64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, id uint64, patch domain.CustomerPatch) (bool, error) {
	args := m.Called(ctx, id, patch)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
