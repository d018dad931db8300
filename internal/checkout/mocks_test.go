package checkout

import (
	"context"

	"kart-checkout/internal/model"
	"kart-checkout/internal/store"

	"github.com/stretchr/testify/mock"
)

// MockCartStore is a mock implementation of store.CartStore.
type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Fetch(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartStore) Snapshot() store.CartSnapshot {
	args := m.Called()
	return args.Get(0).(store.CartSnapshot)
}

// MockShippingMethodStore is a mock implementation of store.ShippingMethodStore.
type MockShippingMethodStore struct {
	mock.Mock
}

func (m *MockShippingMethodStore) Fetch(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShippingMethodStore) Snapshot() store.ShippingSnapshot {
	args := m.Called()
	return args.Get(0).(store.ShippingSnapshot)
}

func (m *MockShippingMethodStore) Get(id string) (*model.ShippingMethod, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.ShippingMethod), args.Bool(1)
}

// MockPaymentMethodStore is a mock implementation of store.PaymentMethodStore.
type MockPaymentMethodStore struct {
	mock.Mock
}

func (m *MockPaymentMethodStore) Fetch(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPaymentMethodStore) Snapshot() store.PaymentSnapshot {
	args := m.Called()
	return args.Get(0).(store.PaymentSnapshot)
}

func (m *MockPaymentMethodStore) Get(id string) (*model.UserPaymentMethod, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.UserPaymentMethod), args.Bool(1)
}

func (m *MockPaymentMethodStore) Create(ctx context.Context, req *model.PaymentMethodRequest) (*model.UserPaymentMethod, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserPaymentMethod), args.Error(1)
}

// MockOrderStore is a mock implementation of store.OrderStore.
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderStore) GetByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}
