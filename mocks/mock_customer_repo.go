package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
)

// MockCustomerRepo is a mock implementation of port.CustomerRepository.
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepo) List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}

func (m *MockCustomerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepo) BulkCreate(ctx context.Context, customers []domain.Customer, clearFirst bool) (int, error) {
	args := m.Called(ctx, customers, clearFirst)
	return args.Int(0), args.Error(1)
}

func (m *MockCustomerRepo) ClearAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
