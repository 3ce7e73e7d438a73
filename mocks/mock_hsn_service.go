package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstbill/internal/domain"
	"gstbill/internal/service"
)

// MockHSNService is a mock implementation of service.HSNService.
type MockHSNService struct {
	mock.Mock
}

func (m *MockHSNService) List(ctx context.Context) ([]domain.HSN, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HSN), args.Error(1)
}

func (m *MockHSNService) GetByCode(ctx context.Context, code string) (*domain.HSN, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HSN), args.Error(1)
}

func (m *MockHSNService) Create(ctx context.Context, input service.CreateHSNInput) (*domain.HSN, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HSN), args.Error(1)
}

func (m *MockHSNService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
