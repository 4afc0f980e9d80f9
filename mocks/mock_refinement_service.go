package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refinery/internal/domain"
	"refinery/internal/service"
)

// MockRefinementService is a mock implementation of service.RefinementService.
type MockRefinementService struct {
	mock.Mock
}

func (m *MockRefinementService) Refine(ctx context.Context, in service.RefineInput) (*domain.Refinement, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refinement), args.Error(1)
}

func (m *MockRefinementService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Refinement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refinement), args.Error(1)
}

func (m *MockRefinementService) List(ctx context.Context, offset, limit int) ([]domain.Refinement, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Refinement), args.Int(1), args.Error(2)
}

func (m *MockRefinementService) ListForExport(ctx context.Context) ([]domain.Refinement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refinement), args.Error(1)
}
