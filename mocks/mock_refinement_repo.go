package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"refinery/internal/domain"
)

// MockRefinementRepository is a mock implementation of port.RefinementRepository.
type MockRefinementRepository struct {
	mock.Mock
}

func (m *MockRefinementRepository) Create(ctx context.Context, rec *domain.Refinement) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRefinementRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Refinement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refinement), args.Error(1)
}

func (m *MockRefinementRepository) List(ctx context.Context, offset, limit int) ([]domain.Refinement, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Refinement), args.Int(1), args.Error(2)
}
