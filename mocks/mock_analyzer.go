package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"refinery/internal/domain"
)

// MockAnalyzer is a mock implementation of port.Analyzer.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (*domain.RefinedOutput, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefinedOutput), args.Error(1)
}
