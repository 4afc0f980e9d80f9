package port

import (
	"context"

	"refinery/internal/domain"
)

// Analyzer abstracts the external generative model behind the structured
// analysis contract. Implementations fail with the typed errors in
// internal/analyzer; they never return a partially valid output.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*domain.RefinedOutput, error)
}
