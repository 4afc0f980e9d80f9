package port

import (
	"context"

	"github.com/google/uuid"

	"refinery/internal/domain"
)

// RefinementRepository persists finished pipeline results. Create assigns
// the record's ID and CreatedAt.
type RefinementRepository interface {
	Create(ctx context.Context, rec *domain.Refinement) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Refinement, error)
	List(ctx context.Context, offset, limit int) ([]domain.Refinement, int, error)
}
