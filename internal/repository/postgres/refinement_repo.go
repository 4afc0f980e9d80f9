package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"refinery/internal/domain"
	"refinery/internal/port"
)

type refinementRepo struct {
	db *sqlx.DB
}

// NewRefinementRepo creates a new PostgreSQL-backed RefinementRepository.
func NewRefinementRepo(db *sqlx.DB) port.RefinementRepository {
	return &refinementRepo{db: db}
}

func (r *refinementRepo) Create(ctx context.Context, rec *domain.Refinement) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now().UTC()

	query := `INSERT INTO refinements (
		id, original_input, input_type, refined_output,
		confidence_score, metadata, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.OriginalInput, rec.InputType, rec.RefinedOutput,
		rec.ConfidenceScore, rec.Metadata, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("refinementRepo.Create: %w", err)
	}
	return nil
}

func (r *refinementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Refinement, error) {
	var rec domain.Refinement
	err := r.db.GetContext(ctx, &rec,
		"SELECT * FROM refinements WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("refinementRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *refinementRepo) List(ctx context.Context, offset, limit int) ([]domain.Refinement, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM refinements")
	if err != nil {
		return nil, 0, fmt.Errorf("refinementRepo.List count: %w", err)
	}

	recs := []domain.Refinement{}
	err = r.db.SelectContext(ctx, &recs,
		"SELECT * FROM refinements ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("refinementRepo.List: %w", err)
	}
	return recs, total, nil
}
