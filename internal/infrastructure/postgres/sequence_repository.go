package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo allocates display-id sequence values with an atomic
// upsert-increment, replacing the legacy count-the-documents generator that
// could hand two concurrent creations the same number.
type SequenceRepo struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository builds the sequence adapter.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepo {
	return &SequenceRepo{pool: pool}
}

// Next returns the next value for a scope. The increment happens inside a
// single statement, so concurrent callers always observe distinct values.
func (r *SequenceRepo) Next(ctx context.Context, scope string) (int64, error) {
	var value int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sequences (scope, value) VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET value = sequences.value + 1
		RETURNING value`, scope).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next sequence value for %s: %w", scope, err)
	}
	return value, nil
}
