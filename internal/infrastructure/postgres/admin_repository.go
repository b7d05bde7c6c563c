package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implements the AdminRepository port over PostgreSQL.
type AdminRepo struct {
	pool *pgxpool.Pool
}

// NewAdminRepository builds the admin persistence adapter.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepo {
	return &AdminRepo{pool: pool}
}

// Create persists a new admin account.
func (r *AdminRepo) Create(ctx context.Context, a *entity.Admin) error {
	query := `
		INSERT INTO admins (id, custom_user_id, full_name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		a.ID, a.CustomUserID, a.FullName, a.Email, a.PasswordHash, a.Role, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByEmail point query; (nil, nil) on no match.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	query := `
		SELECT id, custom_user_id, full_name, email, password_hash, role, created_at, updated_at
		FROM admins WHERE email = $1 LIMIT 1`
	var a entity.Admin
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.CustomUserID, &a.FullName, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}
