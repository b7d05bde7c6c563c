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

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, custom_user_id, full_name, email, phone, password_hash, role, created_at, updated_at`

// CustomerRepo implements the CustomerRepository port over PostgreSQL.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository builds the customer persistence adapter.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Create persists a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := fmt.Sprintf(`INSERT INTO customers (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, customerColumns)
	_, err := r.pool.Exec(ctx, query,
		c.ID, c.CustomUserID, c.FullName, c.Email, c.Phone, c.PasswordHash, c.Role, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByEmail point query; (nil, nil) on no match.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE email = $1 LIMIT 1`, customerColumns)
	return r.scanOne(ctx, query, email)
}

// GetByCustomID point query by public customer id; (nil, nil) on no match.
func (r *CustomerRepo) GetByCustomID(ctx context.Context, customUserID string) (*entity.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE custom_user_id = $1`, customerColumns)
	return r.scanOne(ctx, query, customUserID)
}

// Count returns the total number of customers.
func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func (r *CustomerRepo) scanOne(ctx context.Context, query string, args ...interface{}) (*entity.Customer, error) {
	var c entity.Customer
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.CustomUserID, &c.FullName, &c.Email, &c.Phone, &c.PasswordHash, &c.Role, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}
