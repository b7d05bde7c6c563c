package repository

import (
	"context"

	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
)

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	GetByCustomID(ctx context.Context, customUserID string) (*entity.Customer, error)
	Count(ctx context.Context) (int64, error)
}
