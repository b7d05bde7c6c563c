package repository

import (
	"context"

	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
)

// AdminRepository is the persistence port for admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, a *entity.Admin) error
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
}
