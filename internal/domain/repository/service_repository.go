package repository

import (
	"context"

	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
)

// ServicePartition is the persistence port for one service category
// partition.
type ServicePartition interface {
	Handle() string
	Create(ctx context.Context, p *entity.ServicePackage) error
	// ListActiveByCategory returns active packages carrying the given label,
	// newest first.
	ListActiveByCategory(ctx context.Context, label string) ([]*entity.ServicePackage, error)
}

// ServiceCatalog exposes the service partition set.
type ServiceCatalog interface {
	Partition(handle string) (ServicePartition, bool)
	Partitions() []ServicePartition
}
