package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
)

var _ repository.ServicePartition = (*ServicePartitionRepo)(nil)
var _ repository.ServiceCatalog = (*ServiceCatalogDirectory)(nil)

const serviceColumns = `id, custom_service_id, service_category, package_name, package_image,
		description, price_amount, estimated_time, inclusions, is_active, created_at, updated_at`

// ServicePartitionRepo implements the ServicePartition port over one
// per-category table.
type ServicePartitionRepo struct {
	pool   *pgxpool.Pool
	handle string
	table  string
}

// NewServicePartition binds a repository to one partition handle.
func NewServicePartition(pool *pgxpool.Pool, handle string) *ServicePartitionRepo {
	return &ServicePartitionRepo{pool: pool, handle: handle, table: "services_" + handle}
}

// Handle returns the partition handle this repository is bound to.
func (r *ServicePartitionRepo) Handle() string { return r.handle }

// Create persists a new service package into this partition.
func (r *ServicePartitionRepo) Create(ctx context.Context, p *entity.ServicePackage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, r.table, serviceColumns)
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.CustomServiceID, p.ServiceCategory, p.PackageName, p.PackageImage,
		p.Description, p.PriceAmount, p.EstimatedTime, p.Inclusions, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert service package into %s: %w", r.table, err)
	}
	return nil
}

// ListActiveByCategory returns active packages carrying the given label,
// newest first.
func (r *ServicePartitionRepo) ListActiveByCategory(ctx context.Context, label string) ([]*entity.ServicePackage, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE service_category = $1 AND is_active
		ORDER BY created_at DESC`, serviceColumns, r.table)
	rows, err := r.pool.Query(ctx, query, label)
	if err != nil {
		return nil, fmt.Errorf("list service packages from %s: %w", r.table, err)
	}
	defer rows.Close()
	var list []*entity.ServicePackage
	for rows.Next() {
		var p entity.ServicePackage
		if err := rows.Scan(
			&p.ID, &p.CustomServiceID, &p.ServiceCategory, &p.PackageName, &p.PackageImage,
			&p.Description, &p.PriceAmount, &p.EstimatedTime, &p.Inclusions, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service package: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ServiceCatalogDirectory holds every service partition in registry order.
type ServiceCatalogDirectory struct {
	order []string
	parts map[string]*ServicePartitionRepo
}

// NewServiceCatalog builds one partition repository per registry handle.
func NewServiceCatalog(pool *pgxpool.Pool, reg *category.Registry) *ServiceCatalogDirectory {
	handles := reg.Handles()
	parts := make(map[string]*ServicePartitionRepo, len(handles))
	for _, h := range handles {
		parts[h] = NewServicePartition(pool, h)
	}
	return &ServiceCatalogDirectory{order: handles, parts: parts}
}

// Partition returns the partition bound to a handle.
func (d *ServiceCatalogDirectory) Partition(handle string) (repository.ServicePartition, bool) {
	p, ok := d.parts[handle]
	return p, ok
}

// Partitions returns the partition set in fixed order.
func (d *ServiceCatalogDirectory) Partitions() []repository.ServicePartition {
	out := make([]repository.ServicePartition, 0, len(d.order))
	for _, h := range d.order {
		out = append(out, d.parts[h])
	}
	return out
}
