package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
)

var _ repository.VendorPartition = (*VendorPartitionRepo)(nil)
var _ repository.VendorDirectory = (*VendorDirectory)(nil)

const vendorColumns = `id, custom_user_id, first_name, last_name, full_name, email, phone,
		password_hash, aadhar_number, pan_number, category, photo_url,
		street, city, state, pincode, address,
		is_online, is_verified, wallet_balance, role, created_at, updated_at`

// VendorPartitionRepo implements the VendorPartition port over one
// per-category table. The table name is derived exclusively from a registry
// handle, never from request input.
type VendorPartitionRepo struct {
	pool   *pgxpool.Pool
	handle string
	table  string
}

// NewVendorPartition binds a repository to one partition handle.
func NewVendorPartition(pool *pgxpool.Pool, handle string) *VendorPartitionRepo {
	return &VendorPartitionRepo{pool: pool, handle: handle, table: "vendors_" + handle}
}

// Handle returns the partition handle this repository is bound to.
func (r *VendorPartitionRepo) Handle() string { return r.handle }

// Create persists a new vendor into this partition.
func (r *VendorPartitionRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
		r.table, vendorColumns)
	_, err := r.pool.Exec(ctx, query,
		v.ID, v.CustomUserID, v.FirstName, v.LastName, v.FullName, v.Email, v.Phone,
		v.PasswordHash, v.AadharNumber, v.PanNumber, v.Category, v.PhotoURL,
		v.Street, v.City, v.State, v.Pincode, v.Address,
		v.Online, v.Verified, v.WalletBalance, v.Role, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor into %s: %w", r.table, err)
	}
	return nil
}

// GetByEmail point query; (nil, nil) on no match.
func (r *VendorPartitionRepo) GetByEmail(ctx context.Context, email string) (*entity.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1 LIMIT 1`, vendorColumns, r.table)
	return r.scanOne(ctx, query, email)
}

// GetByCustomID point query by public vendor id; (nil, nil) on no match.
func (r *VendorPartitionRepo) GetByCustomID(ctx context.Context, customUserID string) (*entity.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE custom_user_id = $1`, vendorColumns, r.table)
	return r.scanOne(ctx, query, customUserID)
}

// GetByEmailOrAadhar registration duplicate check within this partition.
func (r *VendorPartitionRepo) GetByEmailOrAadhar(ctx context.Context, email, aadhar string) (*entity.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1 OR aadhar_number = $2 LIMIT 1`, vendorColumns, r.table)
	return r.scanOne(ctx, query, email, aadhar)
}

func (r *VendorPartitionRepo) scanOne(ctx context.Context, query string, args ...interface{}) (*entity.Vendor, error) {
	var v entity.Vendor
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.CustomUserID, &v.FirstName, &v.LastName, &v.FullName, &v.Email, &v.Phone,
		&v.PasswordHash, &v.AadharNumber, &v.PanNumber, &v.Category, &v.PhotoURL,
		&v.Street, &v.City, &v.State, &v.Pincode, &v.Address,
		&v.Online, &v.Verified, &v.WalletBalance, &v.Role, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor from %s: %w", r.table, err)
	}
	return &v, nil
}

// SetOnline flips the persisted online flag.
func (r *VendorPartitionRepo) SetOnline(ctx context.Context, customUserID string, online bool) error {
	query := fmt.Sprintf(`UPDATE %s SET is_online = $2, updated_at = now() WHERE custom_user_id = $1`, r.table)
	tag, err := r.pool.Exec(ctx, query, customUserID, online)
	if err != nil {
		return fmt.Errorf("set online flag in %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

// CreditWallet increments the wallet balance in a single statement; the
// read-modify-write happens inside the database, so concurrent settlements
// cannot lose updates.
func (r *VendorPartitionRepo) CreditWallet(ctx context.Context, customUserID string, amount int64) error {
	query := fmt.Sprintf(`UPDATE %s SET wallet_balance = wallet_balance + $2, updated_at = now() WHERE custom_user_id = $1`, r.table)
	tag, err := r.pool.Exec(ctx, query, customUserID, amount)
	if err != nil {
		return fmt.Errorf("credit wallet in %s: %w", r.table, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVendorNotFound
	}
	return nil
}

// List returns every vendor in this partition.
func (r *VendorPartitionRepo) List(ctx context.Context) ([]*entity.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, vendorColumns, r.table)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vendors from %s: %w", r.table, err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(
			&v.ID, &v.CustomUserID, &v.FirstName, &v.LastName, &v.FullName, &v.Email, &v.Phone,
			&v.PasswordHash, &v.AadharNumber, &v.PanNumber, &v.Category, &v.PhotoURL,
			&v.Street, &v.City, &v.State, &v.Pincode, &v.Address,
			&v.Online, &v.Verified, &v.WalletBalance, &v.Role, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ListOnlineIDs returns the public ids of vendors currently online in this
// partition.
func (r *VendorPartitionRepo) ListOnlineIDs(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT custom_user_id FROM %s WHERE is_online`, r.table)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list online vendors from %s: %w", r.table, err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan vendor id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountVerified counts verified vendors in this partition.
func (r *VendorPartitionRepo) CountVerified(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE is_verified`, r.table)
	var n int64
	if err := r.pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count verified vendors in %s: %w", r.table, err)
	}
	return n, nil
}

// VendorDirectory holds every vendor partition in the registry's fixed
// order.
type VendorDirectory struct {
	order []string
	parts map[string]*VendorPartitionRepo
}

// NewVendorDirectory builds one partition repository per registry handle.
func NewVendorDirectory(pool *pgxpool.Pool, reg *category.Registry) *VendorDirectory {
	handles := reg.Handles()
	parts := make(map[string]*VendorPartitionRepo, len(handles))
	for _, h := range handles {
		parts[h] = NewVendorPartition(pool, h)
	}
	return &VendorDirectory{order: handles, parts: parts}
}

// Partition returns the partition bound to a handle.
func (d *VendorDirectory) Partition(handle string) (repository.VendorPartition, bool) {
	p, ok := d.parts[handle]
	return p, ok
}

// Partitions returns the partition set in fixed order.
func (d *VendorDirectory) Partitions() []repository.VendorPartition {
	out := make([]repository.VendorPartition, 0, len(d.order))
	for _, h := range d.order {
		out = append(out, d.parts[h])
	}
	return out
}
