package repository

import (
	"context"

	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
)

// VendorPartition is the persistence port for one vendor category partition.
// Point lookups return (nil, nil) on no match; a miss in one partition is a
// normal outcome of the scatter-gather, not an error.
type VendorPartition interface {
	// Handle returns the partition handle this repository is bound to.
	Handle() string
	Create(ctx context.Context, v *entity.Vendor) error
	GetByEmail(ctx context.Context, email string) (*entity.Vendor, error)
	GetByCustomID(ctx context.Context, customUserID string) (*entity.Vendor, error)
	// GetByEmailOrAadhar backs the registration duplicate check. Uniqueness
	// is enforced per partition only.
	GetByEmailOrAadhar(ctx context.Context, email, aadhar string) (*entity.Vendor, error)
	SetOnline(ctx context.Context, customUserID string, online bool) error
	// CreditWallet applies an atomic conditional increment; it must never be
	// implemented as a read-then-write pair.
	CreditWallet(ctx context.Context, customUserID string, amount int64) error
	List(ctx context.Context) ([]*entity.Vendor, error)
	ListOnlineIDs(ctx context.Context) ([]string, error)
	CountVerified(ctx context.Context) (int64, error)
}

// VendorDirectory exposes the full partition set in a fixed, deterministic
// order plus direct access by handle.
type VendorDirectory interface {
	Partition(handle string) (VendorPartition, bool)
	Partitions() []VendorPartition
}
