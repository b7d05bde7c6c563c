package directory

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// errFound signals a scatter-gather hit through the errgroup so the
// remaining partition queries get cancelled.
var errFound = errors.New("vendor located")

// Match pairs a vendor record with the partition it was found in. Mutations
// (online flag, wallet) must go through this same handle to avoid a second
// unguided scan.
type Match struct {
	Vendor    *entity.Vendor
	Partition repository.VendorPartition
}

// Resolver locates vendor records across all category partitions. Every call
// re-scans; partition count is one per category, so a miss costs a bounded
// number of point queries.
type Resolver struct {
	dir repository.VendorDirectory
	reg *category.Registry
	log *logger.Logger
}

// NewResolver builds the scatter-gather resolver.
func NewResolver(dir repository.VendorDirectory, reg *category.Registry, log *logger.Logger) *Resolver {
	return &Resolver{dir: dir, reg: reg, log: log}
}

// FindByEmail locates a vendor by email, whichever partition it lives in.
// Returns domain.ErrVendorNotFound when no partition matches.
func (r *Resolver) FindByEmail(ctx context.Context, email string) (*Match, error) {
	return r.scatter(ctx, func(ctx context.Context, p repository.VendorPartition) (*entity.Vendor, error) {
		return p.GetByEmail(ctx, email)
	})
}

// FindByID locates a vendor by its public CustomUserID.
func (r *Resolver) FindByID(ctx context.Context, vendorID string) (*Match, error) {
	return r.scatter(ctx, func(ctx context.Context, p repository.VendorPartition) (*entity.Vendor, error) {
		return p.GetByCustomID(ctx, vendorID)
	})
}

// scatter issues one point query per partition concurrently and
// short-circuits on the first hit. A hit cancels the in-flight queries via
// the errgroup context.
func (r *Resolver) scatter(ctx context.Context, query func(context.Context, repository.VendorPartition) (*entity.Vendor, error)) (*Match, error) {
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	var match *Match

	for _, p := range r.dir.Partitions() {
		p := p
		g.Go(func() error {
			v, err := query(gctx, p)
			if err != nil {
				if gctx.Err() != nil {
					// Another partition already answered.
					return nil
				}
				return err
			}
			if v == nil {
				return nil
			}
			mu.Lock()
			if match == nil {
				match = &Match{Vendor: v, Partition: p}
			}
			mu.Unlock()
			return errFound
		})
	}

	err := g.Wait()
	if match != nil {
		return match, nil
	}
	if err != nil && !errors.Is(err, errFound) {
		return nil, err
	}
	return nil, domain.ErrVendorNotFound
}

// SetOnline flips a vendor's persisted online flag through the partition the
// vendor was found in.
func (r *Resolver) SetOnline(ctx context.Context, vendorID string, online bool) error {
	m, err := r.FindByID(ctx, vendorID)
	if err != nil {
		return err
	}
	return m.Partition.SetOnline(ctx, m.Vendor.CustomUserID, online)
}

// CreditWallet applies the settlement credit on the vendor's own partition.
func (r *Resolver) CreditWallet(ctx context.Context, vendorID string, amount int64) error {
	m, err := r.FindByID(ctx, vendorID)
	if err != nil {
		return err
	}
	return m.Partition.CreditWallet(ctx, m.Vendor.CustomUserID, amount)
}

// OnlineVendorIDs returns the ids of online vendors in the partition the
// category label resolves to. A fallback resolution is logged: an
// unconfigured category silently dispatching to the default partition is a
// diagnosable event, not business as usual.
func (r *Resolver) OnlineVendorIDs(ctx context.Context, label string) ([]string, error) {
	handle, fellBack := r.reg.Resolve(label, category.KindVendor)
	if fellBack {
		r.log.Warn().Str("category", label).Str("partition", handle).Msg("unknown vendor category, using default partition")
	}
	p, ok := r.dir.Partition(handle)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.ListOnlineIDs(ctx)
}

// AllVendors concatenates every partition's vendors in partition order.
func (r *Resolver) AllVendors(ctx context.Context) ([]*entity.Vendor, error) {
	var all []*entity.Vendor
	for _, p := range r.dir.Partitions() {
		vendors, err := p.List(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, vendors...)
	}
	return all, nil
}

// CountVerified sums verified vendors across all partitions.
func (r *Resolver) CountVerified(ctx context.Context) (int64, error) {
	var total int64
	for _, p := range r.dir.Partitions() {
		n, err := p.CountVerified(ctx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
