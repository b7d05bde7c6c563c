package directory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gharkeseva/gharseva-api/internal/application/directory"
	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// fakePartition is an in-memory vendor partition keyed by CustomUserID.
type fakePartition struct {
	mu      sync.Mutex
	handle  string
	vendors map[string]*entity.Vendor
	failure error // injected into every lookup when set
}

func newFakePartition(handle string, vendors ...*entity.Vendor) *fakePartition {
	p := &fakePartition{handle: handle, vendors: make(map[string]*entity.Vendor)}
	for _, v := range vendors {
		p.vendors[v.CustomUserID] = v
	}
	return p
}

func (p *fakePartition) Handle() string { return p.handle }

func (p *fakePartition) Create(_ context.Context, v *entity.Vendor) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vendors[v.CustomUserID] = v
	return nil
}

func (p *fakePartition) GetByEmail(_ context.Context, email string) (*entity.Vendor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failure != nil {
		return nil, p.failure
	}
	for _, v := range p.vendors {
		if v.Email == email {
			return v, nil
		}
	}
	return nil, nil
}

func (p *fakePartition) GetByCustomID(_ context.Context, id string) (*entity.Vendor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failure != nil {
		return nil, p.failure
	}
	return p.vendors[id], nil
}

func (p *fakePartition) GetByEmailOrAadhar(ctx context.Context, email, aadhar string) (*entity.Vendor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, v := range p.vendors {
		if v.Email == email || v.AadharNumber == aadhar {
			return v, nil
		}
	}
	return nil, nil
}

func (p *fakePartition) SetOnline(_ context.Context, id string, online bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.vendors[id]
	if !ok {
		return domain.ErrVendorNotFound
	}
	v.Online = online
	return nil
}

func (p *fakePartition) CreditWallet(_ context.Context, id string, amount int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.vendors[id]
	if !ok {
		return domain.ErrVendorNotFound
	}
	v.WalletBalance += amount
	return nil
}

func (p *fakePartition) List(_ context.Context) ([]*entity.Vendor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*entity.Vendor, 0, len(p.vendors))
	for _, v := range p.vendors {
		out = append(out, v)
	}
	return out, nil
}

func (p *fakePartition) ListOnlineIDs(_ context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var ids []string
	for id, v := range p.vendors {
		if v.Online {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (p *fakePartition) CountVerified(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var n int64
	for _, v := range p.vendors {
		if v.Verified {
			n++
		}
	}
	return n, nil
}

// fakeDirectory serves a fixed set of fake partitions in order.
type fakeDirectory struct {
	order []string
	parts map[string]*fakePartition
}

func newFakeDirectory(parts ...*fakePartition) *fakeDirectory {
	d := &fakeDirectory{parts: make(map[string]*fakePartition)}
	for _, p := range parts {
		d.order = append(d.order, p.handle)
		d.parts[p.handle] = p
	}
	return d
}

func (d *fakeDirectory) Partition(handle string) (repository.VendorPartition, bool) {
	p, ok := d.parts[handle]
	return p, ok
}

func (d *fakeDirectory) Partitions() []repository.VendorPartition {
	out := make([]repository.VendorPartition, 0, len(d.order))
	for _, h := range d.order {
		out = append(out, d.parts[h])
	}
	return out
}

func vendor(id, email, cat string) *entity.Vendor {
	return &entity.Vendor{CustomUserID: id, Email: email, Category: cat}
}

func newResolver(dir *fakeDirectory) *directory.Resolver {
	return directory.NewResolver(dir, category.NewRegistry(), logger.Nop())
}

func TestFindByEmail_LocatesVendorAcrossPartitions(t *testing.T) {
	target := vendor("VND-1003", "pipes@example.com", "Plumbing")
	dir := newFakeDirectory(
		newFakePartition(category.AC, vendor("VND-1001", "cool@example.com", "AC")),
		newFakePartition(category.Plumbing, target),
		newFakePartition(category.Electrician),
	)
	r := newResolver(dir)

	m, err := r.FindByEmail(context.Background(), "pipes@example.com")
	require.NoError(t, err)
	assert.Equal(t, target, m.Vendor)
	assert.Equal(t, category.Plumbing, m.Partition.Handle(), "the match must carry the partition it was found in")
}

func TestFindByEmail_NoMatchAnywhere(t *testing.T) {
	dir := newFakeDirectory(
		newFakePartition(category.AC),
		newFakePartition(category.Plumbing),
	)
	r := newResolver(dir)

	m, err := r.FindByEmail(context.Background(), "ghost@example.com")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, domain.ErrVendorNotFound)
}

func TestFindByEmail_PartitionFailurePropagates(t *testing.T) {
	broken := newFakePartition(category.Plumbing)
	broken.failure = errors.New("connection refused")
	dir := newFakeDirectory(newFakePartition(category.AC), broken)
	r := newResolver(dir)

	_, err := r.FindByEmail(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrVendorNotFound)
}

func TestFindByID(t *testing.T) {
	target := vendor("VND-1005", "sparks@example.com", "Electrician")
	dir := newFakeDirectory(
		newFakePartition(category.AC),
		newFakePartition(category.Electrician, target),
	)
	r := newResolver(dir)

	m, err := r.FindByID(context.Background(), "VND-1005")
	require.NoError(t, err)
	assert.Equal(t, category.Electrician, m.Partition.Handle())
}

func TestCreditWallet_RoutesThroughOwningPartition(t *testing.T) {
	target := vendor("VND-1002", "maid@example.com", "HouseMaid")
	other := vendor("VND-1009", "other@example.com", "AC")
	dir := newFakeDirectory(
		newFakePartition(category.AC, other),
		newFakePartition(category.HouseMaid, target),
	)
	r := newResolver(dir)

	require.NoError(t, r.CreditWallet(context.Background(), "VND-1002", 750))
	assert.Equal(t, int64(750), target.WalletBalance)
	assert.Equal(t, int64(0), other.WalletBalance)
}

func TestCreditWallet_UnknownVendor(t *testing.T) {
	dir := newFakeDirectory(newFakePartition(category.AC))
	r := newResolver(dir)

	err := r.CreditWallet(context.Background(), "VND-9999", 100)
	assert.ErrorIs(t, err, domain.ErrVendorNotFound)
}

func TestSetOnline_PersistsThroughOwningPartition(t *testing.T) {
	target := vendor("VND-1004", "paint@example.com", "Painting")
	dir := newFakeDirectory(
		newFakePartition(category.AC),
		newFakePartition(category.Painting, target),
	)
	r := newResolver(dir)

	require.NoError(t, r.SetOnline(context.Background(), "VND-1004", true))
	assert.True(t, target.Online)
}

func TestOnlineVendorIDs_KnownCategory(t *testing.T) {
	online := vendor("VND-1001", "a@example.com", "Plumbing")
	online.Online = true
	offline := vendor("VND-1002", "b@example.com", "Plumbing")
	dir := newFakeDirectory(
		newFakePartition(category.AC),
		newFakePartition(category.Plumbing, online, offline),
	)
	r := newResolver(dir)

	ids, err := r.OnlineVendorIDs(context.Background(), "Plumbing")
	require.NoError(t, err)
	assert.Equal(t, []string{"VND-1001"}, ids)
}

// An unknown category label resolves to the default partition rather than
// failing, so a dispatch for a misconfigured category still alerts someone.
func TestOnlineVendorIDs_UnknownCategoryFallsBack(t *testing.T) {
	fallback := vendor("VND-1001", "a@example.com", "AC")
	fallback.Online = true
	dir := newFakeDirectory(newFakePartition(category.AC, fallback))
	r := newResolver(dir)

	ids, err := r.OnlineVendorIDs(context.Background(), "Gardening")
	require.NoError(t, err)
	assert.Equal(t, []string{"VND-1001"}, ids)
}

func TestCountVerified_SumsPartitions(t *testing.T) {
	v1 := vendor("VND-1001", "a@example.com", "AC")
	v1.Verified = true
	v2 := vendor("VND-1002", "b@example.com", "Plumbing")
	v2.Verified = true
	v3 := vendor("VND-1003", "c@example.com", "Plumbing")
	dir := newFakeDirectory(
		newFakePartition(category.AC, v1),
		newFakePartition(category.Plumbing, v2, v3),
	)
	r := newResolver(dir)

	n, err := r.CountVerified(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAllVendors_ConcatenatesInPartitionOrder(t *testing.T) {
	a := vendor("VND-1001", "a@example.com", "AC")
	b := vendor("VND-1002", "b@example.com", "Plumbing")
	dir := newFakeDirectory(
		newFakePartition(category.AC, a),
		newFakePartition(category.Plumbing, b),
	)
	r := newResolver(dir)

	all, err := r.AllVendors(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
