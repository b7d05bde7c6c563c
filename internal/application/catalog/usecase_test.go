package catalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gharkeseva/gharseva-api/internal/application/catalog"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

type memServicePartition struct {
	mu       sync.Mutex
	handle   string
	packages []*entity.ServicePackage
}

func (p *memServicePartition) Handle() string { return p.handle }

func (p *memServicePartition) Create(_ context.Context, pkg *entity.ServicePackage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.packages = append(p.packages, pkg)
	return nil
}

func (p *memServicePartition) ListActiveByCategory(_ context.Context, label string) ([]*entity.ServicePackage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []*entity.ServicePackage
	for _, pkg := range p.packages {
		if pkg.Active && pkg.ServiceCategory == label {
			out = append(out, pkg)
		}
	}
	return out, nil
}

type memServiceCatalog struct {
	order []string
	parts map[string]*memServicePartition
}

func newMemServiceCatalog(reg *category.Registry) *memServiceCatalog {
	c := &memServiceCatalog{parts: make(map[string]*memServicePartition)}
	for _, h := range reg.Handles() {
		c.order = append(c.order, h)
		c.parts[h] = &memServicePartition{handle: h}
	}
	return c
}

func (c *memServiceCatalog) Partition(handle string) (repository.ServicePartition, bool) {
	p, ok := c.parts[handle]
	return p, ok
}

func (c *memServiceCatalog) Partitions() []repository.ServicePartition {
	out := make([]repository.ServicePartition, 0, len(c.order))
	for _, h := range c.order {
		out = append(out, c.parts[h])
	}
	return out
}

type fakeSeq struct {
	mu sync.Mutex
	n  int64
}

func (s *fakeSeq) Next(_ context.Context, _ string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n, nil
}

func newFixture(t *testing.T) (*catalog.UseCase, *memServiceCatalog) {
	t.Helper()
	reg := category.NewRegistry()
	cat := newMemServiceCatalog(reg)
	uc := catalog.NewUseCase(cat, &fakeSeq{}, reg, logger.Nop())
	return uc, cat
}

func packageRequest(label string) dto.CreatePackageRequest {
	return dto.CreatePackageRequest{
		ServiceCategory: label,
		PackageName:     "Deep Clean",
		Description:     "Full service",
		PriceAmount:     1299,
		EstimatedTime:   "90 min",
		Inclusions:      []string{"Gas refill", "Filter wash"},
	}
}

func TestAddPackage_LandsInResolvedPartition(t *testing.T) {
	uc, cat := newFixture(t)

	p, err := uc.AddPackage(context.Background(), packageRequest("Split AC"))
	require.NoError(t, err)
	assert.Equal(t, "SRV-1001", p.CustomServiceID)
	assert.True(t, p.Active, "new packages are active by default")
	assert.Len(t, cat.parts[category.AC].packages, 1)
}

func TestAddPackage_UnknownLabelFallsBack(t *testing.T) {
	uc, cat := newFixture(t)

	_, err := uc.AddPackage(context.Background(), packageRequest("Chimney Sweep"))
	require.NoError(t, err)
	assert.Len(t, cat.parts[category.AC].packages, 1, "unknown labels land in the default partition")
}

func TestAddPackage_Validation(t *testing.T) {
	uc, _ := newFixture(t)

	in := packageRequest("Split AC")
	in.PriceAmount = 0
	_, err := uc.AddPackage(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)

	in = packageRequest("Split AC")
	in.PackageName = ""
	_, err = uc.AddPackage(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListByCategory(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.AddPackage(context.Background(), packageRequest("Split AC"))
	require.NoError(t, err)
	_, err = uc.AddPackage(context.Background(), packageRequest("Window AC"))
	require.NoError(t, err)

	list, err := uc.ListByCategory(context.Background(), "Split AC")
	require.NoError(t, err)
	require.Len(t, list, 1, "the listing filters by label inside the shared partition")
	assert.Equal(t, "Split AC", list[0].ServiceCategory)
	assert.Equal(t, []string{"Gas refill", "Filter wash"}, list[0].Inclusions)
}

// An empty label yields an empty list, never the whole catalog.
func TestListByCategory_EmptyLabel(t *testing.T) {
	uc, _ := newFixture(t)
	_, err := uc.AddPackage(context.Background(), packageRequest("Split AC"))
	require.NoError(t, err)

	list, err := uc.ListByCategory(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListByCategory_InactiveExcluded(t *testing.T) {
	uc, cat := newFixture(t)
	p, err := uc.AddPackage(context.Background(), packageRequest("Split AC"))
	require.NoError(t, err)
	p.Active = false
	_ = cat // the fake shares the pointer, so the flag flip is visible

	list, err := uc.ListByCategory(context.Background(), "Split AC")
	require.NoError(t, err)
	assert.Empty(t, list)
}
