package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// UseCase service-package catalog: admin creation, customer listing.
type UseCase struct {
	catalog repository.ServiceCatalog
	seq     repository.SequenceRepository
	reg     *category.Registry
	log     *logger.Logger
}

// NewUseCase builds the catalog usecase.
func NewUseCase(catalog repository.ServiceCatalog, seq repository.SequenceRepository, reg *category.Registry, log *logger.Logger) *UseCase {
	return &UseCase{catalog: catalog, seq: seq, reg: reg, log: log}
}

// AddPackage creates a service package in the partition its category
// resolves to.
func (uc *UseCase) AddPackage(ctx context.Context, in dto.CreatePackageRequest) (*entity.ServicePackage, error) {
	if in.ServiceCategory == "" || in.PackageName == "" || in.EstimatedTime == "" || in.PriceAmount <= 0 {
		return nil, domain.ErrValidation
	}
	handle, fellBack := uc.reg.Resolve(in.ServiceCategory, category.KindService)
	if fellBack {
		uc.log.Warn().Str("category", in.ServiceCategory).Str("partition", handle).Msg("unknown service category, using default partition")
	}
	part, ok := uc.catalog.Partition(handle)
	if !ok {
		return nil, domain.ErrNotFound
	}
	n, err := uc.seq.Next(ctx, "service")
	if err != nil {
		return nil, fmt.Errorf("allocate service id: %w", err)
	}
	now := time.Now()
	p := &entity.ServicePackage{
		ID:              uuid.New().String(),
		CustomServiceID: domain.DisplayID("SRV", n),
		ServiceCategory: in.ServiceCategory,
		PackageName:     in.PackageName,
		PackageImage:    in.PackageImage,
		Description:     in.Description,
		PriceAmount:     in.PriceAmount,
		EstimatedTime:   in.EstimatedTime,
		Inclusions:      in.Inclusions,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := part.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByCategory returns active packages of one category, newest first. An
// empty category yields an empty list rather than the whole catalog.
func (uc *UseCase) ListByCategory(ctx context.Context, label string) ([]dto.PackageResponse, error) {
	if label == "" {
		return []dto.PackageResponse{}, nil
	}
	handle, fellBack := uc.reg.Resolve(label, category.KindService)
	if fellBack {
		uc.log.Warn().Str("category", label).Str("partition", handle).Msg("unknown service category on listing, using default partition")
	}
	part, ok := uc.catalog.Partition(handle)
	if !ok {
		return nil, domain.ErrNotFound
	}
	list, err := part.ListActiveByCategory(ctx, label)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PackageResponse{
			ServiceID:       p.CustomServiceID,
			ServiceCategory: p.ServiceCategory,
			PackageName:     p.PackageName,
			PackageImage:    p.PackageImage,
			Description:     p.Description,
			PriceAmount:     p.PriceAmount,
			EstimatedTime:   p.EstimatedTime,
			Inclusions:      p.Inclusions,
			Active:          p.Active,
		})
	}
	return out, nil
}
