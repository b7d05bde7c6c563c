package dashboard

import (
	"context"

	"github.com/gharkeseva/gharseva-api/internal/application/booking"
	"github.com/gharkeseva/gharseva-api/internal/application/directory"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
)

const recentBookingsLimit = 10

// UseCase admin dashboard aggregates.
type UseCase struct {
	bookings  repository.BookingRepository
	customers repository.CustomerRepository
	resolver  *directory.Resolver
}

// NewUseCase builds the dashboard usecase.
func NewUseCase(bookings repository.BookingRepository, customers repository.CustomerRepository, resolver *directory.Resolver) *UseCase {
	return &UseCase{bookings: bookings, customers: customers, resolver: resolver}
}

// Stats computes the dashboard aggregate: completed revenue, non-cancelled
// booking count, customer count, verified vendors across all partitions and
// the ten most recent bookings.
func (uc *UseCase) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	revenue, err := uc.bookings.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	active, err := uc.bookings.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	verified, err := uc.resolver.CountVerified(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.bookings.ListRecent(ctx, recentBookingsLimit)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardStats{
		TotalRevenue:       revenue,
		ActiveBookings:     active,
		TotalCustomers:     customers,
		VerifiedVendors:    verified,
		RecentBookingsList: booking.ToResponses(recent),
	}, nil
}
