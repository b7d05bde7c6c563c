package repository

import (
	"context"

	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
)

// BookingRepository is the persistence port for bookings. All listing
// operations order by creation time descending unless noted.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByCustomID(ctx context.Context, customBookingID string) (*entity.Booking, error)
	Update(ctx context.Context, b *entity.Booking) error
	// ClaimSettlement atomically flips the settled flag and reports whether
	// this caller won the claim. A false return with nil error means the
	// booking was already settled.
	ClaimSettlement(ctx context.Context, bookingID string) (bool, error)
	// ReleaseSettlement undoes a claim whose wallet credit failed.
	ReleaseSettlement(ctx context.Context, bookingID string) error
	// ListForVendor returns the vendor's job pool: assigned and not yet
	// Completed, plus unassigned Pending bookings of any category.
	ListForVendor(ctx context.Context, vendorID string) ([]*entity.Booking, error)
	// ListCompletedForVendor returns the vendor's work history, most
	// recently updated first.
	ListCompletedForVendor(ctx context.Context, vendorID string) ([]*entity.Booking, error)
	ListForCustomer(ctx context.Context, customerUserID string) ([]*entity.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Booking, error)
	// CompletedRevenue sums the price of all Completed bookings.
	CompletedRevenue(ctx context.Context) (int64, error)
	// CountActive counts bookings not in Cancelled.
	CountActive(ctx context.Context) (int64, error)
}
