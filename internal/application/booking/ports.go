package booking

import (
	"context"

	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
)

// Notifier fans booking events out over the realtime bus. Delivery is
// best-effort; implementations log their own failures and never block the
// booking write path.
type Notifier interface {
	BookingCreated(ctx context.Context, b *entity.Booking)
	BookingStatusChanged(ctx context.Context, b *entity.Booking)
}

// Mailer is the transactional-email collaborator. Fire-and-forget from the
// booking usecase's perspective.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, to string, b *entity.Booking) error
}

// Settler credits a vendor's wallet on the partition the vendor lives in.
// Implemented by the identity resolver.
type Settler interface {
	CreditWallet(ctx context.Context, vendorID string, amount int64) error
}
