package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

const emailTimeout = 10 * time.Second

// UseCase owns every booking write: creation, vendor updates and the wallet
// settlement on completion.
type UseCase struct {
	bookings  repository.BookingRepository
	customers repository.CustomerRepository
	seq       repository.SequenceRepository
	settler   Settler
	notifier  Notifier
	mailer    Mailer // nil when SMTP is not configured
	log       *logger.Logger
}

// NewUseCase builds the booking usecase.
func NewUseCase(
	bookings repository.BookingRepository,
	customers repository.CustomerRepository,
	seq repository.SequenceRepository,
	settler Settler,
	notifier Notifier,
	mailer Mailer,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		bookings:  bookings,
		customers: customers,
		seq:       seq,
		settler:   settler,
		notifier:  notifier,
		mailer:    mailer,
		log:       log,
	}
}

// Create registers a new booking in Pending with no assigned vendor, sends
// the confirmation email fire-and-forget, and fans a dispatch alert out to
// online vendors of the category. Email failure never rolls the booking
// back.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateBookingRequest) (*entity.Booking, error) {
	if in.CustomerUserID == "" || in.ServiceCategory == "" || in.PackageName == "" ||
		in.BookingDate == "" || in.BookingTime == "" || in.ServiceAddress == "" {
		return nil, domain.ErrValidation
	}
	if in.TotalPrice <= 0 {
		return nil, domain.ErrValidation
	}

	n, err := uc.seq.Next(ctx, "booking")
	if err != nil {
		return nil, fmt.Errorf("allocate booking id: %w", err)
	}

	method := in.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCOD
	}
	payStatus := in.PaymentStatus
	if payStatus == "" {
		payStatus = entity.PaymentStatusPending
	}

	now := time.Now()
	b := &entity.Booking{
		ID:              uuid.New().String(),
		CustomBookingID: domain.DisplayID("GS", n),
		CustomerUserID:  in.CustomerUserID,
		VendorCategory:  in.VendorCategory,
		ServiceCategory: in.ServiceCategory,
		PackageName:     in.PackageName,
		TotalPrice:      in.TotalPrice,
		BookingDate:     in.BookingDate,
		BookingTime:     in.BookingTime,
		ServiceAddress:  in.ServiceAddress,
		PaymentMethod:   method,
		TransactionID:   in.TransactionID,
		PaymentStatus:   payStatus,
		Status:          entity.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if uc.mailer != nil {
		go uc.sendConfirmation(b)
	}
	uc.notifier.BookingCreated(ctx, b)

	return b, nil
}

// sendConfirmation resolves the owning customer and mails the confirmation
// on its own bounded context, detached from the request.
func (uc *UseCase) sendConfirmation(b *entity.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
	defer cancel()

	customer, err := uc.customers.GetByCustomID(ctx, b.CustomerUserID)
	if err != nil || customer == nil {
		uc.log.Warn().Err(err).Str("customer", b.CustomerUserID).Msg("confirmation email skipped, customer lookup failed")
		return
	}
	if err := uc.mailer.SendBookingConfirmation(ctx, customer.Email, b); err != nil {
		uc.log.Warn().Err(err).Str("booking", b.CustomBookingID).Msg("confirmation email failed")
	}
}

// UpdateByVendor applies a vendor-supplied patch to the booking identified
// by its public id. Transitions out of Completed or Cancelled are rejected.
// A transition into Completed with an assigned vendor settles the wallet
// exactly once: the settled flag is claimed atomically before the credit, so
// a concurrent retry finds it taken and credits nothing.
func (uc *UseCase) UpdateByVendor(ctx context.Context, bookingID string, patch dto.VendorJobPatch) (*entity.Booking, error) {
	b, err := uc.bookings.GetByCustomID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrBookingNotFound
	}

	statusChanged := false
	if patch.Status != nil {
		to := *patch.Status
		if !entity.ValidStatus(to) {
			return nil, domain.ErrValidation
		}
		if !entity.CanTransition(b.Status, to) {
			return nil, domain.ErrConflict
		}
		statusChanged = b.Status != to
		b.Status = to
	}
	if patch.AssignedVendorID != nil {
		b.AssignedVendorID = *patch.AssignedVendorID
	}
	if patch.PaymentStatus != nil {
		b.PaymentStatus = *patch.PaymentStatus
	}
	if patch.TransactionID != nil {
		b.TransactionID = *patch.TransactionID
	}
	b.UpdatedAt = time.Now()

	if err := uc.bookings.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if b.Status == entity.StatusCompleted && b.AssignedVendorID != "" {
		if err := uc.settle(ctx, b); err != nil {
			return nil, err
		}
	}

	if statusChanged {
		uc.notifier.BookingStatusChanged(ctx, b)
	}
	return b, nil
}

// settle credits the assigned vendor's wallet by the booking price, guarded
// by the settled flag. Claiming and crediting are separate statements; if
// the credit fails the claim is released so a retry can settle again.
func (uc *UseCase) settle(ctx context.Context, b *entity.Booking) error {
	claimed, err := uc.bookings.ClaimSettlement(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("claim settlement: %w", err)
	}
	if !claimed {
		return nil // already settled by an earlier completion
	}
	if err := uc.settler.CreditWallet(ctx, b.AssignedVendorID, b.TotalPrice); err != nil {
		if relErr := uc.bookings.ReleaseSettlement(ctx, b.ID); relErr != nil {
			uc.log.Error().Err(relErr).Str("booking", b.CustomBookingID).Msg("settlement release failed, booking stuck settled without credit")
		}
		return fmt.Errorf("credit wallet of %s: %w", b.AssignedVendorID, err)
	}
	b.Settled = true
	return nil
}

// ListForVendor returns the vendor's job pool: bookings assigned to it and
// not yet Completed, plus every unassigned Pending booking. The pool is not
// filtered by the vendor's own category; cross-category visibility is the
// policy the product ships with.
func (uc *UseCase) ListForVendor(ctx context.Context, vendorID string) ([]*entity.Booking, error) {
	return uc.bookings.ListForVendor(ctx, vendorID)
}

// History returns the vendor's completed work, newest first.
func (uc *UseCase) History(ctx context.Context, vendorID string) ([]*entity.Booking, error) {
	return uc.bookings.ListCompletedForVendor(ctx, vendorID)
}

// ListForCustomer returns every booking owned by the customer, newest first.
func (uc *UseCase) ListForCustomer(ctx context.Context, customerUserID string) ([]*entity.Booking, error) {
	return uc.bookings.ListForCustomer(ctx, customerUserID)
}

// ToResponse maps a booking entity to its public view.
func ToResponse(b *entity.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		BookingID:        b.CustomBookingID,
		CustomerUserID:   b.CustomerUserID,
		AssignedVendorID: b.AssignedVendorID,
		VendorCategory:   b.VendorCategory,
		ServiceCategory:  b.ServiceCategory,
		PackageName:      b.PackageName,
		TotalPrice:       b.TotalPrice,
		BookingDate:      b.BookingDate,
		BookingTime:      b.BookingTime,
		ServiceAddress:   b.ServiceAddress,
		PaymentMethod:    b.PaymentMethod,
		TransactionID:    b.TransactionID,
		PaymentStatus:    b.PaymentStatus,
		Status:           b.Status,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// ToResponses maps a booking list.
func ToResponses(list []*entity.Booking) []dto.BookingResponse {
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, ToResponse(b))
	}
	return out
}
