package booking_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gharkeseva/gharseva-api/internal/application/booking"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeBookingRepo struct {
	mu       sync.Mutex
	byID     map[string]*entity.Booking
	byCustom map[string]string // custom id -> id
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[string]*entity.Booking), byCustom: make(map[string]string)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.byID[b.ID] = &cp
	r.byCustom[b.CustomBookingID] = b.ID
	return nil
}

func (r *fakeBookingRepo) GetByCustomID(_ context.Context, customID string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byCustom[customID]
	if !ok {
		return nil, nil
	}
	cp := *r.byID[id]
	return &cp, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[b.ID]
	if !ok {
		return domain.ErrBookingNotFound
	}
	settled := stored.Settled // settled moves only through the claim calls
	cp := *b
	cp.Settled = settled
	r.byID[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) ClaimSettlement(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return false, domain.ErrBookingNotFound
	}
	if b.Settled {
		return false, nil
	}
	b.Settled = true
	return true, nil
}

func (r *fakeBookingRepo) ReleaseSettlement(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.byID[id]; ok {
		b.Settled = false
	}
	return nil
}

func (r *fakeBookingRepo) ListForVendor(_ context.Context, vendorID string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.byID {
		assigned := b.AssignedVendorID == vendorID && b.Status != entity.StatusCompleted
		pool := b.AssignedVendorID == "" && b.Status == entity.StatusPending
		if assigned || pool {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListCompletedForVendor(_ context.Context, vendorID string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.byID {
		if b.AssignedVendorID == vendorID && b.Status == entity.StatusCompleted {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListForCustomer(_ context.Context, customerID string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.byID {
		if b.CustomerUserID == customerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListRecent(_ context.Context, limit int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.byID {
		if len(out) == limit {
			break
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookingRepo) CompletedRevenue(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, b := range r.byID {
		if b.Status == entity.StatusCompleted {
			total += b.TotalPrice
		}
	}
	return total, nil
}

func (r *fakeBookingRepo) CountActive(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.byID {
		if b.Status != entity.StatusCancelled {
			n++
		}
	}
	return n, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer // keyed by CustomUserID
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error { return nil }
func (r *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) GetByCustomID(_ context.Context, id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.customers)), nil
}

type fakeSeq struct {
	mu sync.Mutex
	n  int64
}

func (s *fakeSeq) Next(_ context.Context, scope string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return s.n, nil
}

type fakeSettler struct {
	mu      sync.Mutex
	credits []int64
	failure error
}

func (s *fakeSettler) CreditWallet(_ context.Context, vendorID string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	s.credits = append(s.credits, amount)
	return nil
}

func (s *fakeSettler) creditCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.credits)
}

type fakeNotifier struct {
	mu            sync.Mutex
	created       int
	statusChanged int
}

func (n *fakeNotifier) BookingCreated(_ context.Context, _ *entity.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created++
}

func (n *fakeNotifier) BookingStatusChanged(_ context.Context, _ *entity.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statusChanged++
}

type fakeMailer struct {
	sent    chan string // recipient emails
	failure error
}

func (m *fakeMailer) SendBookingConfirmation(_ context.Context, to string, _ *entity.Booking) error {
	if m.sent != nil {
		m.sent <- to
	}
	return m.failure
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *booking.UseCase
	repo     *fakeBookingRepo
	settler  *fakeSettler
	notifier *fakeNotifier
}

func newFixture(t *testing.T, mailer booking.Mailer) *fixture {
	t.Helper()
	repo := newFakeBookingRepo()
	settler := &fakeSettler{}
	notifier := &fakeNotifier{}
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"CUST-1001": {CustomUserID: "CUST-1001", Email: "jane@example.com"},
	}}
	uc := booking.NewUseCase(repo, customers, &fakeSeq{}, settler, notifier, mailer, logger.Nop())
	return &fixture{uc: uc, repo: repo, settler: settler, notifier: notifier}
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerUserID:  "CUST-1001",
		VendorCategory:  "Plumbing",
		ServiceCategory: "Repair",
		PackageName:     "Leak Fix",
		TotalPrice:      499,
		BookingDate:     "2026-09-15",
		BookingTime:     "10:00",
		ServiceAddress:  "12 MG Road",
	}
}

func strptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Defaults(t *testing.T) {
	f := newFixture(t, nil)

	b, err := f.uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(b.CustomBookingID, "GS-"), "display id must carry the GS prefix")
	assert.Equal(t, entity.StatusPending, b.Status)
	assert.Empty(t, b.AssignedVendorID, "new bookings start unassigned")
	assert.Equal(t, entity.PaymentMethodCOD, b.PaymentMethod, "payment method defaults to COD")
	assert.Equal(t, entity.PaymentStatusPending, b.PaymentStatus)
	assert.False(t, b.Settled)
	assert.Equal(t, 1, f.notifier.created, "a dispatch alert must go out")
}

func TestCreate_KeepsExplicitPaymentFields(t *testing.T) {
	f := newFixture(t, nil)
	in := validCreateRequest()
	in.PaymentMethod = entity.PaymentMethodRazorpay
	in.PaymentStatus = entity.PaymentStatusPaid
	in.TransactionID = "pay_abc123"

	b, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentMethodRazorpay, b.PaymentMethod)
	assert.Equal(t, entity.PaymentStatusPaid, b.PaymentStatus)
	assert.Equal(t, "pay_abc123", b.TransactionID)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t, nil)

	missing := validCreateRequest()
	missing.ServiceAddress = ""
	_, err := f.uc.Create(context.Background(), missing)
	assert.ErrorIs(t, err, domain.ErrValidation)

	free := validCreateRequest()
	free.TotalPrice = 0
	_, err = f.uc.Create(context.Background(), free)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Equal(t, 0, f.notifier.created, "rejected bookings must not alert anyone")
}

func TestCreate_SendsConfirmationEmail(t *testing.T) {
	mailer := &fakeMailer{sent: make(chan string, 1)}
	f := newFixture(t, mailer)

	_, err := f.uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	select {
	case to := <-mailer.sent:
		assert.Equal(t, "jane@example.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was never sent")
	}
}

func TestCreate_EmailFailureDoesNotAffectBooking(t *testing.T) {
	mailer := &fakeMailer{sent: make(chan string, 1), failure: errors.New("smtp down")}
	f := newFixture(t, mailer)

	b, err := f.uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err, "a failed email must never roll the booking back")

	<-mailer.sent
	stored, err := f.repo.GetByCustomID(context.Background(), b.CustomBookingID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateByVendor
// ──────────────────────────────────────────────────────────────────────────────

func createBooking(t *testing.T, f *fixture) *entity.Booking {
	t.Helper()
	b, err := f.uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	return b
}

func TestUpdateByVendor_ClaimAndProgress(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)

	updated, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status:           strptr(entity.StatusInProgress),
		AssignedVendorID: strptr("VND-1001"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, updated.Status)
	assert.Equal(t, "VND-1001", updated.AssignedVendorID)
	assert.Equal(t, 1, f.notifier.statusChanged, "the customer must be notified of the change")
}

func TestUpdateByVendor_UnknownBooking(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.UpdateByVendor(context.Background(), "GS-9999", dto.VendorJobPatch{
		Status: strptr(entity.StatusInProgress),
	})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestUpdateByVendor_InvalidStatusValue(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)

	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr("Almost Done"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateByVendor_IllegalTransition(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)

	// Pending -> Completed skips In Progress.
	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusCompleted),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateByVendor_TerminalStateIsFinal(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)

	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusCancelled),
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusInProgress),
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "cancelled bookings cannot be revived")
}

func TestUpdateByVendor_SameStatusIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)

	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusPending),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.notifier.statusChanged, "an unchanged status must not notify the customer")
}

// ──────────────────────────────────────────────────────────────────────────────
// Settlement
// ──────────────────────────────────────────────────────────────────────────────

func progressToInProgress(t *testing.T, f *fixture, b *entity.Booking) {
	t.Helper()
	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status:           strptr(entity.StatusInProgress),
		AssignedVendorID: strptr("VND-1001"),
	})
	require.NoError(t, err)
}

func TestCompletion_CreditsWalletOnce(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)
	progressToInProgress(t, f, b)

	updated, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusCompleted),
	})
	require.NoError(t, err)
	assert.True(t, updated.Settled)
	require.Equal(t, 1, f.settler.creditCount())
	assert.Equal(t, int64(499), f.settler.credits[0], "the credit equals the booking price")
}

func TestCompletion_UnassignedDoesNotCredit(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)

	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusInProgress),
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.settler.creditCount())
}

// Two completion requests racing on the same booking must settle exactly
// once: the settled flag is claimed atomically before the credit.
func TestCompletion_ConcurrentRetriesCreditOnce(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)
	progressToInProgress(t, f, b)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
				Status: strptr(entity.StatusCompleted),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, f.settler.creditCount(), "a retried completion must never pay the vendor twice")
}

func TestCompletion_CreditFailureReleasesClaim(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)
	progressToInProgress(t, f, b)

	f.settler.failure = errors.New("partition unavailable")
	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusCompleted),
	})
	require.Error(t, err)

	// The claim was released, so a retry settles normally.
	f.settler.failure = nil
	_, err = f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.settler.creditCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Listings
// ──────────────────────────────────────────────────────────────────────────────

func TestListForVendor_PoolIncludesUnassignedPending(t *testing.T) {
	f := newFixture(t, nil)
	createBooking(t, f) // unassigned, pending
	assigned := createBooking(t, f)
	progressToInProgress(t, f, assigned)

	pool, err := f.uc.ListForVendor(context.Background(), "VND-1001")
	require.NoError(t, err)
	assert.Len(t, pool, 2, "pool holds the assigned job plus the open pending one")

	otherPool, err := f.uc.ListForVendor(context.Background(), "VND-2002")
	require.NoError(t, err)
	assert.Len(t, otherPool, 1, "other vendors still see the open pending booking")
}

func TestHistory_OnlyCompleted(t *testing.T) {
	f := newFixture(t, nil)
	b := createBooking(t, f)
	progressToInProgress(t, f, b)
	_, err := f.uc.UpdateByVendor(context.Background(), b.CustomBookingID, dto.VendorJobPatch{
		Status: strptr(entity.StatusCompleted),
	})
	require.NoError(t, err)
	createBooking(t, f) // still pending, must not show up

	history, err := f.uc.History(context.Background(), "VND-1001")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.StatusCompleted, history[0].Status)
}

func TestListForCustomer(t *testing.T) {
	f := newFixture(t, nil)
	createBooking(t, f)
	createBooking(t, f)

	list, err := f.uc.ListForCustomer(context.Background(), "CUST-1001")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
