package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

const bookingColumns = `id, custom_booking_id, customer_user_id, assigned_vendor_id,
		vendor_category, service_category, package_name, total_price,
		booking_date, booking_time, service_address,
		payment_method, transaction_id, payment_status,
		booking_status, settled, created_at, updated_at`

// BookingRepo implements the BookingRepository port over PostgreSQL.
type BookingRepo struct {
	pool *pgxpool.Pool
}

// NewBookingRepository builds the booking persistence adapter.
func NewBookingRepository(pool *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{pool: pool}
}

// Create persists a new booking.
func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	query := fmt.Sprintf(`
		INSERT INTO bookings (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		bookingColumns)
	_, err := r.pool.Exec(ctx, query,
		b.ID, b.CustomBookingID, b.CustomerUserID, b.AssignedVendorID,
		b.VendorCategory, b.ServiceCategory, b.PackageName, b.TotalPrice,
		b.BookingDate, b.BookingTime, b.ServiceAddress,
		b.PaymentMethod, b.TransactionID, b.PaymentStatus,
		b.Status, b.Settled, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// GetByCustomID fetches a booking by its public id; (nil, nil) on no match.
func (r *BookingRepo) GetByCustomID(ctx context.Context, customBookingID string) (*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE custom_booking_id = $1`, bookingColumns)
	var b entity.Booking
	err := r.pool.QueryRow(ctx, query, customBookingID).Scan(scanTargets(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// Update persists the mutable booking fields. The settled flag is excluded
// on purpose; it moves only through ClaimSettlement/ReleaseSettlement.
func (r *BookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	query := `
		UPDATE bookings SET
			assigned_vendor_id = $2, payment_method = $3, transaction_id = $4,
			payment_status = $5, booking_status = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.AssignedVendorID, b.PaymentMethod, b.TransactionID,
		b.PaymentStatus, b.Status, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

// ClaimSettlement flips the settled flag if and only if it was unset,
// reporting whether this caller won. Concurrent completion retries race on
// this single statement and exactly one of them claims.
func (r *BookingRepo) ClaimSettlement(ctx context.Context, bookingID string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings SET settled = TRUE WHERE id = $1 AND NOT settled`, bookingID)
	if err != nil {
		return false, fmt.Errorf("claim settlement: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseSettlement undoes a claim after a failed wallet credit.
func (r *BookingRepo) ReleaseSettlement(ctx context.Context, bookingID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE bookings SET settled = FALSE WHERE id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("release settlement: %w", err)
	}
	return nil
}

// ListForVendor returns the vendor's job pool, newest first. The unassigned
// half is intentionally not filtered by category.
func (r *BookingRepo) ListForVendor(ctx context.Context, vendorID string) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE (assigned_vendor_id = $1 AND booking_status <> 'Completed')
		   OR (assigned_vendor_id = '' AND booking_status = 'Pending')
		ORDER BY created_at DESC`, bookingColumns)
	return r.list(ctx, query, vendorID)
}

// ListCompletedForVendor returns the vendor's work history, most recently
// updated first.
func (r *BookingRepo) ListCompletedForVendor(ctx context.Context, vendorID string) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE assigned_vendor_id = $1 AND booking_status = 'Completed'
		ORDER BY updated_at DESC`, bookingColumns)
	return r.list(ctx, query, vendorID)
}

// ListForCustomer returns every booking owned by the customer, newest first.
func (r *BookingRepo) ListForCustomer(ctx context.Context, customerUserID string) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE customer_user_id = $1
		ORDER BY created_at DESC`, bookingColumns)
	return r.list(ctx, query, customerUserID)
}

// ListRecent returns the newest bookings across all customers.
func (r *BookingRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY created_at DESC LIMIT $1`, bookingColumns)
	return r.list(ctx, query, limit)
}

// CompletedRevenue sums the price of all Completed bookings.
func (r *BookingRepo) CompletedRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE booking_status = 'Completed'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum completed revenue: %w", err)
	}
	return total, nil
}

// CountActive counts bookings not in Cancelled.
func (r *BookingRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE booking_status <> 'Cancelled'`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active bookings: %w", err)
	}
	return n, nil
}

func (r *BookingRepo) list(ctx context.Context, query string, args ...interface{}) ([]*entity.Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Booking
	for rows.Next() {
		var b entity.Booking
		if err := rows.Scan(scanTargets(&b)...); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func scanTargets(b *entity.Booking) []interface{} {
	return []interface{}{
		&b.ID, &b.CustomBookingID, &b.CustomerUserID, &b.AssignedVendorID,
		&b.VendorCategory, &b.ServiceCategory, &b.PackageName, &b.TotalPrice,
		&b.BookingDate, &b.BookingTime, &b.ServiceAddress,
		&b.PaymentMethod, &b.TransactionID, &b.PaymentStatus,
		&b.Status, &b.Settled, &b.CreatedAt, &b.UpdatedAt,
	}
}
