package entity

import "time"

// Booking statuses. Wire values match the public API ("In Progress" with a
// space).
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// Payment fields.
const (
	PaymentMethodCOD      = "COD"
	PaymentMethodRazorpay = "RAZORPAY"
	PaymentStatusPending  = "Pending"
	PaymentStatusPaid     = "Paid"
)

// allowedTransitions is the booking lifecycle: Pending -> In Progress ->
// Completed, with Cancelled reachable from any non-terminal state. Completed
// and Cancelled are terminal.
var allowedTransitions = map[string]map[string]bool{
	StatusPending: {
		StatusInProgress: true,
		StatusCancelled:  true,
	},
	StatusInProgress: {
		StatusCompleted: true,
		StatusCancelled: true,
	},
}

// ValidStatus reports whether s is one of the four booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another. Staying in the same status is allowed (idempotent updates).
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	return allowedTransitions[from][to]
}

// Terminal reports whether a status permits no further transitions.
func Terminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// Booking is the unit of dispatch. Writes go exclusively through the booking
// usecase; Settled guards the wallet credit so a completion retry can never
// pay the vendor twice.
type Booking struct {
	ID               string // opaque UUID
	CustomBookingID  string // display id, e.g. GS-1001
	CustomerUserID   string // owning customer's CustomUserID
	AssignedVendorID string // vendor CustomUserID, empty until claimed
	VendorCategory   string
	ServiceCategory  string
	PackageName      string
	TotalPrice       int64 // whole currency units
	BookingDate      string
	BookingTime      string
	ServiceAddress   string
	PaymentMethod    string // COD or RAZORPAY
	TransactionID    string
	PaymentStatus    string // Pending or Paid
	Status           string
	Settled          bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
