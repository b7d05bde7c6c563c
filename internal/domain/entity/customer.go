package entity

import "time"

// Customer is a booking-owning account. Immutable after registration in this
// subsystem (account recovery is out of scope).
type Customer struct {
	ID           string // opaque UUID
	CustomUserID string // display id, e.g. CUST-1001
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
