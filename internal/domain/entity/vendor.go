package entity

import "time"

// Identity roles.
const (
	RoleCustomer = "Customer"
	RoleVendor   = "Vendor"
	RoleAdmin    = "Admin"
)

// Vendor is a category-specific service provider. Each vendor lives in
// exactly one category partition; CustomUserID is the public identity used
// across bookings, presence channels and wallet settlement.
type Vendor struct {
	ID            string // opaque UUID, primary key within the partition
	CustomUserID  string // display id, e.g. VND-1001
	FirstName     string
	LastName      string
	FullName      string
	Email         string
	Phone         string
	PasswordHash  string // bcrypt, never plain after registration
	AadharNumber  string
	PanNumber     string
	Category      string // partition label, e.g. "AC"
	PhotoURL      string
	Street        string
	City          string
	State         string
	Pincode       string
	Address       string // composed "street, city, state - pincode"
	Online        bool
	Verified      bool
	WalletBalance int64 // whole currency units, credited only by settlement
	Role          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
