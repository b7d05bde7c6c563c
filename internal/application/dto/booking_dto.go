package dto

import "time"

// CreateBookingRequest body for POST /bookings/create.
type CreateBookingRequest struct {
	CustomerUserID  string `json:"customerUserId"`
	VendorCategory  string `json:"vendorCategory"`
	ServiceCategory string `json:"serviceCategory"`
	PackageName     string `json:"packageName"`
	TotalPrice      int64  `json:"totalPrice"`
	BookingDate     string `json:"bookingDate"`
	BookingTime     string `json:"bookingTime"`
	ServiceAddress  string `json:"serviceAddress"`
	PaymentMethod   string `json:"paymentMethod"`
	TransactionID   string `json:"transactionId"`
	PaymentStatus   string `json:"paymentStatus"`
}

// VendorJobPatch body for PUT /vendor/update-job/:bookingId. Only the fields
// a vendor may touch; pointers distinguish "absent" from "set to zero".
type VendorJobPatch struct {
	Status           *string `json:"bookingStatus"`
	AssignedVendorID *string `json:"assignedVendorId"`
	PaymentStatus    *string `json:"paymentStatus"`
	TransactionID    *string `json:"transactionId"`
}

// BookingResponse public view of a booking.
type BookingResponse struct {
	BookingID        string    `json:"customBookingId"`
	CustomerUserID   string    `json:"customerUserId"`
	AssignedVendorID string    `json:"assignedVendorId,omitempty"`
	VendorCategory   string    `json:"vendorCategory,omitempty"`
	ServiceCategory  string    `json:"serviceCategory"`
	PackageName      string    `json:"packageName"`
	TotalPrice       int64     `json:"totalPrice"`
	BookingDate      string    `json:"bookingDate"`
	BookingTime      string    `json:"bookingTime"`
	ServiceAddress   string    `json:"serviceAddress"`
	PaymentMethod    string    `json:"paymentMethod"`
	TransactionID    string    `json:"transactionId,omitempty"`
	PaymentStatus    string    `json:"paymentStatus"`
	Status           string    `json:"bookingStatus"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateBookingResponse returned on booking creation.
type CreateBookingResponse struct {
	Success   bool   `json:"success"`
	BookingID string `json:"bookingId"`
}
