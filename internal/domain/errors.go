package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP codes;
// adapters wrap driver errors into them.
var (
	ErrValidation        = errors.New("missing or invalid field")
	ErrNotFound          = errors.New("resource not found")
	ErrCustomerNotFound  = errors.New("customer account not found")
	ErrVendorNotFound    = errors.New("vendor account not found")
	ErrAdminNotFound     = errors.New("admin access denied")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrDuplicate         = errors.New("account already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrConflict          = errors.New("conflict with current state")
	ErrDependency        = errors.New("upstream collaborator failed")
)
