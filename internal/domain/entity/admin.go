package entity

import "time"

// Admin is a back-office account with access to the dashboard and catalog
// management.
type Admin struct {
	ID           string // opaque UUID
	CustomUserID string // display id, e.g. ADM-1001
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
