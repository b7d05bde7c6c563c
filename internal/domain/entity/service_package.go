package entity

import "time"

// ServicePackage is a bookable offering owned by a service category
// partition. Created by admins, listed to customers filtered by category and
// active flag.
type ServicePackage struct {
	ID              string // opaque UUID
	CustomServiceID string // display id, e.g. SRV-1001
	ServiceCategory string
	PackageName     string
	PackageImage    string // URL from the file-storage collaborator
	Description     string
	PriceAmount     int64
	EstimatedTime   string
	Inclusions      []string
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
