package dto

// CreatePackageRequest body for POST /admin/services/add.
type CreatePackageRequest struct {
	ServiceCategory string   `json:"serviceCategory"`
	PackageName     string   `json:"packageName"`
	PackageImage    string   `json:"packageImage"`
	Description     string   `json:"description"`
	PriceAmount     int64    `json:"priceAmount"`
	EstimatedTime   string   `json:"estimatedTime"`
	Inclusions      []string `json:"inclusions"`
}

// PackageResponse public view of a service package.
type PackageResponse struct {
	ServiceID       string   `json:"customServiceId"`
	ServiceCategory string   `json:"serviceCategory"`
	PackageName     string   `json:"packageName"`
	PackageImage    string   `json:"packageImage,omitempty"`
	Description     string   `json:"description,omitempty"`
	PriceAmount     int64    `json:"priceAmount"`
	EstimatedTime   string   `json:"estimatedTime"`
	Inclusions      []string `json:"inclusions"`
	Active          bool     `json:"isServiceActive"`
}

// CreatePackageResponse returned on package creation.
type CreatePackageResponse struct {
	Success   bool   `json:"success"`
	ServiceID string `json:"serviceId"`
}
