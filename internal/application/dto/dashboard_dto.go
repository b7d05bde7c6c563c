package dto

// DashboardStats aggregate view for the admin dashboard.
type DashboardStats struct {
	TotalRevenue       int64             `json:"totalRevenue"`
	ActiveBookings     int64             `json:"activeBookingsCount"`
	TotalCustomers     int64             `json:"totalUsersCount"`
	VerifiedVendors    int64             `json:"verifiedTechsCount"`
	RecentBookingsList []BookingResponse `json:"recentBookingsList"`
}
