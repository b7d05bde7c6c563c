package dto

// Field names follow the public API contract the frontend already speaks
// (userEmail, userPassword, ...), so registration and login bodies keep the
// legacy camelCase keys.

// RegisterCustomerRequest body for POST /register.
type RegisterCustomerRequest struct {
	FullName string `json:"userFullName"`
	Email    string `json:"userEmail"`
	Phone    string `json:"userPhone"`
	Password string `json:"userPassword"`
}

// LoginRequest body for every login endpoint.
type LoginRequest struct {
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
}

// RegisterVendorRequest body for POST /vendor/register. PhotoURL comes from
// the file-storage collaborator; this core only stores the string.
type RegisterVendorRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"userEmail"`
	Phone        string `json:"userPhone"`
	Password     string `json:"userPassword"`
	AadharNumber string `json:"aadharNumber"`
	PanNumber    string `json:"panNumber"`
	Category     string `json:"vendorCategory"`
	PhotoURL     string `json:"vendorPhoto"`
	Street       string `json:"vendorStreet"`
	City         string `json:"vendorCity"`
	State        string `json:"vendorState"`
	Pincode      string `json:"vendorPincode"`
}

// RegisterAdminRequest body for POST /admin/register.
type RegisterAdminRequest struct {
	FullName string `json:"userFullName"`
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
}

// UserInfo is the identity payload returned alongside a token.
type UserInfo struct {
	ID       string `json:"id"` // display id (CUST-/VND-/ADM-)
	Ref      string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	Category string `json:"category,omitempty"`
	Online   bool   `json:"isOnline,omitempty"`
}

// LoginResponse token plus identity.
type LoginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// RegisterResponse returned by the three registration endpoints.
type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

// VendorProfile is a vendor record with the credential hash stripped.
type VendorProfile struct {
	ID            string `json:"customUserId"`
	FullName      string `json:"userFullName"`
	Email         string `json:"userEmail"`
	Phone         string `json:"userPhone"`
	Category      string `json:"vendorCategory"`
	PhotoURL      string `json:"vendorPhoto,omitempty"`
	Address       string `json:"vendorAddress,omitempty"`
	Online        bool   `json:"isOnline"`
	Verified      bool   `json:"isVerified"`
	WalletBalance int64  `json:"walletBalance"`
}
