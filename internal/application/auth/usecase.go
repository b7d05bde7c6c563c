package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gharkeseva/gharseva-api/internal/application/directory"
	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	"github.com/gharkeseva/gharseva-api/internal/domain"
	"github.com/gharkeseva/gharseva-api/internal/domain/category"
	"github.com/gharkeseva/gharseva-api/internal/domain/entity"
	"github.com/gharkeseva/gharseva-api/internal/domain/repository"
	"github.com/gharkeseva/gharseva-api/pkg/jwt"
	"github.com/gharkeseva/gharseva-api/pkg/logger"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Presence is the slice of the notification bus the auth flows need: a
// broadcast-only presence event after a login that already persisted the
// flag through the found partition, and the full mark-offline on logout.
type Presence interface {
	PresenceChanged(vendorID string, online bool)
	MarkOffline(ctx context.Context, vendorID string) error
}

// UseCase registration and login for the three identity kinds.
type UseCase struct {
	customers repository.CustomerRepository
	admins    repository.AdminRepository
	vendors   repository.VendorDirectory
	resolver  *directory.Resolver
	seq       repository.SequenceRepository
	reg       *category.Registry
	presence  Presence
	jwtCfg    JWTConfig
	log       *logger.Logger
}

// NewUseCase builds the auth usecase.
func NewUseCase(
	customers repository.CustomerRepository,
	admins repository.AdminRepository,
	vendors repository.VendorDirectory,
	resolver *directory.Resolver,
	seq repository.SequenceRepository,
	reg *category.Registry,
	presence Presence,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		customers: customers,
		admins:    admins,
		vendors:   vendors,
		resolver:  resolver,
		seq:       seq,
		reg:       reg,
		presence:  presence,
		jwtCfg:    jwtCfg,
		log:       log,
	}
}

// RegisterCustomer creates a customer account: duplicate-email check, bcrypt
// hash, display id.
func (uc *UseCase) RegisterCustomer(ctx context.Context, in dto.RegisterCustomerRequest) (*entity.Customer, error) {
	if in.Password == "" || in.Email == "" || in.FullName == "" || in.Phone == "" {
		return nil, domain.ErrValidation
	}
	existing, err := uc.customers.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	n, err := uc.seq.Next(ctx, "customer")
	if err != nil {
		return nil, fmt.Errorf("allocate customer id: %w", err)
	}
	now := time.Now()
	c := &entity.Customer{
		ID:           uuid.New().String(),
		CustomUserID: domain.DisplayID("CUST", n),
		FullName:     in.FullName,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// LoginCustomer verifies credentials and issues a customer token.
func (uc *UseCase) LoginCustomer(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	c, err := uc.customers.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredential
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, c.CustomUserID, entity.RoleCustomer, "", uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User: dto.UserInfo{
			ID:    c.CustomUserID,
			Ref:   c.ID,
			Name:  c.FullName,
			Email: c.Email,
			Role:  entity.RoleCustomer,
		},
	}, nil
}

// RegisterVendor creates a vendor in the partition its category resolves to.
// The duplicate check covers email and aadhaar within that partition only;
// the same email in a different category partition is not detected (a known
// gap of the partitioning scheme).
func (uc *UseCase) RegisterVendor(ctx context.Context, in dto.RegisterVendorRequest) (*entity.Vendor, error) {
	if in.Password == "" || in.Email == "" || in.FirstName == "" || in.LastName == "" ||
		in.Phone == "" || in.AadharNumber == "" || in.Category == "" {
		return nil, domain.ErrValidation
	}
	handle, fellBack := uc.reg.Resolve(in.Category, category.KindVendor)
	if fellBack {
		uc.log.Warn().Str("category", in.Category).Str("partition", handle).Msg("unknown vendor category at registration, using default partition")
	}
	part, ok := uc.vendors.Partition(handle)
	if !ok {
		return nil, domain.ErrNotFound
	}
	existing, err := part.GetByEmailOrAadhar(ctx, strings.ToLower(in.Email), in.AadharNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	n, err := uc.seq.Next(ctx, "vendor")
	if err != nil {
		return nil, fmt.Errorf("allocate vendor id: %w", err)
	}
	now := time.Now()
	v := &entity.Vendor{
		ID:           uuid.New().String(),
		CustomUserID: domain.DisplayID("VND", n),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		FullName:     in.FirstName + " " + in.LastName,
		Email:        strings.ToLower(in.Email),
		Phone:        in.Phone,
		PasswordHash: string(hash),
		AadharNumber: in.AadharNumber,
		PanNumber:    in.PanNumber,
		Category:     in.Category,
		PhotoURL:     in.PhotoURL,
		Street:       in.Street,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		Address:      fmt.Sprintf("%s, %s, %s - %s", in.Street, in.City, in.State, in.Pincode),
		Online:       false,
		Verified:     false,
		Role:         entity.RoleVendor,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := part.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// LoginVendor locates the vendor via the cross-partition scatter, verifies
// credentials, flips the online flag through the partition it was found in,
// and broadcasts the presence change. A failed flag write is logged and does
// not abort the login or the broadcast.
func (uc *UseCase) LoginVendor(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	m, err := uc.resolver.FindByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	v := m.Vendor
	if bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredential
	}
	if err := m.Partition.SetOnline(ctx, v.CustomUserID, true); err != nil {
		uc.log.Error().Err(err).Str("vendor", v.CustomUserID).Msg("online flag write failed on login")
	} else {
		v.Online = true
	}
	uc.presence.PresenceChanged(v.CustomUserID, true)

	token, err := jwt.Generate(uc.jwtCfg.Secret, v.CustomUserID, entity.RoleVendor, v.Category, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User: dto.UserInfo{
			ID:       v.CustomUserID,
			Ref:      v.ID,
			Name:     v.FullName,
			Role:     entity.RoleVendor,
			Category: v.Category,
			Online:   v.Online,
		},
	}, nil
}

// LogoutVendor marks the vendor offline and broadcasts the change.
func (uc *UseCase) LogoutVendor(ctx context.Context, vendorID string) error {
	if vendorID == "" {
		return domain.ErrValidation
	}
	return uc.presence.MarkOffline(ctx, vendorID)
}

// RegisterAdmin creates an admin account.
func (uc *UseCase) RegisterAdmin(ctx context.Context, in dto.RegisterAdminRequest) (*entity.Admin, error) {
	if in.Password == "" || in.Email == "" || in.FullName == "" {
		return nil, domain.ErrValidation
	}
	existing, err := uc.admins.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	n, err := uc.seq.Next(ctx, "admin")
	if err != nil {
		return nil, fmt.Errorf("allocate admin id: %w", err)
	}
	now := time.Now()
	a := &entity.Admin{
		ID:           uuid.New().String(),
		CustomUserID: domain.DisplayID("ADM", n),
		FullName:     in.FullName,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.admins.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// LoginAdmin verifies credentials and issues an admin token.
func (uc *UseCase) LoginAdmin(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrValidation
	}
	a, err := uc.admins.GetByEmail(ctx, strings.ToLower(in.Email))
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAdminNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredential
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, a.CustomUserID, entity.RoleAdmin, "", uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Success: true,
		Token:   token,
		User: dto.UserInfo{
			ID:   a.CustomUserID,
			Name: a.FullName,
			Role: entity.RoleAdmin,
		},
	}, nil
}

// VendorProfile returns the vendor record with the credential hash stripped.
func (uc *UseCase) VendorProfile(ctx context.Context, vendorID string) (*dto.VendorProfile, error) {
	m, err := uc.resolver.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return ToVendorProfile(m.Vendor), nil
}

// ToVendorProfile maps a vendor entity to its public view.
func ToVendorProfile(v *entity.Vendor) *dto.VendorProfile {
	return &dto.VendorProfile{
		ID:            v.CustomUserID,
		FullName:      v.FullName,
		Email:         v.Email,
		Phone:         v.Phone,
		Category:      v.Category,
		PhotoURL:      v.PhotoURL,
		Address:       v.Address,
		Online:        v.Online,
		Verified:      v.Verified,
		WalletBalance: v.WalletBalance,
	}
}
