package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/codes"
	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
)

// Service manages customer profiles and their shipping address.
type Service interface {
	EnsureProfileWithCode(ctx context.Context, userID uuid.UUID, username string) (*models.UserProfile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpsertAddress(ctx context.Context, userID uuid.UUID, username string, input AddressInput) (*models.CustomerAddress, error)
	UpsertAddressForCustomer(ctx context.Context, customerCode string, input AddressInput) (*models.CustomerAddress, error)
	GetAddress(ctx context.Context, userID uuid.UUID) (*models.CustomerAddress, error)
}

type service struct {
	repo Repository
}

// NewService builds the customers service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

// AddressInput carries the address fields. All location fields are
// mandatory, name and prefix are optional.
type AddressInput struct {
	Name     *string
	Prefix   string
	Address  string
	Post     string
	District string
	State    string
	Pin      string
	Country  string
}

// EnsureProfileWithCode returns the caller's profile, creating it and
// assigning a customer code on first use. The unique constraint on
// customer_code is the authority; one retry covers a generation collision.
func (s *service) EnsureProfileWithCode(ctx context.Context, userID uuid.UUID, username string) (*models.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing user identity")
	}

	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading profile")
	}
	if profile == nil {
		profile = &models.UserProfile{UserID: userID, Name: username}
		if err := s.repo.CreateProfile(ctx, profile); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating profile")
		}
	}

	if profile.CustomerCode == nil {
		if err := s.assignCustomerCode(ctx, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *service) assignCustomerCode(ctx context.Context, profile *models.UserProfile) error {
	err := s.setFreshCode(ctx, profile)
	if err != nil && dbclient.IsUniqueViolation(err, "user_profiles_customer_code_key") {
		err = s.setFreshCode(ctx, profile)
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning customer code")
	}
	return nil
}

func (s *service) setFreshCode(ctx context.Context, profile *models.UserProfile) error {
	code, err := codes.Generate(ctx, codes.PrefixCustomer, s.repo.CustomerCodeExists)
	if err != nil {
		return err
	}
	if err := s.repo.SetCustomerCode(ctx, profile.ID, code); err != nil {
		return err
	}
	profile.CustomerCode = &code
	return nil
}

// GetProfile returns the caller's profile or a 404 when none exists yet.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading profile")
	}
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return profile, nil
}

// UpsertAddress writes the single shipping address of the authenticated
// caller, provisioning the profile first when needed.
func (s *service) UpsertAddress(ctx context.Context, userID uuid.UUID, username string, input AddressInput) (*models.CustomerAddress, error) {
	profile, err := s.EnsureProfileWithCode(ctx, userID, username)
	if err != nil {
		return nil, err
	}
	return s.upsertAddress(ctx, profile, input)
}

// UpsertAddressForCustomer writes the address for a customer identified by
// code. Used by flows that capture an address before login completes.
func (s *service) UpsertAddressForCustomer(ctx context.Context, customerCode string, input AddressInput) (*models.CustomerAddress, error) {
	customerCode = strings.TrimSpace(customerCode)
	if customerCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_code is required")
	}

	profile, err := s.repo.GetProfileByCustomerCode(ctx, customerCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading profile")
	}
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return s.upsertAddress(ctx, profile, input)
}

func (s *service) upsertAddress(ctx context.Context, profile *models.UserProfile, input AddressInput) (*models.CustomerAddress, error) {
	prefix, err := parsePrefix(input.Prefix)
	if err != nil {
		return nil, err
	}
	if err := validateAddress(input); err != nil {
		return nil, err
	}

	addr, err := s.repo.GetAddressByProfileID(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading address")
	}
	if addr == nil {
		addr = &models.CustomerAddress{ProfileID: profile.ID}
	}

	addr.Name = input.Name
	addr.Prefix = prefix
	addr.Address = strings.TrimSpace(input.Address)
	addr.Post = strings.TrimSpace(input.Post)
	addr.District = strings.TrimSpace(input.District)
	addr.State = strings.TrimSpace(input.State)
	addr.Pin = strings.TrimSpace(input.Pin)
	addr.Country = strings.TrimSpace(input.Country)

	if err := s.repo.SaveAddress(ctx, addr); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving address")
	}
	return addr, nil
}

// GetAddress returns the caller's stored address.
func (s *service) GetAddress(ctx context.Context, userID uuid.UUID) (*models.CustomerAddress, error) {
	profile, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading profile")
	}
	if profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}

	addr, err := s.repo.GetAddressByProfileID(ctx, profile.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading address")
	}
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	return addr, nil
}

func parsePrefix(raw string) (enums.NamePrefix, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return enums.NamePrefixMr, nil
	}
	prefix, err := enums.ParseNamePrefix(raw)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid name prefix")
	}
	return prefix, nil
}

func validateAddress(input AddressInput) error {
	required := []struct {
		field string
		value string
	}{
		{"address", input.Address},
		{"post", input.Post},
		{"district", input.District},
		{"state", input.State},
		{"pin", input.Pin},
		{"country", input.Country},
	}
	var missing []string
	for _, entry := range required {
		if strings.TrimSpace(entry.value) == "" {
			missing = append(missing, entry.field)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required address fields").
			WithDetails(missing)
	}
	return nil
}

// AddressDirectory exposes address lookup by id for other services.
type AddressDirectory struct {
	repo Repository
}

// NewAddressDirectory builds the directory.
func NewAddressDirectory(repo Repository) (*AddressDirectory, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &AddressDirectory{repo: repo}, nil
}

// GetByID returns the address or nil when it does not exist.
func (d *AddressDirectory) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error) {
	return d.repo.GetAddressByID(ctx, id)
}
