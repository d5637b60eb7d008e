package customers

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
)

type stubRepo struct {
	profilesByUser map[uuid.UUID]*models.UserProfile
	addresses      map[uuid.UUID]*models.CustomerAddress

	setCodeErr   error
	setCodeCalls int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		profilesByUser: map[uuid.UUID]*models.UserProfile{},
		addresses:      map[uuid.UUID]*models.CustomerAddress{},
	}
}

func (r *stubRepo) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	return r.profilesByUser[userID], nil
}

func (r *stubRepo) GetProfileByCustomerCode(_ context.Context, code string) (*models.UserProfile, error) {
	for _, profile := range r.profilesByUser {
		if profile.CustomerCode != nil && *profile.CustomerCode == code {
			return profile, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	profile.ID = uuid.New()
	r.profilesByUser[profile.UserID] = profile
	return nil
}

func (r *stubRepo) SetCustomerCode(_ context.Context, profileID uuid.UUID, code string) error {
	r.setCodeCalls++
	if r.setCodeErr != nil {
		err := r.setCodeErr
		r.setCodeErr = nil
		return err
	}
	for _, profile := range r.profilesByUser {
		if profile.ID == profileID {
			profile.CustomerCode = &code
			return nil
		}
	}
	return nil
}

func (r *stubRepo) CustomerCodeExists(_ context.Context, code string) (bool, error) {
	profile, _ := r.GetProfileByCustomerCode(context.Background(), code)
	return profile != nil, nil
}

func (r *stubRepo) GetAddressByID(_ context.Context, id uuid.UUID) (*models.CustomerAddress, error) {
	for _, addr := range r.addresses {
		if addr.ID == id {
			return addr, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) GetAddressByProfileID(_ context.Context, profileID uuid.UUID) (*models.CustomerAddress, error) {
	return r.addresses[profileID], nil
}

func (r *stubRepo) SaveAddress(_ context.Context, addr *models.CustomerAddress) error {
	if addr.ID == uuid.Nil {
		addr.ID = uuid.New()
	}
	r.addresses[addr.ProfileID] = addr
	return nil
}

func assertCode(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func validInput() AddressInput {
	return AddressInput{
		Prefix:   "Mrs",
		Address:  "12 Hospital Road",
		Post:     "Fort",
		District: "Ernakulam",
		State:    "Kerala",
		Pin:      "682001",
		Country:  "India",
	}
}

func TestEnsureProfileCreatesAndAssignsCode(t *testing.T) {
	repo := newStubRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	userID := uuid.New()
	profile, err := svc.EnsureProfileWithCode(context.Background(), userID, "asha")
	require.NoError(t, err)

	assert.Equal(t, "asha", profile.Name)
	require.NotNil(t, profile.CustomerCode)
	assert.Regexp(t, regexp.MustCompile(`^CUST\d{10}$`), *profile.CustomerCode)
}

func TestEnsureProfileIsIdempotent(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	userID := uuid.New()
	first, err := svc.EnsureProfileWithCode(context.Background(), userID, "asha")
	require.NoError(t, err)

	second, err := svc.EnsureProfileWithCode(context.Background(), userID, "renamed")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, *first.CustomerCode, *second.CustomerCode)
	// the existing profile name is not touched
	assert.Equal(t, "asha", second.Name)
	assert.Equal(t, 1, repo.setCodeCalls)
}

func TestEnsureProfileRetriesOnCodeCollision(t *testing.T) {
	repo := newStubRepo()
	repo.setCodeErr = fmt.Errorf(`duplicate key value violates unique constraint "user_profiles_customer_code_key"`)
	svc, _ := NewService(repo)

	profile, err := svc.EnsureProfileWithCode(context.Background(), uuid.New(), "asha")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.setCodeCalls)
	require.NotNil(t, profile.CustomerCode)
}

func TestEnsureProfileRejectsNilUser(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	_, err := svc.EnsureProfileWithCode(context.Background(), uuid.Nil, "asha")
	assertCode(t, err, pkgerrors.CodeUnauthorized, "missing user identity")
}

func TestUpsertAddressCreatesThenUpdates(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	userID := uuid.New()
	addr, err := svc.UpsertAddress(context.Background(), userID, "asha", validInput())
	require.NoError(t, err)
	assert.Equal(t, enums.NamePrefixMrs, addr.Prefix)
	assert.Equal(t, "682001", addr.Pin)

	input := validInput()
	input.Pin = "682002"
	updated, err := svc.UpsertAddress(context.Background(), userID, "asha", input)
	require.NoError(t, err)
	assert.Equal(t, addr.ID, updated.ID)
	assert.Equal(t, "682002", updated.Pin)
	assert.Len(t, repo.addresses, 1)
}

func TestUpsertAddressValidation(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	input := validInput()
	input.Prefix = "Sir"
	_, err := svc.UpsertAddress(context.Background(), uuid.New(), "asha", input)
	assertCode(t, err, pkgerrors.CodeValidation, "invalid name prefix")

	input = validInput()
	input.Pin = ""
	input.Country = " "
	_, err = svc.UpsertAddress(context.Background(), uuid.New(), "asha", input)
	assertCode(t, err, pkgerrors.CodeValidation, "missing required address fields")
	typed := pkgerrors.As(err)
	assert.Equal(t, []string{"pin", "country"}, typed.Details())
}

func TestUpsertAddressDefaultsPrefix(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	input := validInput()
	input.Prefix = ""
	addr, err := svc.UpsertAddress(context.Background(), uuid.New(), "asha", input)
	require.NoError(t, err)
	assert.Equal(t, enums.NamePrefixMr, addr.Prefix)
}

func TestUpsertAddressForCustomer(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	profile, err := svc.EnsureProfileWithCode(context.Background(), uuid.New(), "asha")
	require.NoError(t, err)

	addr, err := svc.UpsertAddressForCustomer(context.Background(), *profile.CustomerCode, validInput())
	require.NoError(t, err)
	assert.Equal(t, profile.ID, addr.ProfileID)

	_, err = svc.UpsertAddressForCustomer(context.Background(), "CUST0000000000", validInput())
	assertCode(t, err, pkgerrors.CodeNotFound, "customer not found")

	_, err = svc.UpsertAddressForCustomer(context.Background(), " ", validInput())
	assertCode(t, err, pkgerrors.CodeValidation, "customer_code is required")
}

func TestGetAddress(t *testing.T) {
	repo := newStubRepo()
	svc, _ := NewService(repo)

	userID := uuid.New()
	_, err := svc.GetAddress(context.Background(), userID)
	assertCode(t, err, pkgerrors.CodeNotFound, "profile not found")

	_, err = svc.EnsureProfileWithCode(context.Background(), userID, "asha")
	require.NoError(t, err)

	_, err = svc.GetAddress(context.Background(), userID)
	assertCode(t, err, pkgerrors.CodeNotFound, "address not found")

	saved, err := svc.UpsertAddress(context.Background(), userID, "asha", validInput())
	require.NoError(t, err)

	addr, err := svc.GetAddress(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, addr.ID)

	dir, err := NewAddressDirectory(repo)
	require.NoError(t, err)
	byID, err := dir.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, saved.ProfileID, byID.ProfileID)
}
