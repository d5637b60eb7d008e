package orders

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/pagination"
)

type stubRepo struct {
	carts map[string]*models.Cart
	lines map[uuid.UUID][]models.OrderItem

	takenInvoices map[string]bool
	confirmCalls  int
	confirmFn     func(orderNo string, upd ConfirmUpdate) (int64, error)
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		carts:         map[string]*models.Cart{},
		lines:         map[uuid.UUID][]models.OrderItem{},
		takenInvoices: map[string]bool{},
	}
}

func (r *stubRepo) GetCartByOrderNo(_ context.Context, orderNo string) (*models.Cart, error) {
	cart, ok := r.carts[orderNo]
	if !ok {
		return nil, nil
	}
	copied := *cart
	return &copied, nil
}

func (r *stubRepo) ListLines(_ context.Context, cartID uuid.UUID) ([]models.OrderItem, error) {
	return r.lines[cartID], nil
}

func (r *stubRepo) InvoiceNoExists(_ context.Context, invNo string) (bool, error) {
	if r.takenInvoices[invNo] {
		return true, nil
	}
	for _, cart := range r.carts {
		if cart.InvNo != nil && *cart.InvNo == invNo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) ConfirmCart(_ context.Context, orderNo string, upd ConfirmUpdate) (int64, error) {
	r.confirmCalls++
	if r.confirmFn != nil {
		return r.confirmFn(orderNo, upd)
	}
	cart, ok := r.carts[orderNo]
	if !ok || cart.DeliveryStatus != enums.DeliveryStatusCart {
		return 0, nil
	}
	mode := upd.PaymentMode
	date := upd.Date
	clock := upd.Time
	ccode := upd.CCode
	cart.DeliveryStatus = enums.DeliveryStatusOrdered
	cart.CCode = &ccode
	cart.InvNo = &upd.InvNo
	cart.TotalAmount = upd.TotalAmount
	cart.CourierAmount = upd.CourierAmount
	cart.NetAmount = upd.NetAmount
	cart.PaymentMode = &mode
	cart.Date = &date
	cart.Time = &clock
	return 1, nil
}

func (r *stubRepo) ListConfirmed(_ context.Context, cursor *pagination.Cursor, limit int) ([]models.Cart, error) {
	var out []models.Cart
	for _, cart := range r.carts {
		if !cart.DeliveryStatus.IsConfirmed() {
			continue
		}
		if cursor != nil && !cart.CreatedAt.Before(cursor.CreatedAt) {
			continue
		}
		out = append(out, *cart)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubRepo) GetConfirmedByOrderNo(_ context.Context, orderNo string) (*models.Cart, error) {
	cart, ok := r.carts[orderNo]
	if !ok || !cart.DeliveryStatus.IsConfirmed() {
		return nil, nil
	}
	copied := *cart
	return &copied, nil
}

type stubProfiles struct {
	profiles map[uuid.UUID]*models.UserProfile
}

func (p *stubProfiles) EnsureProfileWithCode(_ context.Context, userID uuid.UUID, username string) (*models.UserProfile, error) {
	if prof, ok := p.profiles[userID]; ok {
		return prof, nil
	}
	code := "CUST2608310009"
	prof := &models.UserProfile{ID: uuid.New(), UserID: userID, Name: username, CustomerCode: &code}
	p.profiles[userID] = prof
	return prof, nil
}

type stubAddresses struct {
	byID map[uuid.UUID]*models.CustomerAddress
}

func (a *stubAddresses) GetByID(_ context.Context, id uuid.UUID) (*models.CustomerAddress, error) {
	return a.byID[id], nil
}

type fixture struct {
	svc       Service
	repo      *stubRepo
	addresses *stubAddresses
	caller    Caller
	profile   *models.UserProfile
	addrID    uuid.UUID
	cart      *models.Cart
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newStubRepo()
	profiles := &stubProfiles{profiles: map[uuid.UUID]*models.UserProfile{}}
	addresses := &stubAddresses{byID: map[uuid.UUID]*models.CustomerAddress{}}

	svc, err := NewService(repo, profiles, addresses)
	require.NoError(t, err)

	caller := Caller{UserID: uuid.New(), Username: "asha"}
	profile, err := profiles.EnsureProfileWithCode(context.Background(), caller.UserID, caller.Username)
	require.NoError(t, err)

	addrID := uuid.New()
	addresses.byID[addrID] = &models.CustomerAddress{ID: addrID, ProfileID: profile.ID}

	ccode := *profile.CustomerCode
	cart := &models.Cart{
		ID:             uuid.New(),
		OrderNo:        "ORD2608310001",
		CCode:          &ccode,
		DeliveryStatus: enums.DeliveryStatusCart,
		Discount:       decimal.RequireFromString("20.00"),
	}
	repo.carts[cart.OrderNo] = cart
	repo.lines[cart.ID] = []models.OrderItem{
		{CartID: cart.ID, ItemCode: "17", Qty: 2, Rate: decimal.RequireFromString("90.00"), Amt: decimal.RequireFromString("180.00")},
		{CartID: cart.ID, ItemCode: "18", Qty: 1, Rate: decimal.RequireFromString("50.00"), Amt: decimal.RequireFromString("50.00")},
	}

	return &fixture{
		svc:       svc,
		repo:      repo,
		addresses: addresses,
		caller:    caller,
		profile:   profile,
		addrID:    addrID,
		cart:      cart,
	}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func TestConfirmFirstTime(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo:     f.cart.OrderNo,
		AddressID:   f.addrID,
		PaymentMode: "UPI",
	})
	require.NoError(t, err)

	assert.False(t, res.AlreadyConfirmed)
	assert.Equal(t, "order confirmed", res.Message)
	assert.Equal(t, "210", res.TotalAmount.String())
	assert.Equal(t, "0", res.CourierAmount.String())
	assert.Equal(t, "210", res.NetAmount.String())
	assert.Equal(t, enums.PaymentModeUPI, res.PaymentMode)
	assert.Equal(t, enums.DeliveryStatusOrdered, res.DeliveryStatus)
	assert.Equal(t, "INV"+time.Now().Format("060102"), res.InvNo[:9])

	assert.Equal(t, enums.DeliveryStatusOrdered, f.cart.DeliveryStatus)
}

func TestConfirmReplayReturnsStoredPayload(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	require.NoError(t, err)

	replay, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "UPI",
	})
	require.NoError(t, err)

	assert.True(t, replay.AlreadyConfirmed)
	assert.Equal(t, "order already confirmed", replay.Message)
	assert.Equal(t, first.InvNo, replay.InvNo)
	assert.Equal(t, first.TotalAmount.String(), replay.TotalAmount.String())
	// the replay keeps the original payment mode, the new one is ignored
	assert.Equal(t, enums.PaymentModeCOD, replay.PaymentMode)
	assert.Equal(t, 1, f.repo.confirmCalls)
}

func TestConfirmUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: "ORD0000000000", AddressID: f.addrID, PaymentMode: "COD",
	})
	assertCode(t, err, pkgerrors.CodeNotFound, "order not found")
}

func TestConfirmOwnershipCheck(t *testing.T) {
	f := newFixture(t)
	other := "CUST2608319999"
	f.cart.CCode = &other

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	assertCode(t, err, pkgerrors.CodeForbidden, "this order belongs to another customer")
}

func TestConfirmOwnershipTrimsStoredCode(t *testing.T) {
	f := newFixture(t)
	padded := " " + *f.profile.CustomerCode + " "
	f.cart.CCode = &padded

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	require.NoError(t, err)

	// the padded code is re-stamped normalized
	require.NotNil(t, f.cart.CCode)
	assert.Equal(t, *f.profile.CustomerCode, *f.cart.CCode)
}

func TestConfirmClaimsAnonymousCart(t *testing.T) {
	f := newFixture(t)
	f.cart.CCode = nil

	res, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	require.NoError(t, err)
	assert.False(t, res.AlreadyConfirmed)

	require.NotNil(t, f.cart.CCode)
	assert.Equal(t, *f.profile.CustomerCode, *f.cart.CCode)
	assert.Equal(t, enums.DeliveryStatusOrdered, f.cart.DeliveryStatus)
}

func TestConfirmClaimsBlankCustomerCode(t *testing.T) {
	f := newFixture(t)
	blank := "   "
	f.cart.CCode = &blank

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	require.NoError(t, err)
	assert.Equal(t, *f.profile.CustomerCode, *f.cart.CCode)
}

func TestConfirmEmptyCart(t *testing.T) {
	f := newFixture(t)
	f.repo.lines[f.cart.ID] = nil

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	assertCode(t, err, pkgerrors.CodeValidation, "cart is empty")
	assert.Equal(t, enums.DeliveryStatusCart, f.cart.DeliveryStatus)
}

func TestConfirmAddressChecks(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: uuid.New(), PaymentMode: "COD",
	})
	assertCode(t, err, pkgerrors.CodeNotFound, "address not found")

	foreign := uuid.New()
	f.addresses.byID[foreign] = &models.CustomerAddress{ID: foreign, ProfileID: uuid.New()}

	_, err = f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: foreign, PaymentMode: "COD",
	})
	assertCode(t, err, pkgerrors.CodeForbidden, "address does not belong to you")
}

func TestConfirmInvalidPaymentMode(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "CHEQUE",
	})
	assertCode(t, err, pkgerrors.CodeValidation, "invalid payment mode")
}

func TestConfirmLostRaceServesWinner(t *testing.T) {
	f := newFixture(t)

	// the conditional update reports zero rows because a concurrent request
	// confirmed the cart between our read and our write
	f.repo.confirmFn = func(string, ConfirmUpdate) (int64, error) {
		inv := "INV2608310042"
		mode := enums.PaymentModeCard
		f.cart.DeliveryStatus = enums.DeliveryStatusOrdered
		f.cart.InvNo = &inv
		f.cart.PaymentMode = &mode
		f.cart.TotalAmount = decimal.RequireFromString("210.00")
		f.cart.NetAmount = decimal.RequireFromString("210.00")
		return 0, nil
	}

	res, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	require.NoError(t, err)
	assert.True(t, res.AlreadyConfirmed)
	assert.Equal(t, "order already confirmed", res.Message)
	assert.Equal(t, "INV2608310042", res.InvNo)
	assert.Equal(t, enums.PaymentModeCard, res.PaymentMode)
}

func TestConfirmRetriesOnInvoiceCollision(t *testing.T) {
	f := newFixture(t)

	var attempts []string
	f.repo.confirmFn = func(orderNo string, upd ConfirmUpdate) (int64, error) {
		attempts = append(attempts, upd.InvNo)
		if len(attempts) == 1 {
			f.repo.takenInvoices[upd.InvNo] = true
			return 0, errors.New(`duplicate key value violates unique constraint "carts_inv_no_key"`)
		}
		f.repo.confirmFn = nil
		return f.repo.ConfirmCart(context.Background(), orderNo, upd)
	}

	res, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.NotEqual(t, attempts[0], attempts[1])
	assert.Equal(t, attempts[1], res.InvNo)
	assert.Equal(t, enums.DeliveryStatusOrdered, f.cart.DeliveryStatus)
}

func TestConfirmRaceWithoutWinnerConflicts(t *testing.T) {
	f := newFixture(t)
	f.repo.confirmFn = func(string, ConfirmUpdate) (int64, error) {
		return 0, nil
	}

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "COD",
	})
	assertCode(t, err, pkgerrors.CodeStateConflict, "order confirmation did not apply")
}

func TestAdminListAndDetail(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Confirm(context.Background(), f.caller, ConfirmInput{
		OrderNo: f.cart.OrderNo, AddressID: f.addrID, PaymentMode: "ONLINE",
	})
	require.NoError(t, err)

	list, err := f.svc.ListConfirmed(context.Background(), pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Empty(t, list.NextCursor)
	assert.Equal(t, enums.PaymentStatusPaid, list.Orders[0].PaymentStatus)
	assert.Equal(t, enums.DeliveryStatusOrdered, list.Orders[0].OrderStatus)

	detail, err := f.svc.GetConfirmed(context.Background(), f.cart.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, f.cart.OrderNo, detail.OrderNo)
	assert.NotEmpty(t, detail.InvNo)

	_, err = f.svc.GetConfirmed(context.Background(), "ORD0000000000")
	assertCode(t, err, pkgerrors.CodeNotFound, "order not found")
}

func TestAdminListPaginates(t *testing.T) {
	repo := newStubRepo()
	code := "CUST2608310009"
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		orderNo := fmt.Sprintf("ORD26080100%02d", i)
		inv := fmt.Sprintf("INV26080100%02d", i)
		repo.carts[orderNo] = &models.Cart{
			ID:             uuid.New(),
			OrderNo:        orderNo,
			CCode:          &code,
			InvNo:          &inv,
			DeliveryStatus: enums.DeliveryStatusOrdered,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		}
	}

	svc, err := NewService(repo, &stubProfiles{profiles: map[uuid.UUID]*models.UserProfile{}}, &stubAddresses{})
	require.NoError(t, err)

	page1, err := svc.ListConfirmed(context.Background(), pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1.Orders, 2)
	require.NotEmpty(t, page1.NextCursor)
	assert.Equal(t, "ORD2608010002", page1.Orders[0].OrderNo)
	assert.Equal(t, "ORD2608010001", page1.Orders[1].OrderNo)

	page2, err := svc.ListConfirmed(context.Background(), pagination.Params{Limit: 2, Cursor: page1.NextCursor})
	require.NoError(t, err)
	require.Len(t, page2.Orders, 1)
	assert.Empty(t, page2.NextCursor)
	assert.Equal(t, "ORD2608010000", page2.Orders[0].OrderNo)

	_, err = svc.ListConfirmed(context.Background(), pagination.Params{Cursor: "not-base64"})
	assertCode(t, err, pkgerrors.CodeValidation, "invalid cursor")
}

func TestPaymentStatusDerivation(t *testing.T) {
	assert.Equal(t, enums.PaymentStatusPending, enums.PaymentStatusFor(enums.PaymentModeCOD))
	assert.Equal(t, enums.PaymentStatusPaid, enums.PaymentStatusFor(enums.PaymentModeOnline))
	assert.Equal(t, enums.PaymentStatusPaid, enums.PaymentStatusFor(enums.PaymentModeCard))
	assert.Equal(t, enums.PaymentStatusPaid, enums.PaymentStatusFor(enums.PaymentModeUPI))
}
