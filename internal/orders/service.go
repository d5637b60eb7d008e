package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/pkg/codes"
	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/pagination"
)

// Shipping is flat for now; the column exists so a courier tariff can land
// without a schema change.
var courierAmount = decimal.Zero

type profileProvider interface {
	EnsureProfileWithCode(ctx context.Context, userID uuid.UUID, username string) (*models.UserProfile, error)
}

type addressLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomerAddress, error)
}

// Service runs the confirmation workflow and the admin read side.
type Service interface {
	Confirm(ctx context.Context, caller Caller, input ConfirmInput) (*ConfirmResult, error)
	ListConfirmed(ctx context.Context, params pagination.Params) (*AdminOrderList, error)
	GetConfirmed(ctx context.Context, orderNo string) (*AdminOrder, error)
}

type service struct {
	repo     Repository
	profiles profileProvider
	address  addressLoader
}

// NewService builds the orders service.
func NewService(repo Repository, profiles profileProvider, address addressLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile provider required")
	}
	if address == nil {
		return nil, fmt.Errorf("address loader required")
	}
	return &service{repo: repo, profiles: profiles, address: address}, nil
}

// Caller identifies the authenticated customer.
type Caller struct {
	UserID   uuid.UUID
	Username string
}

// ConfirmInput is the confirmation request payload.
type ConfirmInput struct {
	OrderNo     string
	AddressID   uuid.UUID
	PaymentMode string
}

// ConfirmResult is returned for both first confirmation and idempotent
// replay; AlreadyConfirmed distinguishes the two.
type ConfirmResult struct {
	AlreadyConfirmed bool
	Message          string
	OrderNo          string
	InvNo            string
	TotalAmount      decimal.Decimal
	CourierAmount    decimal.Decimal
	NetAmount        decimal.Decimal
	Discount         decimal.Decimal
	PaymentMode      enums.PaymentMode
	DeliveryStatus   enums.DeliveryStatus
}

// AdminOrder is the back-office read model with derived status strings.
type AdminOrder struct {
	OrderNo       string
	InvNo         string
	CustomerCode  string
	TotalAmount   decimal.Decimal
	CourierAmount decimal.Decimal
	NetAmount     decimal.Decimal
	Discount      decimal.Decimal
	PaymentMode   enums.PaymentMode
	PaymentStatus enums.PaymentStatus
	OrderStatus   enums.DeliveryStatus
	Date          *time.Time
	Time          *string
}

// Confirm turns a draft cart into an order. Replaying against an already
// confirmed cart returns the stored confirmation payload unchanged.
func (s *service) Confirm(ctx context.Context, caller Caller, input ConfirmInput) (*ConfirmResult, error) {
	profile, err := s.profiles.EnsureProfileWithCode(ctx, caller.UserID, caller.Username)
	if err != nil {
		return nil, err
	}
	if profile.CustomerCode == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "customer code missing on profile")
	}

	orderNo := strings.TrimSpace(input.OrderNo)
	if orderNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order_no is required")
	}

	cart, err := s.repo.GetCartByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	if cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	// Replay of a confirmed order is success, not an error; duplicate
	// confirmation requests must be safe.
	if cart.DeliveryStatus.IsConfirmed() {
		return replayResult(cart), nil
	}

	// Carts opened anonymously carry no customer code; confirmation claims
	// them for the caller. Only a non-blank code held by someone else blocks.
	if cart.CCode != nil {
		stored := strings.TrimSpace(*cart.CCode)
		if stored != "" && stored != *profile.CustomerCode {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "this order belongs to another customer")
		}
	}

	lines, err := s.repo.ListLines(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing cart lines")
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	addr, err := s.address.GetByID(ctx, input.AddressID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading address")
	}
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	if addr.ProfileID != profile.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "address does not belong to you")
	}

	mode, err := enums.ParsePaymentMode(strings.TrimSpace(input.PaymentMode))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment mode")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amt)
	}
	total := subtotal.Sub(cart.Discount)
	net := total.Add(courierAmount)

	invNo, err := codes.Generate(ctx, codes.PrefixInvoice, s.repo.InvoiceNoExists)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocating invoice number")
	}

	now := time.Now()
	upd := ConfirmUpdate{
		CCode:         *profile.CustomerCode,
		InvNo:         invNo,
		TotalAmount:   total,
		CourierAmount: courierAmount,
		NetAmount:     net,
		PaymentMode:   mode,
		Date:          now.Truncate(24 * time.Hour),
		Time:          now.Format("15:04:05"),
	}

	affected, err := s.repo.ConfirmCart(ctx, orderNo, upd)
	if err != nil && dbclient.IsUniqueViolation(err, "carts_inv_no_key") {
		// Another confirmation landed the same invoice number first; one
		// fresh candidate, then the constraint decides.
		invNo, err = codes.Generate(ctx, codes.PrefixInvoice, s.repo.InvoiceNoExists)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "allocating invoice number")
		}
		upd.InvNo = invNo
		affected, err = s.repo.ConfirmCart(ctx, orderNo, upd)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirming order")
	}
	if affected == 0 {
		// Lost the race to a concurrent confirmation; serve its result.
		fresh, err := s.repo.GetCartByOrderNo(ctx, orderNo)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading cart")
		}
		if fresh == nil || !fresh.DeliveryStatus.IsConfirmed() {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order confirmation did not apply")
		}
		return replayResult(fresh), nil
	}

	return &ConfirmResult{
		Message:        "order confirmed",
		OrderNo:        orderNo,
		InvNo:          invNo,
		TotalAmount:    total,
		CourierAmount:  courierAmount,
		NetAmount:      net,
		Discount:       cart.Discount,
		PaymentMode:    mode,
		DeliveryStatus: enums.DeliveryStatusOrdered,
	}, nil
}

func replayResult(cart *models.Cart) *ConfirmResult {
	res := &ConfirmResult{
		AlreadyConfirmed: true,
		Message:          "order already confirmed",
		OrderNo:          cart.OrderNo,
		TotalAmount:      cart.TotalAmount,
		CourierAmount:    cart.CourierAmount,
		NetAmount:        cart.NetAmount,
		Discount:         cart.Discount,
		DeliveryStatus:   cart.DeliveryStatus,
	}
	if cart.InvNo != nil {
		res.InvNo = *cart.InvNo
	}
	if cart.PaymentMode != nil {
		res.PaymentMode = *cart.PaymentMode
	}
	return res
}

// AdminOrderList is one page of the back-office order feed. NextCursor is
// empty on the last page.
type AdminOrderList struct {
	Orders     []AdminOrder
	NextCursor string
}

// ListConfirmed returns orders that have left the draft state, newest first,
// keyset-paginated on (created_at, id).
func (s *service) ListConfirmed(ctx context.Context, params pagination.Params) (*AdminOrderList, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	carts, err := s.repo.ListConfirmed(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}

	list := &AdminOrderList{}
	if len(carts) > limit {
		carts = carts[:limit]
		last := carts[len(carts)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	list.Orders = make([]AdminOrder, 0, len(carts))
	for i := range carts {
		list.Orders = append(list.Orders, toAdminOrder(&carts[i]))
	}
	return list, nil
}

// GetConfirmed returns one confirmed order by its order number.
func (s *service) GetConfirmed(ctx context.Context, orderNo string) (*AdminOrder, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order_no is required")
	}

	cart, err := s.repo.GetConfirmedByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	if cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}

	order := toAdminOrder(cart)
	return &order, nil
}

func toAdminOrder(cart *models.Cart) AdminOrder {
	order := AdminOrder{
		OrderNo:       cart.OrderNo,
		TotalAmount:   cart.TotalAmount,
		CourierAmount: cart.CourierAmount,
		NetAmount:     cart.NetAmount,
		Discount:      cart.Discount,
		OrderStatus:   cart.DeliveryStatus,
		Date:          cart.Date,
		Time:          cart.Time,
	}
	if cart.InvNo != nil {
		order.InvNo = *cart.InvNo
	}
	if cart.CCode != nil {
		order.CustomerCode = *cart.CCode
	}
	if cart.PaymentMode != nil {
		order.PaymentMode = *cart.PaymentMode
		order.PaymentStatus = enums.PaymentStatusFor(*cart.PaymentMode)
	} else {
		order.PaymentStatus = enums.PaymentStatusPending
	}
	return order
}
