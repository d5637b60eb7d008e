package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/pkg/codes"
	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/pricing"
)

// Service exposes the cart line operations. Every mutation is keyed by
// (order number, product code) and resolves the cart before the product
// before the line, so each missing entity reports its own 404.
type Service interface {
	Create(ctx context.Context, ccode *string) (*models.Cart, error)
	AddItem(ctx context.Context, orderNo, mcode string, qty int) (*models.OrderItem, bool, error)
	Increment(ctx context.Context, orderNo, mcode string) (*models.OrderItem, error)
	Decrement(ctx context.Context, orderNo, mcode string) (*models.OrderItem, error)
	DeleteItem(ctx context.Context, orderNo, mcode string) error
	Summary(ctx context.Context, orderNo string) (*CartSummary, error)
}

type service struct {
	repo Repository
}

// NewService builds the cart service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	return &service{repo: repo}, nil
}

// CartSummary is the read model returned for a whole cart.
type CartSummary struct {
	OrderNo        string
	DeliveryStatus string
	Lines          []models.OrderItem
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal
}

// Create opens a fresh cart with a generated order number. The unique
// constraint on order_no is the authority; one retry covers the narrow
// window between the existence check and the insert.
func (s *service) Create(ctx context.Context, ccode *string) (*models.Cart, error) {
	cart, err := s.insertCart(ctx, ccode)
	if err != nil && dbclient.IsUniqueViolation(err, "carts_order_no_key") {
		cart, err = s.insertCart(ctx, ccode)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	return cart, nil
}

func (s *service) insertCart(ctx context.Context, ccode *string) (*models.Cart, error) {
	orderNo, err := codes.Generate(ctx, codes.PrefixOrder, s.repo.OrderNoExists)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	date := now.Truncate(24 * time.Hour)
	clock := now.Format("15:04:05")

	cart := &models.Cart{
		OrderNo: orderNo,
		Date:    &date,
		Time:    &clock,
		CCode:   ccode,
	}
	if err := s.repo.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem upserts the line for (cart, product). An existing line has its
// quantity overwritten and its rate re-resolved from the catalog; the
// second return value reports whether the line was newly created.
func (s *service) AddItem(ctx context.Context, orderNo, mcode string, qty int) (*models.OrderItem, bool, error) {
	if qty < 1 {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}

	cart, product, err := s.resolveCartAndProduct(ctx, orderNo, mcode)
	if err != nil {
		return nil, false, err
	}

	rate := pricing.Rate(product.MRP, product.SellDiscount)

	line, err := s.repo.GetLine(ctx, cart.ID, product.MCode)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
	}

	created := line == nil
	if created {
		line = &models.OrderItem{
			CartID:   cart.ID,
			ItemCode: product.MCode,
		}
	}
	line.Qty = qty
	line.Rate = rate
	line.Amt = pricing.LineAmount(qty, rate)

	if err := s.repo.SaveLine(ctx, line); err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart line")
	}
	return line, created, nil
}

// Increment bumps the quantity by one at the stored rate. The catalog is
// not consulted, preserving the price locked at add time.
func (s *service) Increment(ctx context.Context, orderNo, mcode string) (*models.OrderItem, error) {
	line, err := s.resolveLine(ctx, orderNo, mcode)
	if err != nil {
		return nil, err
	}

	line.Qty++
	line.Amt = pricing.LineAmount(line.Qty, line.Rate)

	if err := s.repo.SaveLine(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart line")
	}
	return line, nil
}

// Decrement drops the quantity by one. A line at quantity 1 cannot be
// decremented; the caller must delete it instead.
func (s *service) Decrement(ctx context.Context, orderNo, mcode string) (*models.OrderItem, error) {
	line, err := s.resolveLine(ctx, orderNo, mcode)
	if err != nil {
		return nil, err
	}

	if line.Qty <= 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty cannot go below 1, delete the item instead")
	}

	line.Qty--
	line.Amt = pricing.LineAmount(line.Qty, line.Rate)

	if err := s.repo.SaveLine(ctx, line); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving cart line")
	}
	return line, nil
}

// DeleteItem removes the line entirely.
func (s *service) DeleteItem(ctx context.Context, orderNo, mcode string) error {
	line, err := s.resolveLine(ctx, orderNo, mcode)
	if err != nil {
		return err
	}

	affected, err := s.repo.DeleteLine(ctx, line.CartID, line.ItemCode)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting cart line")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	return nil
}

// Summary returns the cart lines with subtotal, cart discount, and total.
func (s *service) Summary(ctx context.Context, orderNo string) (*CartSummary, error) {
	cart, err := s.resolveCart(ctx, orderNo)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.ListLines(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing cart lines")
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Amt)
	}

	return &CartSummary{
		OrderNo:        cart.OrderNo,
		DeliveryStatus: cart.DeliveryStatus.String(),
		Lines:          lines,
		Subtotal:       subtotal,
		Discount:       cart.Discount,
		Total:          subtotal.Sub(cart.Discount),
	}, nil
}

func (s *service) resolveCart(ctx context.Context, orderNo string) (*models.Cart, error) {
	orderNo = strings.TrimSpace(orderNo)
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
	return cart, nil
}

func (s *service) resolveCartAndProduct(ctx context.Context, orderNo, mcode string) (*models.Cart, *models.MedicalItem, error) {
	cart, err := s.resolveCart(ctx, orderNo)
	if err != nil {
		return nil, nil, err
	}

	mcode = strings.TrimSpace(mcode)
	if mcode == "" {
		return nil, nil, pkgerrors.New(pkgerrors.CodeValidation, "mcode is required")
	}
	product, err := s.repo.GetProductByCode(ctx, mcode)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return cart, product, nil
}

func (s *service) resolveLine(ctx context.Context, orderNo, mcode string) (*models.OrderItem, error) {
	cart, product, err := s.resolveCartAndProduct(ctx, orderNo, mcode)
	if err != nil {
		return nil, err
	}

	line, err := s.repo.GetLine(ctx, cart.ID, product.MCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart line")
	}
	if line == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart")
	}
	return line, nil
}
