package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	"github.com/pharmacart/pharmacart-backend/pkg/pagination"
)

// ConfirmUpdate carries the fields written by the CART -> ORDERED transition.
// CCode stamps the confirming customer onto the cart, claiming carts that
// were opened anonymously.
type ConfirmUpdate struct {
	CCode         string
	InvNo         string
	TotalAmount   decimal.Decimal
	CourierAmount decimal.Decimal
	NetAmount     decimal.Decimal
	PaymentMode   enums.PaymentMode
	Date          time.Time
	Time          string
}

// Repository exposes order persistence. ConfirmCart is the only write: a
// single conditional UPDATE whose affected-row count tells the service
// whether this request won the transition.
type Repository interface {
	GetCartByOrderNo(ctx context.Context, orderNo string) (*models.Cart, error)
	ListLines(ctx context.Context, cartID uuid.UUID) ([]models.OrderItem, error)
	InvoiceNoExists(ctx context.Context, invNo string) (bool, error)
	ConfirmCart(ctx context.Context, orderNo string, upd ConfirmUpdate) (int64, error)
	ListConfirmed(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Cart, error)
	GetConfirmedByOrderNo(ctx context.Context, orderNo string) (*models.Cart, error)
}

type gormRepo struct {
	client *dbclient.Client
}

// NewRepository builds the GORM-backed orders repository.
func NewRepository(client *dbclient.Client) (Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &gormRepo{client: client}, nil
}

func (r *gormRepo) GetCartByOrderNo(ctx context.Context, orderNo string) (*models.Cart, error) {
	var cart models.Cart
	err := r.client.DB().WithContext(ctx).
		Where("order_no = ?", orderNo).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormRepo) ListLines(ctx context.Context, cartID uuid.UUID) ([]models.OrderItem, error) {
	var lines []models.OrderItem
	err := r.client.DB().WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

func (r *gormRepo) InvoiceNoExists(ctx context.Context, invNo string) (bool, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Cart{}).
		Where("inv_no = ?", invNo).
		Count(&count).Error
	return count > 0, err
}

// ConfirmCart performs the atomic conditional transition. The WHERE clause
// on delivery_status makes concurrent confirmations race-free: exactly one
// request observes RowsAffected == 1.
func (r *gormRepo) ConfirmCart(ctx context.Context, orderNo string, upd ConfirmUpdate) (int64, error) {
	res := r.client.DB().WithContext(ctx).
		Model(&models.Cart{}).
		Where("order_no = ? AND delivery_status = ?", orderNo, enums.DeliveryStatusCart).
		Updates(map[string]any{
			"delivery_status": enums.DeliveryStatusOrdered,
			"ccode":           upd.CCode,
			"inv_no":          upd.InvNo,
			"total_amount":    upd.TotalAmount,
			"courier_amount":  upd.CourierAmount,
			"net_amount":      upd.NetAmount,
			"payment_mode":    upd.PaymentMode,
			"date":            upd.Date,
			"time":            upd.Time,
		})
	return res.RowsAffected, res.Error
}

func (r *gormRepo) ListConfirmed(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Cart, error) {
	query := r.client.DB().WithContext(ctx).
		Where("delivery_status <> ?", enums.DeliveryStatusCart)
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var carts []models.Cart
	err := query.Order("created_at DESC, id DESC").Find(&carts).Error
	return carts, err
}

func (r *gormRepo) GetConfirmedByOrderNo(ctx context.Context, orderNo string) (*models.Cart, error) {
	var cart models.Cart
	err := r.client.DB().WithContext(ctx).
		Where("order_no = ? AND delivery_status <> ?", orderNo, enums.DeliveryStatusCart).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
