package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
)

// Repository exposes cart and line persistence. Lookups return (nil, nil)
// when the record does not exist; the service maps that to the right 404.
type Repository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByOrderNo(ctx context.Context, orderNo string) (*models.Cart, error)
	OrderNoExists(ctx context.Context, orderNo string) (bool, error)
	GetProductByCode(ctx context.Context, mcode string) (*models.MedicalItem, error)
	GetLine(ctx context.Context, cartID uuid.UUID, itemCode string) (*models.OrderItem, error)
	SaveLine(ctx context.Context, line *models.OrderItem) error
	DeleteLine(ctx context.Context, cartID uuid.UUID, itemCode string) (int64, error)
	ListLines(ctx context.Context, cartID uuid.UUID) ([]models.OrderItem, error)
}

type gormRepo struct {
	client *dbclient.Client
}

// NewRepository builds the GORM-backed cart repository.
func NewRepository(client *dbclient.Client) (Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &gormRepo{client: client}, nil
}

func (r *gormRepo) CreateCart(ctx context.Context, cart *models.Cart) error {
	return r.client.DB().WithContext(ctx).Create(cart).Error
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

func (r *gormRepo) OrderNoExists(ctx context.Context, orderNo string) (bool, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.Cart{}).
		Where("order_no = ?", orderNo).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepo) GetProductByCode(ctx context.Context, mcode string) (*models.MedicalItem, error) {
	var item models.MedicalItem
	err := r.client.DB().WithContext(ctx).
		Where("mcode = ?", mcode).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormRepo) GetLine(ctx context.Context, cartID uuid.UUID, itemCode string) (*models.OrderItem, error) {
	var line models.OrderItem
	err := r.client.DB().WithContext(ctx).
		Where("cart_id = ? AND item_code = ?", cartID, itemCode).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *gormRepo) SaveLine(ctx context.Context, line *models.OrderItem) error {
	return r.client.DB().WithContext(ctx).Save(line).Error
}

func (r *gormRepo) DeleteLine(ctx context.Context, cartID uuid.UUID, itemCode string) (int64, error) {
	res := r.client.DB().WithContext(ctx).
		Where("cart_id = ? AND item_code = ?", cartID, itemCode).
		Delete(&models.OrderItem{})
	return res.RowsAffected, res.Error
}

func (r *gormRepo) ListLines(ctx context.Context, cartID uuid.UUID) ([]models.OrderItem, error) {
	var lines []models.OrderItem
	err := r.client.DB().WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}
