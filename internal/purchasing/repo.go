package purchasing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
)

// Repository exposes purchase order persistence. Line items are owned by
// their order and replaced as a set.
type Repository interface {
	PONoExists(ctx context.Context, poNo string) (bool, error)
	CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error
	GetPurchaseOrderByNo(ctx context.Context, poNo string) (*models.PurchaseOrder, error)
	SavePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error
	ReplacePurchaseOrderItems(ctx context.Context, poID uuid.UUID, items []models.PurchaseOrderItem) error
	DeletePurchaseOrder(ctx context.Context, id uuid.UUID) error
	ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error)
	SupplierExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type gormRepo struct {
	client *dbclient.Client
}

// NewRepository builds the GORM-backed purchasing repository.
func NewRepository(client *dbclient.Client) (Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &gormRepo{client: client}, nil
}

func (r *gormRepo) db(ctx context.Context) *gorm.DB {
	return r.client.DB().WithContext(ctx)
}

func (r *gormRepo) PONoExists(ctx context.Context, poNo string) (bool, error) {
	var count int64
	err := r.db(ctx).Model(&models.PurchaseOrder{}).
		Where("purchase_order_no = ?", poNo).
		Count(&count).Error
	return count > 0, err
}

func (r *gormRepo) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	return r.db(ctx).Omit("Supplier").Create(po).Error
}

func (r *gormRepo) GetPurchaseOrderByNo(ctx context.Context, poNo string) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := r.db(ctx).
		Preload("Items").
		Preload("Supplier").
		Where("purchase_order_no = ?", poNo).
		First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *gormRepo) SavePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) error {
	return r.db(ctx).Omit("Items", "Supplier").Save(po).Error
}

func (r *gormRepo) ReplacePurchaseOrderItems(ctx context.Context, poID uuid.UUID, items []models.PurchaseOrderItem) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", poID).
			Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = uuid.Nil
			items[i].PurchaseOrderID = poID
		}
		return tx.Create(&items).Error
	})
}

func (r *gormRepo) DeletePurchaseOrder(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Select("Items").Delete(&models.PurchaseOrder{ID: id}).Error
}

func (r *gormRepo) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db(ctx).
		Preload("Items").
		Preload("Supplier").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *gormRepo) SupplierExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db(ctx).Model(&models.Supplier{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
