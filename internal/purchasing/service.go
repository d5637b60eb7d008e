package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/codes"
	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
)

// Service manages supplier purchase orders. Updates replace the line item
// set wholesale; there is no per-line edit.
type Service interface {
	CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*models.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, poNo string) (*models.PurchaseOrder, error)
	UpdatePurchaseOrder(ctx context.Context, poNo string, updated *models.PurchaseOrder) (*models.PurchaseOrder, error)
	DeletePurchaseOrder(ctx context.Context, poNo string) error
	ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error)
}

type service struct {
	repo Repository
}

// NewService builds the purchasing service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("purchasing repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) validate(ctx context.Context, po *models.PurchaseOrder) error {
	if po.SupplierID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "supplier_id is required")
	}
	exists, err := s.repo.SupplierExists(ctx, po.SupplierID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking supplier")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	if po.Status != "" && !po.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid purchase order status")
	}
	for _, item := range po.Items {
		if item.ItemType != nil && !item.ItemType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid purchase item type")
		}
		if item.FullQuantity < 0 || item.ActualQuantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantities cannot be negative")
		}
	}
	return nil
}

func (s *service) CreatePurchaseOrder(ctx context.Context, po *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	if err := s.validate(ctx, po); err != nil {
		return nil, err
	}
	if po.Status == "" {
		po.Status = enums.PurchaseOrderStatusIssued
	}
	if po.Date.IsZero() {
		po.Date = time.Now()
	}

	create := func() error {
		poNo, err := codes.Generate(ctx, codes.PrefixPurchase, s.repo.PONoExists)
		if err != nil {
			return err
		}
		po.PurchaseOrderNo = poNo
		return s.repo.CreatePurchaseOrder(ctx, po)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "purchase_orders_po_no_key") {
		err = create()
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating purchase order")
	}
	return po, nil
}

func (s *service) GetPurchaseOrder(ctx context.Context, poNo string) (*models.PurchaseOrder, error) {
	poNo = strings.TrimSpace(poNo)
	if poNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase_order_no is required")
	}
	po, err := s.repo.GetPurchaseOrderByNo(ctx, poNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading purchase order")
	}
	if po == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
	}
	return po, nil
}

func (s *service) UpdatePurchaseOrder(ctx context.Context, poNo string, updated *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	existing, err := s.GetPurchaseOrder(ctx, poNo)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, updated); err != nil {
		return nil, err
	}
	if updated.Status == "" {
		updated.Status = existing.Status
	}
	if updated.Date.IsZero() {
		updated.Date = existing.Date
	}

	items := updated.Items
	updated.ID = existing.ID
	updated.PurchaseOrderNo = existing.PurchaseOrderNo
	updated.CreatedAt = existing.CreatedAt
	updated.Items = nil
	updated.Supplier = nil

	if err := s.repo.SavePurchaseOrder(ctx, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving purchase order")
	}
	if err := s.repo.ReplacePurchaseOrderItems(ctx, existing.ID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing purchase order items")
	}
	updated.Items = items
	return updated, nil
}

func (s *service) DeletePurchaseOrder(ctx context.Context, poNo string) error {
	existing, err := s.GetPurchaseOrder(ctx, poNo)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePurchaseOrder(ctx, existing.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting purchase order")
	}
	return nil
}

func (s *service) ListPurchaseOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	orders, err := s.repo.ListPurchaseOrders(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing purchase orders")
	}
	return orders, nil
}
