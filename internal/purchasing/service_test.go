package purchasing

import (
	"context"
	"errors"
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
	orders    []*models.PurchaseOrder
	suppliers map[uuid.UUID]bool

	createErr   error // returned once, then cleared
	createCalls int
}

func (r *stubRepo) PONoExists(_ context.Context, poNo string) (bool, error) {
	for _, po := range r.orders {
		if po.PurchaseOrderNo == poNo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreatePurchaseOrder(_ context.Context, po *models.PurchaseOrder) error {
	r.createCalls++
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	po.ID = uuid.New()
	for i := range po.Items {
		po.Items[i].PurchaseOrderID = po.ID
	}
	r.orders = append(r.orders, po)
	return nil
}

func (r *stubRepo) GetPurchaseOrderByNo(_ context.Context, poNo string) (*models.PurchaseOrder, error) {
	for _, po := range r.orders {
		if po.PurchaseOrderNo == poNo {
			return po, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SavePurchaseOrder(_ context.Context, po *models.PurchaseOrder) error {
	for i, existing := range r.orders {
		if existing.ID == po.ID {
			po.Items = existing.Items
			r.orders[i] = po
		}
	}
	return nil
}

func (r *stubRepo) ReplacePurchaseOrderItems(_ context.Context, poID uuid.UUID, items []models.PurchaseOrderItem) error {
	for i := range items {
		items[i].PurchaseOrderID = poID
	}
	for _, po := range r.orders {
		if po.ID == poID {
			po.Items = items
		}
	}
	return nil
}

func (r *stubRepo) DeletePurchaseOrder(_ context.Context, id uuid.UUID) error {
	for i, po := range r.orders {
		if po.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListPurchaseOrders(_ context.Context) ([]models.PurchaseOrder, error) {
	var out []models.PurchaseOrder
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, *r.orders[i])
	}
	return out, nil
}

func (r *stubRepo) SupplierExists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.suppliers[id], nil
}

type fixture struct {
	svc        Service
	repo       *stubRepo
	supplierID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	supplierID := uuid.New()
	repo := &stubRepo{suppliers: map[uuid.UUID]bool{supplierID: true}}
	svc, err := NewService(repo)
	require.NoError(t, err)
	return &fixture{svc: svc, repo: repo, supplierID: supplierID}
}

func assertCode(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func str(s string) *string { return &s }

func lineItem(name string, qty int) models.PurchaseOrderItem {
	return models.PurchaseOrderItem{
		SKUName:      str(name),
		SKUCode:      str("SKU-" + name),
		Unit:         str("strip"),
		FullQuantity: qty,
	}
}

func TestCreatePurchaseOrder(t *testing.T) {
	f := newFixture(t)

	po, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Items:      []models.PurchaseOrderItem{lineItem("Paracetamol", 100), lineItem("Ibuprofen", 40)},
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^PO\d{10}$`), po.PurchaseOrderNo)
	assert.Equal(t, enums.PurchaseOrderStatusIssued, po.Status)
	assert.False(t, po.Date.IsZero())
	require.Len(t, po.Items, 2)
	assert.Equal(t, po.ID, po.Items[0].PurchaseOrderID)
}

func TestCreateRequiresSupplier(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{})
	assertCode(t, err, pkgerrors.CodeValidation, "supplier_id is required")

	_, err = f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: uuid.New(),
	})
	assertCode(t, err, pkgerrors.CodeNotFound, "supplier not found")
}

func TestCreateRejectsInvalidStatus(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Status:     enums.PurchaseOrderStatus("delivered"),
	})
	assertCode(t, err, pkgerrors.CodeValidation, "invalid purchase order status")
}

func TestCreateRejectsInvalidItemType(t *testing.T) {
	f := newFixture(t)

	bad := enums.PurchaseItemType("schedule9")
	item := lineItem("Paracetamol", 10)
	item.ItemType = &bad

	_, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Items:      []models.PurchaseOrderItem{item},
	})
	assertCode(t, err, pkgerrors.CodeValidation, "invalid purchase item type")
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Items:      []models.PurchaseOrderItem{lineItem("Paracetamol", -1)},
	})
	assertCode(t, err, pkgerrors.CodeValidation, "quantities cannot be negative")
}

func TestCreateRetriesOnPONoCollision(t *testing.T) {
	f := newFixture(t)
	f.repo.createErr = errors.New(`duplicate key value violates unique constraint "purchase_orders_po_no_key"`)

	po, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.createCalls)
	assert.Regexp(t, regexp.MustCompile(`^PO\d{10}$`), po.PurchaseOrderNo)
}

func TestUpdateReplacesItemSet(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Items:      []models.PurchaseOrderItem{lineItem("Paracetamol", 100), lineItem("Ibuprofen", 40)},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdatePurchaseOrder(context.Background(), created.PurchaseOrderNo, &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Status:     enums.PurchaseOrderStatusPartiallyDelived,
		Items:      []models.PurchaseOrderItem{lineItem("Paracetamol", 100)},
	})
	require.NoError(t, err)

	assert.Equal(t, created.PurchaseOrderNo, updated.PurchaseOrderNo)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, enums.PurchaseOrderStatusPartiallyDelived, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "Paracetamol", *updated.Items[0].SKUName)

	stored, err := f.svc.GetPurchaseOrder(context.Background(), created.PurchaseOrderNo)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)
}

func TestUpdateKeepsStatusWhenOmitted(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Status:     enums.PurchaseOrderStatusFullDelived,
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdatePurchaseOrder(context.Background(), created.PurchaseOrderNo, &models.PurchaseOrder{
		SupplierID: f.supplierID,
		Remarks:    str("recount pending"),
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PurchaseOrderStatusFullDelived, updated.Status)
}

func TestGetUnknownPurchaseOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetPurchaseOrder(context.Background(), "PO0000000000")
	assertCode(t, err, pkgerrors.CodeNotFound, "purchase order not found")

	_, err = f.svc.GetPurchaseOrder(context.Background(), "  ")
	assertCode(t, err, pkgerrors.CodeValidation, "purchase_order_no is required")
}

func TestDeletePurchaseOrder(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{
		SupplierID: f.supplierID,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePurchaseOrder(context.Background(), created.PurchaseOrderNo))

	_, err = f.svc.GetPurchaseOrder(context.Background(), created.PurchaseOrderNo)
	assertCode(t, err, pkgerrors.CodeNotFound, "purchase order not found")
}

func TestListPurchaseOrdersNewestFirst(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{SupplierID: f.supplierID})
	require.NoError(t, err)
	second, err := f.svc.CreatePurchaseOrder(context.Background(), &models.PurchaseOrder{SupplierID: f.supplierID})
	require.NoError(t, err)

	orders, err := f.svc.ListPurchaseOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.PurchaseOrderNo, orders[0].PurchaseOrderNo)
	assert.Equal(t, first.PurchaseOrderNo, orders[1].PurchaseOrderNo)
}
