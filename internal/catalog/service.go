package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/codes"
	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
)

// Service owns code allocation and CRUD for the catalog. Callers hand in
// populated models; the service assigns codes and enforces existence.
type Service interface {
	CreateMedicalItem(ctx context.Context, item *models.MedicalItem) (*models.MedicalItem, error)
	GetMedicalItem(ctx context.Context, mcode string) (*models.MedicalItem, error)
	UpdateMedicalItem(ctx context.Context, mcode string, updated *models.MedicalItem) (*models.MedicalItem, error)
	DeleteMedicalItem(ctx context.Context, mcode string) error
	ListMedicalItems(ctx context.Context, catcode *string) ([]models.MedicalItem, error)

	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	GetItem(ctx context.Context, itemCode string) (*models.Item, error)
	UpdateItem(ctx context.Context, itemCode string, updated *models.Item) (*models.Item, error)
	DeleteItem(ctx context.Context, itemCode string) error
	ListItems(ctx context.Context) ([]models.Item, error)

	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	GetCategory(ctx context.Context, catcode string) (*models.Category, error)
	UpdateCategory(ctx context.Context, catcode string, updated *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, catcode string) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateMedicine(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error)
	GetMedicine(ctx context.Context, code string) (*models.Medicine, error)
	UpdateMedicine(ctx context.Context, code string, updated *models.Medicine) (*models.Medicine, error)
	DeleteMedicine(ctx context.Context, code string) error
	ListMedicines(ctx context.Context, catcode *string) ([]models.Medicine, error)

	CreateSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error)
	GetSupplier(ctx context.Context, code string) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, code string, updated *models.Supplier) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, code string) error
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)

	CreateCoupon(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error)
	GetCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id uuid.UUID, updated *models.Coupon) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context) ([]models.Coupon, error)

	CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error)
	GetCompany(ctx context.Context, code string) (*models.Company, error)
	UpdateCompany(ctx context.Context, code string, updated *models.Company) (*models.Company, error)
	DeleteCompany(ctx context.Context, code string) error
	ListCompanies(ctx context.Context) ([]models.Company, error)

	CreateBranch(ctx context.Context, branch *models.Branch) (*models.Branch, error)
	GetBranch(ctx context.Context, code string) (*models.Branch, error)
	UpdateBranch(ctx context.Context, code string, updated *models.Branch) (*models.Branch, error)
	DeleteBranch(ctx context.Context, code string) error
	ListBranches(ctx context.Context) ([]models.Branch, error)

	CreateStaff(ctx context.Context, staff *models.Staff) (*models.Staff, error)
	GetStaff(ctx context.Context, code string) (*models.Staff, error)
	UpdateStaff(ctx context.Context, code string, updated *models.Staff) (*models.Staff, error)
	DeleteStaff(ctx context.Context, code string) error
	ListStaff(ctx context.Context) ([]models.Staff, error)

	CreateDoctor(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error)
	GetDoctor(ctx context.Context, code string) (*models.Doctor, error)
	UpdateDoctor(ctx context.Context, code string, updated *models.Doctor) (*models.Doctor, error)
	DeleteDoctor(ctx context.Context, code string) error
	ListDoctors(ctx context.Context) ([]models.Doctor, error)

	CreatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error)
	GetPatient(ctx context.Context, code string) (*models.Patient, error)
	UpdatePatient(ctx context.Context, code string, updated *models.Patient) (*models.Patient, error)
	DeletePatient(ctx context.Context, code string) error
	ListPatients(ctx context.Context) ([]models.Patient, error)
}

type service struct {
	repo Repository
}

// NewService builds the catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// nextSequential allocates the next natural-number code. The unique
// constraint is the authority; on collision the caller re-reads and
// retries once.
func (s *service) nextSequential(ctx context.Context, last func(context.Context) (string, error)) (string, error) {
	latest, err := last(ctx)
	if err != nil {
		return "", err
	}
	return codes.NextSequential(latest), nil
}

func requireCode(code, field string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
	}
	return code, nil
}

func notFound(entity string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
}

func internal(err error, message string) error {
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}

func (s *service) CreateMedicalItem(ctx context.Context, item *models.MedicalItem) (*models.MedicalItem, error) {
	if strings.TrimSpace(item.SKUName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku_name is required")
	}
	if strings.TrimSpace(item.SKUCode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku_code is required")
	}

	create := func() error {
		mcode, err := s.nextSequential(ctx, s.repo.LastMCode)
		if err != nil {
			return err
		}
		item.MCode = mcode
		return s.repo.CreateMedicalItem(ctx, item)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "medical_items_mcode_key") {
		err = create()
	}
	if err != nil {
		if dbclient.IsUniqueViolation(err, "medical_items_sku_code_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku_code already in use")
		}
		return nil, internal(err, "creating product")
	}
	return item, nil
}

func (s *service) GetMedicalItem(ctx context.Context, mcode string) (*models.MedicalItem, error) {
	mcode, err := requireCode(mcode, "mcode")
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetMedicalItemByMCode(ctx, mcode)
	if err != nil {
		return nil, internal(err, "loading product")
	}
	if item == nil {
		return nil, notFound("product")
	}
	return item, nil
}

func (s *service) UpdateMedicalItem(ctx context.Context, mcode string, updated *models.MedicalItem) (*models.MedicalItem, error) {
	existing, err := s.GetMedicalItem(ctx, mcode)
	if err != nil {
		return nil, err
	}

	media := updated.Media
	updated.ID = existing.ID
	updated.MCode = existing.MCode
	updated.CreatedAt = existing.CreatedAt
	updated.Media = nil

	if err := s.repo.SaveMedicalItem(ctx, updated); err != nil {
		return nil, internal(err, "saving product")
	}
	if err := s.repo.ReplaceMedicalItemMedia(ctx, existing.ID, media); err != nil {
		return nil, internal(err, "saving product media")
	}
	updated.Media = media
	return updated, nil
}

func (s *service) DeleteMedicalItem(ctx context.Context, mcode string) error {
	existing, err := s.GetMedicalItem(ctx, mcode)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMedicalItem(ctx, existing.ID); err != nil {
		return internal(err, "deleting product")
	}
	return nil
}

func (s *service) ListMedicalItems(ctx context.Context, catcode *string) ([]models.MedicalItem, error) {
	items, err := s.repo.ListMedicalItems(ctx, catcode)
	if err != nil {
		return nil, internal(err, "listing products")
	}
	return items, nil
}

func (s *service) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.SKUName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku_name is required")
	}

	create := func() error {
		itemCode, err := s.nextSequential(ctx, s.repo.LastItemCode)
		if err != nil {
			return err
		}
		item.ItemCode = itemCode
		return s.repo.CreateItem(ctx, item)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "items_item_code_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating item")
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, itemCode string) (*models.Item, error) {
	itemCode, err := requireCode(itemCode, "item_code")
	if err != nil {
		return nil, err
	}
	item, err := s.repo.GetItemByCode(ctx, itemCode)
	if err != nil {
		return nil, internal(err, "loading item")
	}
	if item == nil {
		return nil, notFound("item")
	}
	return item, nil
}

func (s *service) UpdateItem(ctx context.Context, itemCode string, updated *models.Item) (*models.Item, error) {
	existing, err := s.GetItem(ctx, itemCode)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.ItemCode = existing.ItemCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveItem(ctx, updated); err != nil {
		return nil, internal(err, "saving item")
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, itemCode string) error {
	existing, err := s.GetItem(ctx, itemCode)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, existing.ID); err != nil {
		return internal(err, "deleting item")
	}
	return nil
}

func (s *service) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, internal(err, "listing items")
	}
	return items, nil
}

func (s *service) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if strings.TrimSpace(category.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	create := func() error {
		catcode, err := s.nextSequential(ctx, s.repo.LastCatCode)
		if err != nil {
			return err
		}
		category.CatCode = catcode
		return s.repo.CreateCategory(ctx, category)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "categories_catcode_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating category")
	}
	return category, nil
}

func (s *service) GetCategory(ctx context.Context, catcode string) (*models.Category, error) {
	catcode, err := requireCode(catcode, "catcode")
	if err != nil {
		return nil, err
	}
	category, err := s.repo.GetCategoryByCode(ctx, catcode)
	if err != nil {
		return nil, internal(err, "loading category")
	}
	if category == nil {
		return nil, notFound("category")
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, catcode string, updated *models.Category) (*models.Category, error) {
	existing, err := s.GetCategory(ctx, catcode)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CatCode = existing.CatCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveCategory(ctx, updated); err != nil {
		return nil, internal(err, "saving category")
	}
	return updated, nil
}

func (s *service) DeleteCategory(ctx context.Context, catcode string) error {
	existing, err := s.GetCategory(ctx, catcode)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCategory(ctx, existing.ID); err != nil {
		return internal(err, "deleting category")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, internal(err, "listing categories")
	}
	return categories, nil
}

func (s *service) CreateMedicine(ctx context.Context, medicine *models.Medicine) (*models.Medicine, error) {
	if strings.TrimSpace(medicine.SKUName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku_name is required")
	}

	create := func() error {
		code, err := codes.Generate(ctx, codes.PrefixMedicine, s.repo.MedicineCodeExists)
		if err != nil {
			return err
		}
		medicine.MedicineCode = code
		return s.repo.CreateMedicine(ctx, medicine)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "medicines_medicine_code_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating medicine")
	}
	return medicine, nil
}

func (s *service) GetMedicine(ctx context.Context, code string) (*models.Medicine, error) {
	code, err := requireCode(code, "medicine_code")
	if err != nil {
		return nil, err
	}
	medicine, err := s.repo.GetMedicineByCode(ctx, code)
	if err != nil {
		return nil, internal(err, "loading medicine")
	}
	if medicine == nil {
		return nil, notFound("medicine")
	}
	return medicine, nil
}

func (s *service) UpdateMedicine(ctx context.Context, code string, updated *models.Medicine) (*models.Medicine, error) {
	existing, err := s.GetMedicine(ctx, code)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.MedicineCode = existing.MedicineCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveMedicine(ctx, updated); err != nil {
		return nil, internal(err, "saving medicine")
	}
	return updated, nil
}

func (s *service) DeleteMedicine(ctx context.Context, code string) error {
	existing, err := s.GetMedicine(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteMedicine(ctx, existing.ID); err != nil {
		return internal(err, "deleting medicine")
	}
	return nil
}

func (s *service) ListMedicines(ctx context.Context, catcode *string) ([]models.Medicine, error) {
	medicines, err := s.repo.ListMedicines(ctx, catcode)
	if err != nil {
		return nil, internal(err, "listing medicines")
	}
	return medicines, nil
}
