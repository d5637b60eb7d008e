package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
)

// Repository exposes catalog persistence for storefront products and the
// back-office master records.
type Repository interface {
	// storefront products, sequentially coded
	LastMCode(ctx context.Context) (string, error)
	CreateMedicalItem(ctx context.Context, item *models.MedicalItem) error
	GetMedicalItemByMCode(ctx context.Context, mcode string) (*models.MedicalItem, error)
	SaveMedicalItem(ctx context.Context, item *models.MedicalItem) error
	ReplaceMedicalItemMedia(ctx context.Context, itemID uuid.UUID, media *models.MedicalItemMedia) error
	DeleteMedicalItem(ctx context.Context, id uuid.UUID) error
	ListMedicalItems(ctx context.Context, catcode *string) ([]models.MedicalItem, error)

	LastItemCode(ctx context.Context) (string, error)
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByCode(ctx context.Context, itemCode string) (*models.Item, error)
	SaveItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
	ListItems(ctx context.Context) ([]models.Item, error)

	LastCatCode(ctx context.Context) (string, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByCode(ctx context.Context, catcode string) (*models.Category, error)
	SaveCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	MedicineCodeExists(ctx context.Context, code string) (bool, error)
	CreateMedicine(ctx context.Context, medicine *models.Medicine) error
	GetMedicineByCode(ctx context.Context, code string) (*models.Medicine, error)
	SaveMedicine(ctx context.Context, medicine *models.Medicine) error
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
	ListMedicines(ctx context.Context, catcode *string) ([]models.Medicine, error)

	// back-office masters, date+random coded
	SupplierCodeExists(ctx context.Context, code string) (bool, error)
	CreateSupplier(ctx context.Context, supplier *models.Supplier) error
	GetSupplierByCode(ctx context.Context, code string) (*models.Supplier, error)
	SaveSupplier(ctx context.Context, supplier *models.Supplier) error
	DeleteSupplier(ctx context.Context, id uuid.UUID) error
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)

	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	SaveCoupon(ctx context.Context, coupon *models.Coupon) error
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
	ListCoupons(ctx context.Context) ([]models.Coupon, error)

	CompanyCodeExists(ctx context.Context, code string) (bool, error)
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompanyByCode(ctx context.Context, code string) (*models.Company, error)
	SaveCompany(ctx context.Context, company *models.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	ListCompanies(ctx context.Context) ([]models.Company, error)

	BranchCodeExists(ctx context.Context, code string) (bool, error)
	CreateBranch(ctx context.Context, branch *models.Branch) error
	GetBranchByCode(ctx context.Context, code string) (*models.Branch, error)
	SaveBranch(ctx context.Context, branch *models.Branch) error
	DeleteBranch(ctx context.Context, id uuid.UUID) error
	ListBranches(ctx context.Context) ([]models.Branch, error)

	StaffCodeExists(ctx context.Context, code string) (bool, error)
	CreateStaff(ctx context.Context, staff *models.Staff) error
	GetStaffByCode(ctx context.Context, code string) (*models.Staff, error)
	SaveStaff(ctx context.Context, staff *models.Staff) error
	DeleteStaff(ctx context.Context, id uuid.UUID) error
	ListStaff(ctx context.Context) ([]models.Staff, error)

	DoctorCodeExists(ctx context.Context, code string) (bool, error)
	CreateDoctor(ctx context.Context, doctor *models.Doctor) error
	GetDoctorByCode(ctx context.Context, code string) (*models.Doctor, error)
	SaveDoctor(ctx context.Context, doctor *models.Doctor) error
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
	ListDoctors(ctx context.Context) ([]models.Doctor, error)

	PatientCodeExists(ctx context.Context, code string) (bool, error)
	CreatePatient(ctx context.Context, patient *models.Patient) error
	GetPatientByCode(ctx context.Context, code string) (*models.Patient, error)
	SavePatient(ctx context.Context, patient *models.Patient) error
	DeletePatient(ctx context.Context, id uuid.UUID) error
	ListPatients(ctx context.Context) ([]models.Patient, error)
}

type gormRepo struct {
	client *dbclient.Client
}

// NewRepository builds the GORM-backed catalog repository.
func NewRepository(client *dbclient.Client) (Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &gormRepo{client: client}, nil
}

func firstOrNil[T any](db *gorm.DB, out *T) (*T, error) {
	err := db.First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *gormRepo) db(ctx context.Context) *gorm.DB {
	return r.client.DB().WithContext(ctx)
}

func (r *gormRepo) codeExists(ctx context.Context, model any, column, code string) (bool, error) {
	var count int64
	err := r.db(ctx).Model(model).Where(column+" = ?", code).Count(&count).Error
	return count > 0, err
}
