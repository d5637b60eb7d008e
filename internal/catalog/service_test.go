package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
)

// stubRepo keeps every entity in insertion-ordered slices so "last code"
// and newest-first listings behave like the real queries.
type stubRepo struct {
	medicalItems []*models.MedicalItem
	items        []*models.Item
	categories   []*models.Category
	medicines    []*models.Medicine
	suppliers    []*models.Supplier
	coupons      []*models.Coupon
	companies    []*models.Company
	branches     []*models.Branch
	staff        []*models.Staff
	doctors      []*models.Doctor
	patients     []*models.Patient
}

func (r *stubRepo) LastMCode(_ context.Context) (string, error) {
	if len(r.medicalItems) == 0 {
		return "", nil
	}
	return r.medicalItems[len(r.medicalItems)-1].MCode, nil
}

func (r *stubRepo) CreateMedicalItem(_ context.Context, item *models.MedicalItem) error {
	item.ID = uuid.New()
	r.medicalItems = append(r.medicalItems, item)
	return nil
}

func (r *stubRepo) GetMedicalItemByMCode(_ context.Context, mcode string) (*models.MedicalItem, error) {
	for _, item := range r.medicalItems {
		if item.MCode == mcode {
			return item, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveMedicalItem(_ context.Context, item *models.MedicalItem) error {
	for i, existing := range r.medicalItems {
		if existing.ID == item.ID {
			r.medicalItems[i] = item
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ReplaceMedicalItemMedia(_ context.Context, itemID uuid.UUID, media *models.MedicalItemMedia) error {
	for _, item := range r.medicalItems {
		if item.ID == itemID {
			if media != nil {
				media.MedicalItemID = itemID
			}
			item.Media = media
		}
	}
	return nil
}

func (r *stubRepo) DeleteMedicalItem(_ context.Context, id uuid.UUID) error {
	for i, item := range r.medicalItems {
		if item.ID == id {
			r.medicalItems = append(r.medicalItems[:i], r.medicalItems[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListMedicalItems(_ context.Context, catcode *string) ([]models.MedicalItem, error) {
	var out []models.MedicalItem
	for i := len(r.medicalItems) - 1; i >= 0; i-- {
		item := r.medicalItems[i]
		if catcode != nil && (item.CatCode == nil || *item.CatCode != *catcode) {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (r *stubRepo) LastItemCode(_ context.Context) (string, error) {
	if len(r.items) == 0 {
		return "", nil
	}
	return r.items[len(r.items)-1].ItemCode, nil
}

func (r *stubRepo) CreateItem(_ context.Context, item *models.Item) error {
	item.ID = uuid.New()
	r.items = append(r.items, item)
	return nil
}

func (r *stubRepo) GetItemByCode(_ context.Context, itemCode string) (*models.Item, error) {
	for _, item := range r.items {
		if item.ItemCode == itemCode {
			return item, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveItem(_ context.Context, item *models.Item) error {
	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = item
		}
	}
	return nil
}

func (r *stubRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListItems(_ context.Context) ([]models.Item, error) {
	var out []models.Item
	for i := len(r.items) - 1; i >= 0; i-- {
		out = append(out, *r.items[i])
	}
	return out, nil
}

func (r *stubRepo) LastCatCode(_ context.Context) (string, error) {
	if len(r.categories) == 0 {
		return "", nil
	}
	return r.categories[len(r.categories)-1].CatCode, nil
}

func (r *stubRepo) CreateCategory(_ context.Context, category *models.Category) error {
	category.ID = uuid.New()
	r.categories = append(r.categories, category)
	return nil
}

func (r *stubRepo) GetCategoryByCode(_ context.Context, catcode string) (*models.Category, error) {
	for _, category := range r.categories {
		if category.CatCode == catcode {
			return category, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveCategory(_ context.Context, category *models.Category) error {
	for i, existing := range r.categories {
		if existing.ID == category.ID {
			r.categories[i] = category
		}
	}
	return nil
}

func (r *stubRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	for i, category := range r.categories {
		if category.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListCategories(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for i := len(r.categories) - 1; i >= 0; i-- {
		out = append(out, *r.categories[i])
	}
	return out, nil
}

func (r *stubRepo) MedicineCodeExists(_ context.Context, code string) (bool, error) {
	for _, medicine := range r.medicines {
		if medicine.MedicineCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreateMedicine(_ context.Context, medicine *models.Medicine) error {
	medicine.ID = uuid.New()
	r.medicines = append(r.medicines, medicine)
	return nil
}

func (r *stubRepo) GetMedicineByCode(_ context.Context, code string) (*models.Medicine, error) {
	for _, medicine := range r.medicines {
		if medicine.MedicineCode == code {
			return medicine, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveMedicine(_ context.Context, medicine *models.Medicine) error {
	for i, existing := range r.medicines {
		if existing.ID == medicine.ID {
			r.medicines[i] = medicine
		}
	}
	return nil
}

func (r *stubRepo) DeleteMedicine(_ context.Context, id uuid.UUID) error {
	for i, medicine := range r.medicines {
		if medicine.ID == id {
			r.medicines = append(r.medicines[:i], r.medicines[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListMedicines(_ context.Context, catcode *string) ([]models.Medicine, error) {
	var out []models.Medicine
	for i := len(r.medicines) - 1; i >= 0; i-- {
		medicine := r.medicines[i]
		if catcode != nil && (medicine.CatCode == nil || *medicine.CatCode != *catcode) {
			continue
		}
		out = append(out, *medicine)
	}
	return out, nil
}

func (r *stubRepo) SupplierCodeExists(_ context.Context, code string) (bool, error) {
	for _, supplier := range r.suppliers {
		if supplier.SupplierCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreateSupplier(_ context.Context, supplier *models.Supplier) error {
	supplier.ID = uuid.New()
	r.suppliers = append(r.suppliers, supplier)
	return nil
}

func (r *stubRepo) GetSupplierByCode(_ context.Context, code string) (*models.Supplier, error) {
	for _, supplier := range r.suppliers {
		if supplier.SupplierCode == code {
			return supplier, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveSupplier(_ context.Context, supplier *models.Supplier) error {
	for i, existing := range r.suppliers {
		if existing.ID == supplier.ID {
			r.suppliers[i] = supplier
		}
	}
	return nil
}

func (r *stubRepo) DeleteSupplier(_ context.Context, id uuid.UUID) error {
	for i, supplier := range r.suppliers {
		if supplier.ID == id {
			r.suppliers = append(r.suppliers[:i], r.suppliers[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListSuppliers(_ context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	for i := len(r.suppliers) - 1; i >= 0; i-- {
		out = append(out, *r.suppliers[i])
	}
	return out, nil
}

func (r *stubRepo) CreateCoupon(_ context.Context, coupon *models.Coupon) error {
	coupon.ID = uuid.New()
	r.coupons = append(r.coupons, coupon)
	return nil
}

func (r *stubRepo) GetCouponByID(_ context.Context, id uuid.UUID) (*models.Coupon, error) {
	for _, coupon := range r.coupons {
		if coupon.ID == id {
			return coupon, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveCoupon(_ context.Context, coupon *models.Coupon) error {
	for i, existing := range r.coupons {
		if existing.ID == coupon.ID {
			r.coupons[i] = coupon
		}
	}
	return nil
}

func (r *stubRepo) DeleteCoupon(_ context.Context, id uuid.UUID) error {
	for i, coupon := range r.coupons {
		if coupon.ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListCoupons(_ context.Context) ([]models.Coupon, error) {
	var out []models.Coupon
	for i := len(r.coupons) - 1; i >= 0; i-- {
		out = append(out, *r.coupons[i])
	}
	return out, nil
}

func (r *stubRepo) CompanyCodeExists(_ context.Context, code string) (bool, error) {
	for _, company := range r.companies {
		if company.CompanyCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreateCompany(_ context.Context, company *models.Company) error {
	company.ID = uuid.New()
	r.companies = append(r.companies, company)
	return nil
}

func (r *stubRepo) GetCompanyByCode(_ context.Context, code string) (*models.Company, error) {
	for _, company := range r.companies {
		if company.CompanyCode == code {
			return company, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveCompany(_ context.Context, company *models.Company) error {
	for i, existing := range r.companies {
		if existing.ID == company.ID {
			r.companies[i] = company
		}
	}
	return nil
}

func (r *stubRepo) DeleteCompany(_ context.Context, id uuid.UUID) error {
	for i, company := range r.companies {
		if company.ID == id {
			r.companies = append(r.companies[:i], r.companies[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListCompanies(_ context.Context) ([]models.Company, error) {
	var out []models.Company
	for i := len(r.companies) - 1; i >= 0; i-- {
		out = append(out, *r.companies[i])
	}
	return out, nil
}

func (r *stubRepo) BranchCodeExists(_ context.Context, code string) (bool, error) {
	for _, branch := range r.branches {
		if branch.BranchCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreateBranch(_ context.Context, branch *models.Branch) error {
	branch.ID = uuid.New()
	r.branches = append(r.branches, branch)
	return nil
}

func (r *stubRepo) GetBranchByCode(_ context.Context, code string) (*models.Branch, error) {
	for _, branch := range r.branches {
		if branch.BranchCode == code {
			return branch, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveBranch(_ context.Context, branch *models.Branch) error {
	for i, existing := range r.branches {
		if existing.ID == branch.ID {
			r.branches[i] = branch
		}
	}
	return nil
}

func (r *stubRepo) DeleteBranch(_ context.Context, id uuid.UUID) error {
	for i, branch := range r.branches {
		if branch.ID == id {
			r.branches = append(r.branches[:i], r.branches[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListBranches(_ context.Context) ([]models.Branch, error) {
	var out []models.Branch
	for i := len(r.branches) - 1; i >= 0; i-- {
		out = append(out, *r.branches[i])
	}
	return out, nil
}

func (r *stubRepo) StaffCodeExists(_ context.Context, code string) (bool, error) {
	for _, staff := range r.staff {
		if staff.PCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreateStaff(_ context.Context, staff *models.Staff) error {
	staff.ID = uuid.New()
	r.staff = append(r.staff, staff)
	return nil
}

func (r *stubRepo) GetStaffByCode(_ context.Context, code string) (*models.Staff, error) {
	for _, staff := range r.staff {
		if staff.PCode == code {
			return staff, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveStaff(_ context.Context, staff *models.Staff) error {
	for i, existing := range r.staff {
		if existing.ID == staff.ID {
			r.staff[i] = staff
		}
	}
	return nil
}

func (r *stubRepo) DeleteStaff(_ context.Context, id uuid.UUID) error {
	for i, staff := range r.staff {
		if staff.ID == id {
			r.staff = append(r.staff[:i], r.staff[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListStaff(_ context.Context) ([]models.Staff, error) {
	var out []models.Staff
	for i := len(r.staff) - 1; i >= 0; i-- {
		out = append(out, *r.staff[i])
	}
	return out, nil
}

func (r *stubRepo) DoctorCodeExists(_ context.Context, code string) (bool, error) {
	for _, doctor := range r.doctors {
		if doctor.DoctorCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreateDoctor(_ context.Context, doctor *models.Doctor) error {
	doctor.ID = uuid.New()
	r.doctors = append(r.doctors, doctor)
	return nil
}

func (r *stubRepo) GetDoctorByCode(_ context.Context, code string) (*models.Doctor, error) {
	for _, doctor := range r.doctors {
		if doctor.DoctorCode == code {
			return doctor, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SaveDoctor(_ context.Context, doctor *models.Doctor) error {
	for i, existing := range r.doctors {
		if existing.ID == doctor.ID {
			r.doctors[i] = doctor
		}
	}
	return nil
}

func (r *stubRepo) DeleteDoctor(_ context.Context, id uuid.UUID) error {
	for i, doctor := range r.doctors {
		if doctor.ID == id {
			r.doctors = append(r.doctors[:i], r.doctors[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListDoctors(_ context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	for i := len(r.doctors) - 1; i >= 0; i-- {
		out = append(out, *r.doctors[i])
	}
	return out, nil
}

func (r *stubRepo) PatientCodeExists(_ context.Context, code string) (bool, error) {
	for _, patient := range r.patients {
		if patient.PatientCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubRepo) CreatePatient(_ context.Context, patient *models.Patient) error {
	patient.ID = uuid.New()
	r.patients = append(r.patients, patient)
	return nil
}

func (r *stubRepo) GetPatientByCode(_ context.Context, code string) (*models.Patient, error) {
	for _, patient := range r.patients {
		if patient.PatientCode == code {
			return patient, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) SavePatient(_ context.Context, patient *models.Patient) error {
	for i, existing := range r.patients {
		if existing.ID == patient.ID {
			r.patients[i] = patient
		}
	}
	return nil
}

func (r *stubRepo) DeletePatient(_ context.Context, id uuid.UUID) error {
	for i, patient := range r.patients {
		if patient.ID == id {
			r.patients = append(r.patients[:i], r.patients[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubRepo) ListPatients(_ context.Context) ([]models.Patient, error) {
	var out []models.Patient
	for i := len(r.patients) - 1; i >= 0; i-- {
		out = append(out, *r.patients[i])
	}
	return out, nil
}

func newService(t *testing.T) (Service, *stubRepo) {
	t.Helper()
	repo := &stubRepo{}
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func assertCode(t *testing.T, err error, code pkgerrors.Code, message string) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
	assert.Equal(t, message, typed.Message())
}

func str(s string) *string { return &s }

func TestMedicalItemSequentialCodes(t *testing.T) {
	svc, _ := newService(t)

	first, err := svc.CreateMedicalItem(context.Background(), &models.MedicalItem{
		SKUName: "Paracetamol 500mg", SKUCode: "SKU-001", Unit: "strip",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", first.MCode)

	second, err := svc.CreateMedicalItem(context.Background(), &models.MedicalItem{
		SKUName: "Ibuprofen 400mg", SKUCode: "SKU-002", Unit: "strip",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", second.MCode)
}

func TestMedicalItemValidation(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateMedicalItem(context.Background(), &models.MedicalItem{SKUCode: "X"})
	assertCode(t, err, pkgerrors.CodeValidation, "sku_name is required")

	_, err = svc.CreateMedicalItem(context.Background(), &models.MedicalItem{SKUName: "X"})
	assertCode(t, err, pkgerrors.CodeValidation, "sku_code is required")
}

func TestMedicalItemUpdateKeepsCodeAndReplacesMedia(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateMedicalItem(context.Background(), &models.MedicalItem{
		SKUName: "Paracetamol 500mg", SKUCode: "SKU-001", Unit: "strip",
		Media: &models.MedicalItemMedia{Img1: str("https://cdn.example/a.jpg")},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateMedicalItem(context.Background(), created.MCode, &models.MedicalItem{
		SKUName: "Paracetamol 500mg (new pack)", SKUCode: "SKU-001", Unit: "strip",
		Media: &models.MedicalItemMedia{Img1: str("https://cdn.example/b.jpg")},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.MCode, updated.MCode)
	require.NotNil(t, updated.Media)
	assert.Equal(t, "https://cdn.example/b.jpg", *updated.Media.Img1)
}

func TestMedicalItemDeleteThenGet(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateMedicalItem(context.Background(), &models.MedicalItem{
		SKUName: "Paracetamol 500mg", SKUCode: "SKU-001", Unit: "strip",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMedicalItem(context.Background(), created.MCode))

	_, err = svc.GetMedicalItem(context.Background(), created.MCode)
	assertCode(t, err, pkgerrors.CodeNotFound, "product not found")
}

func TestListMedicalItemsNewestFirst(t *testing.T) {
	svc, _ := newService(t)

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.CreateMedicalItem(context.Background(), &models.MedicalItem{
			SKUName: name, SKUCode: "SKU-" + name, Unit: "strip",
		})
		require.NoError(t, err)
	}

	items, err := svc.ListMedicalItems(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "C", items[0].SKUName)
	assert.Equal(t, "A", items[2].SKUName)
}

func TestCategorySequentialCodes(t *testing.T) {
	svc, _ := newService(t)

	first, err := svc.CreateCategory(context.Background(), &models.Category{Name: "Pain relief"})
	require.NoError(t, err)
	assert.Equal(t, "1", first.CatCode)

	second, err := svc.CreateCategory(context.Background(), &models.Category{Name: "Vitamins"})
	require.NoError(t, err)
	assert.Equal(t, "2", second.CatCode)
}

func TestMedicineCodeAndCategoryFilter(t *testing.T) {
	svc, _ := newService(t)

	med, err := svc.CreateMedicine(context.Background(), &models.Medicine{
		SKUName: "Amoxicillin 250mg", Unit: "strip", CatCode: str("1"),
		Status: enums.StockStatusInStock,
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^MED\d{10}$`), med.MedicineCode)

	_, err = svc.CreateMedicine(context.Background(), &models.Medicine{
		SKUName: "Cough syrup", Unit: "bottle", CatCode: str("2"),
	})
	require.NoError(t, err)

	filtered, err := svc.ListMedicines(context.Background(), str("1"))
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Amoxicillin 250mg", filtered[0].SKUName)

	all, err := svc.ListMedicines(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRegistryCodeFormats(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	supplier, err := svc.CreateSupplier(ctx, &models.Supplier{Name: "Kerala Pharma Distributors"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^SUP\d{10}$`), supplier.SupplierCode)

	company, err := svc.CreateCompany(ctx, &models.Company{
		CompanyName: "PharmaCart Pvt Ltd", Address: "a", Post: "p", Dist: "d",
		State: "s", Pin: "682001", Country: "India", GST: "32AAAAA0000A1Z5",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^C\d{10}$`), company.CompanyCode)

	branch, err := svc.CreateBranch(ctx, &models.Branch{
		Name: "Kochi", Address: "a", Post: "p", Dist: "d",
		State: "s", Pin: "682001", Country: "India",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^B\d{10}$`), branch.BranchCode)

	staff, err := svc.CreateStaff(ctx, &models.Staff{
		Name: "Ravi", Address: "a", Post: "p", Dist: "d", State: "s",
		Country: "India", Pin: "682001", Qualification: "B.Pharm",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^P\d{10}$`), staff.PCode)

	doctor, err := svc.CreateDoctor(ctx, &models.Doctor{
		Name: "Dr. Nair", Qualification: "MBBS", Address: "a", Post: "p",
		Dist: "d", State: "s", Country: "India", Pin: "682001",
		Specialization: "General",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^D\d{10}$`), doctor.DoctorCode)

	patient, err := svc.CreatePatient(ctx, &models.Patient{
		Name: "Gopan", Mobile: "9847012345", Address: "a", Post: "p",
		Dist: "d", State: "s", Country: "India",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^PT\d{10}$`), patient.PatientCode)
}

func TestSupplierUpdatePreservesCode(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.CreateSupplier(context.Background(), &models.Supplier{Name: "Original"})
	require.NoError(t, err)

	updated, err := svc.UpdateSupplier(context.Background(), created.SupplierCode, &models.Supplier{Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, created.SupplierCode, updated.SupplierCode)
	assert.Equal(t, "Renamed", updated.Name)

	_, err = svc.GetSupplier(context.Background(), "SUP0000000000")
	assertCode(t, err, pkgerrors.CodeNotFound, "supplier not found")
}

func TestCouponValidation(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateCoupon(context.Background(), &models.Coupon{
		Name: "WELCOME10", DiscountPct: decimal.RequireFromString("-1"),
	})
	assertCode(t, err, pkgerrors.CodeValidation, "discount_pct cannot be negative")

	coupon, err := svc.CreateCoupon(context.Background(), &models.Coupon{
		Name:        "WELCOME10",
		DiscountPct: decimal.RequireFromString("10"),
		Status:      enums.RecordStatusActive,
		Type:        enums.CouponTypeNew,
	})
	require.NoError(t, err)

	got, err := svc.GetCoupon(context.Background(), coupon.ID)
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", got.Name)

	require.NoError(t, svc.DeleteCoupon(context.Background(), coupon.ID))
	_, err = svc.GetCoupon(context.Background(), coupon.ID)
	assertCode(t, err, pkgerrors.CodeNotFound, "coupon not found")
}

func TestItemSequentialCodesIndependentOfMedicalItems(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateMedicalItem(context.Background(), &models.MedicalItem{
		SKUName: "X", SKUCode: "SKU-X", Unit: "strip",
	})
	require.NoError(t, err)

	item, err := svc.CreateItem(context.Background(), &models.Item{
		SKUName: "Thermometer", SKUCode: "SKU-T", Unit: "piece",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", item.ItemCode)
}
