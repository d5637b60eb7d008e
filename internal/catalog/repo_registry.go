package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
)

func (r *gormRepo) SupplierCodeExists(ctx context.Context, code string) (bool, error) {
	return r.codeExists(ctx, &models.Supplier{}, "supplier_code", code)
}

func (r *gormRepo) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db(ctx).Create(supplier).Error
}

func (r *gormRepo) GetSupplierByCode(ctx context.Context, code string) (*models.Supplier, error) {
	var supplier models.Supplier
	return firstOrNil(r.db(ctx).Where("supplier_code = ?", code), &supplier)
}

func (r *gormRepo) SaveSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db(ctx).Save(supplier).Error
}

func (r *gormRepo) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Supplier{}, "id = ?", id).Error
}

func (r *gormRepo) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := r.db(ctx).Order("created_at DESC").Find(&suppliers).Error
	return suppliers, err
}

func (r *gormRepo) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.db(ctx).Create(coupon).Error
}

func (r *gormRepo) GetCouponByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	return firstOrNil(r.db(ctx).Where("id = ?", id), &coupon)
}

func (r *gormRepo) SaveCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.db(ctx).Save(coupon).Error
}

func (r *gormRepo) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Coupon{}, "id = ?", id).Error
}

func (r *gormRepo) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	err := r.db(ctx).Order("created_at DESC").Find(&coupons).Error
	return coupons, err
}

func (r *gormRepo) CompanyCodeExists(ctx context.Context, code string) (bool, error) {
	return r.codeExists(ctx, &models.Company{}, "company_code", code)
}

func (r *gormRepo) CreateCompany(ctx context.Context, company *models.Company) error {
	return r.db(ctx).Create(company).Error
}

func (r *gormRepo) GetCompanyByCode(ctx context.Context, code string) (*models.Company, error) {
	var company models.Company
	return firstOrNil(r.db(ctx).Where("company_code = ?", code), &company)
}

func (r *gormRepo) SaveCompany(ctx context.Context, company *models.Company) error {
	return r.db(ctx).Save(company).Error
}

func (r *gormRepo) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Company{}, "id = ?", id).Error
}

func (r *gormRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	err := r.db(ctx).Order("created_at DESC").Find(&companies).Error
	return companies, err
}

func (r *gormRepo) BranchCodeExists(ctx context.Context, code string) (bool, error) {
	return r.codeExists(ctx, &models.Branch{}, "branch_code", code)
}

func (r *gormRepo) CreateBranch(ctx context.Context, branch *models.Branch) error {
	return r.db(ctx).Create(branch).Error
}

func (r *gormRepo) GetBranchByCode(ctx context.Context, code string) (*models.Branch, error) {
	var branch models.Branch
	return firstOrNil(r.db(ctx).Where("branch_code = ?", code), &branch)
}

func (r *gormRepo) SaveBranch(ctx context.Context, branch *models.Branch) error {
	return r.db(ctx).Save(branch).Error
}

func (r *gormRepo) DeleteBranch(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Branch{}, "id = ?", id).Error
}

func (r *gormRepo) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := r.db(ctx).Order("created_at DESC").Find(&branches).Error
	return branches, err
}

func (r *gormRepo) StaffCodeExists(ctx context.Context, code string) (bool, error) {
	return r.codeExists(ctx, &models.Staff{}, "pcode", code)
}

func (r *gormRepo) CreateStaff(ctx context.Context, staff *models.Staff) error {
	return r.db(ctx).Create(staff).Error
}

func (r *gormRepo) GetStaffByCode(ctx context.Context, code string) (*models.Staff, error) {
	var staff models.Staff
	return firstOrNil(r.db(ctx).Where("pcode = ?", code), &staff)
}

func (r *gormRepo) SaveStaff(ctx context.Context, staff *models.Staff) error {
	return r.db(ctx).Save(staff).Error
}

func (r *gormRepo) DeleteStaff(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Staff{}, "id = ?", id).Error
}

func (r *gormRepo) ListStaff(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db(ctx).Order("created_at DESC").Find(&staff).Error
	return staff, err
}

func (r *gormRepo) DoctorCodeExists(ctx context.Context, code string) (bool, error) {
	return r.codeExists(ctx, &models.Doctor{}, "doctor_code", code)
}

func (r *gormRepo) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	return r.db(ctx).Create(doctor).Error
}

func (r *gormRepo) GetDoctorByCode(ctx context.Context, code string) (*models.Doctor, error) {
	var doctor models.Doctor
	return firstOrNil(r.db(ctx).Where("doctor_code = ?", code), &doctor)
}

func (r *gormRepo) SaveDoctor(ctx context.Context, doctor *models.Doctor) error {
	return r.db(ctx).Save(doctor).Error
}

func (r *gormRepo) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Doctor{}, "id = ?", id).Error
}

func (r *gormRepo) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db(ctx).Order("created_at DESC").Find(&doctors).Error
	return doctors, err
}

func (r *gormRepo) PatientCodeExists(ctx context.Context, code string) (bool, error) {
	return r.codeExists(ctx, &models.Patient{}, "patient_code", code)
}

func (r *gormRepo) CreatePatient(ctx context.Context, patient *models.Patient) error {
	return r.db(ctx).Create(patient).Error
}

func (r *gormRepo) GetPatientByCode(ctx context.Context, code string) (*models.Patient, error) {
	var patient models.Patient
	return firstOrNil(r.db(ctx).Where("patient_code = ?", code), &patient)
}

func (r *gormRepo) SavePatient(ctx context.Context, patient *models.Patient) error {
	return r.db(ctx).Save(patient).Error
}

func (r *gormRepo) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Patient{}, "id = ?", id).Error
}

func (r *gormRepo) ListPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db(ctx).Order("created_at DESC").Find(&patients).Error
	return patients, err
}
