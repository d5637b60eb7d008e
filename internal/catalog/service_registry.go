package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/codes"
	dbclient "github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
)

func (s *service) CreateSupplier(ctx context.Context, supplier *models.Supplier) (*models.Supplier, error) {
	if strings.TrimSpace(supplier.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	create := func() error {
		code, err := codes.Generate(ctx, codes.PrefixSupplier, s.repo.SupplierCodeExists)
		if err != nil {
			return err
		}
		supplier.SupplierCode = code
		return s.repo.CreateSupplier(ctx, supplier)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "suppliers_supplier_code_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating supplier")
	}
	return supplier, nil
}

func (s *service) GetSupplier(ctx context.Context, code string) (*models.Supplier, error) {
	code, err := requireCode(code, "supplier_code")
	if err != nil {
		return nil, err
	}
	supplier, err := s.repo.GetSupplierByCode(ctx, code)
	if err != nil {
		return nil, internal(err, "loading supplier")
	}
	if supplier == nil {
		return nil, notFound("supplier")
	}
	return supplier, nil
}

func (s *service) UpdateSupplier(ctx context.Context, code string, updated *models.Supplier) (*models.Supplier, error) {
	existing, err := s.GetSupplier(ctx, code)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.SupplierCode = existing.SupplierCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveSupplier(ctx, updated); err != nil {
		return nil, internal(err, "saving supplier")
	}
	return updated, nil
}

func (s *service) DeleteSupplier(ctx context.Context, code string) error {
	existing, err := s.GetSupplier(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSupplier(ctx, existing.ID); err != nil {
		return internal(err, "deleting supplier")
	}
	return nil
}

func (s *service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	suppliers, err := s.repo.ListSuppliers(ctx)
	if err != nil {
		return nil, internal(err, "listing suppliers")
	}
	return suppliers, nil
}

func (s *service) CreateCoupon(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	if strings.TrimSpace(coupon.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if coupon.DiscountPct.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount_pct cannot be negative")
	}
	if err := s.repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, internal(err, "creating coupon")
	}
	return coupon, nil
}

func (s *service) GetCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	coupon, err := s.repo.GetCouponByID(ctx, id)
	if err != nil {
		return nil, internal(err, "loading coupon")
	}
	if coupon == nil {
		return nil, notFound("coupon")
	}
	return coupon, nil
}

func (s *service) UpdateCoupon(ctx context.Context, id uuid.UUID, updated *models.Coupon) (*models.Coupon, error) {
	existing, err := s.GetCoupon(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveCoupon(ctx, updated); err != nil {
		return nil, internal(err, "saving coupon")
	}
	return updated, nil
}

func (s *service) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	existing, err := s.GetCoupon(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCoupon(ctx, existing.ID); err != nil {
		return internal(err, "deleting coupon")
	}
	return nil
}

func (s *service) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.repo.ListCoupons(ctx)
	if err != nil {
		return nil, internal(err, "listing coupons")
	}
	return coupons, nil
}

func (s *service) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	if strings.TrimSpace(company.CompanyName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}

	create := func() error {
		code, err := codes.Generate(ctx, codes.PrefixCompany, s.repo.CompanyCodeExists)
		if err != nil {
			return err
		}
		company.CompanyCode = code
		return s.repo.CreateCompany(ctx, company)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "companies_company_code_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating company")
	}
	return company, nil
}

func (s *service) GetCompany(ctx context.Context, code string) (*models.Company, error) {
	code, err := requireCode(code, "company_code")
	if err != nil {
		return nil, err
	}
	company, err := s.repo.GetCompanyByCode(ctx, code)
	if err != nil {
		return nil, internal(err, "loading company")
	}
	if company == nil {
		return nil, notFound("company")
	}
	return company, nil
}

func (s *service) UpdateCompany(ctx context.Context, code string, updated *models.Company) (*models.Company, error) {
	existing, err := s.GetCompany(ctx, code)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.CompanyCode = existing.CompanyCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveCompany(ctx, updated); err != nil {
		return nil, internal(err, "saving company")
	}
	return updated, nil
}

func (s *service) DeleteCompany(ctx context.Context, code string) error {
	existing, err := s.GetCompany(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteCompany(ctx, existing.ID); err != nil {
		return internal(err, "deleting company")
	}
	return nil
}

func (s *service) ListCompanies(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, internal(err, "listing companies")
	}
	return companies, nil
}

func (s *service) CreateBranch(ctx context.Context, branch *models.Branch) (*models.Branch, error) {
	if strings.TrimSpace(branch.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	create := func() error {
		code, err := codes.Generate(ctx, codes.PrefixBranch, s.repo.BranchCodeExists)
		if err != nil {
			return err
		}
		branch.BranchCode = code
		return s.repo.CreateBranch(ctx, branch)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "branches_branch_code_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating branch")
	}
	return branch, nil
}

func (s *service) GetBranch(ctx context.Context, code string) (*models.Branch, error) {
	code, err := requireCode(code, "branch_code")
	if err != nil {
		return nil, err
	}
	branch, err := s.repo.GetBranchByCode(ctx, code)
	if err != nil {
		return nil, internal(err, "loading branch")
	}
	if branch == nil {
		return nil, notFound("branch")
	}
	return branch, nil
}

func (s *service) UpdateBranch(ctx context.Context, code string, updated *models.Branch) (*models.Branch, error) {
	existing, err := s.GetBranch(ctx, code)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.BranchCode = existing.BranchCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveBranch(ctx, updated); err != nil {
		return nil, internal(err, "saving branch")
	}
	return updated, nil
}

func (s *service) DeleteBranch(ctx context.Context, code string) error {
	existing, err := s.GetBranch(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteBranch(ctx, existing.ID); err != nil {
		return internal(err, "deleting branch")
	}
	return nil
}

func (s *service) ListBranches(ctx context.Context) ([]models.Branch, error) {
	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, internal(err, "listing branches")
	}
	return branches, nil
}

func (s *service) CreateStaff(ctx context.Context, staff *models.Staff) (*models.Staff, error) {
	if strings.TrimSpace(staff.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	create := func() error {
		code, err := codes.Generate(ctx, codes.PrefixStaff, s.repo.StaffCodeExists)
		if err != nil {
			return err
		}
		staff.PCode = code
		return s.repo.CreateStaff(ctx, staff)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "staff_pcode_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating staff")
	}
	return staff, nil
}

func (s *service) GetStaff(ctx context.Context, code string) (*models.Staff, error) {
	code, err := requireCode(code, "pcode")
	if err != nil {
		return nil, err
	}
	staff, err := s.repo.GetStaffByCode(ctx, code)
	if err != nil {
		return nil, internal(err, "loading staff")
	}
	if staff == nil {
		return nil, notFound("staff")
	}
	return staff, nil
}

func (s *service) UpdateStaff(ctx context.Context, code string, updated *models.Staff) (*models.Staff, error) {
	existing, err := s.GetStaff(ctx, code)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.PCode = existing.PCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveStaff(ctx, updated); err != nil {
		return nil, internal(err, "saving staff")
	}
	return updated, nil
}

func (s *service) DeleteStaff(ctx context.Context, code string) error {
	existing, err := s.GetStaff(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteStaff(ctx, existing.ID); err != nil {
		return internal(err, "deleting staff")
	}
	return nil
}

func (s *service) ListStaff(ctx context.Context) ([]models.Staff, error) {
	staff, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, internal(err, "listing staff")
	}
	return staff, nil
}

func (s *service) CreateDoctor(ctx context.Context, doctor *models.Doctor) (*models.Doctor, error) {
	if strings.TrimSpace(doctor.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	create := func() error {
		code, err := codes.Generate(ctx, codes.PrefixDoctor, s.repo.DoctorCodeExists)
		if err != nil {
			return err
		}
		doctor.DoctorCode = code
		return s.repo.CreateDoctor(ctx, doctor)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "doctors_doctor_code_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating doctor")
	}
	return doctor, nil
}

func (s *service) GetDoctor(ctx context.Context, code string) (*models.Doctor, error) {
	code, err := requireCode(code, "doctor_code")
	if err != nil {
		return nil, err
	}
	doctor, err := s.repo.GetDoctorByCode(ctx, code)
	if err != nil {
		return nil, internal(err, "loading doctor")
	}
	if doctor == nil {
		return nil, notFound("doctor")
	}
	return doctor, nil
}

func (s *service) UpdateDoctor(ctx context.Context, code string, updated *models.Doctor) (*models.Doctor, error) {
	existing, err := s.GetDoctor(ctx, code)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.DoctorCode = existing.DoctorCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SaveDoctor(ctx, updated); err != nil {
		return nil, internal(err, "saving doctor")
	}
	return updated, nil
}

func (s *service) DeleteDoctor(ctx context.Context, code string) error {
	existing, err := s.GetDoctor(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteDoctor(ctx, existing.ID); err != nil {
		return internal(err, "deleting doctor")
	}
	return nil
}

func (s *service) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, internal(err, "listing doctors")
	}
	return doctors, nil
}

func (s *service) CreatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	if strings.TrimSpace(patient.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(patient.Mobile) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mobile is required")
	}

	create := func() error {
		code, err := codes.Generate(ctx, codes.PrefixPatient, s.repo.PatientCodeExists)
		if err != nil {
			return err
		}
		patient.PatientCode = code
		return s.repo.CreatePatient(ctx, patient)
	}
	err := create()
	if err != nil && dbclient.IsUniqueViolation(err, "patients_patient_code_key") {
		err = create()
	}
	if err != nil {
		return nil, internal(err, "creating patient")
	}
	return patient, nil
}

func (s *service) GetPatient(ctx context.Context, code string) (*models.Patient, error) {
	code, err := requireCode(code, "patient_code")
	if err != nil {
		return nil, err
	}
	patient, err := s.repo.GetPatientByCode(ctx, code)
	if err != nil {
		return nil, internal(err, "loading patient")
	}
	if patient == nil {
		return nil, notFound("patient")
	}
	return patient, nil
}

func (s *service) UpdatePatient(ctx context.Context, code string, updated *models.Patient) (*models.Patient, error) {
	existing, err := s.GetPatient(ctx, code)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.PatientCode = existing.PatientCode
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.SavePatient(ctx, updated); err != nil {
		return nil, internal(err, "saving patient")
	}
	return updated, nil
}

func (s *service) DeletePatient(ctx context.Context, code string) error {
	existing, err := s.GetPatient(ctx, code)
	if err != nil {
		return err
	}
	if err := s.repo.DeletePatient(ctx, existing.ID); err != nil {
		return internal(err, "deleting patient")
	}
	return nil
}

func (s *service) ListPatients(ctx context.Context) ([]models.Patient, error) {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, internal(err, "listing patients")
	}
	return patients, nil
}
