package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	catalogsvc "github.com/pharmacart/pharmacart-backend/internal/catalog"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

type companyRequest struct {
	CompanyName string  `json:"company_name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Post        string  `json:"post" validate:"required"`
	Dist        string  `json:"dist" validate:"required"`
	State       string  `json:"state" validate:"required"`
	Pin         string  `json:"pin" validate:"required"`
	Country     string  `json:"country" validate:"required"`
	GST         string  `json:"gst" validate:"required"`
	Logo        *string `json:"logo,omitempty"`
	RegDate     *string `json:"reg_date,omitempty"`
	ExpDate     *string `json:"exp_date,omitempty"`
}

func (r companyRequest) toModel() (*models.Company, error) {
	company := &models.Company{
		CompanyName: r.CompanyName,
		Address:     r.Address,
		Post:        r.Post,
		Dist:        r.Dist,
		State:       r.State,
		Pin:         r.Pin,
		Country:     r.Country,
		GST:         r.GST,
		Logo:        r.Logo,
	}
	var err error
	if company.RegDate, err = parseDate(r.RegDate, "reg_date"); err != nil {
		return nil, err
	}
	if company.ExpDate, err = parseDate(r.ExpDate, "exp_date"); err != nil {
		return nil, err
	}
	return company, nil
}

type companyResponse struct {
	CompanyCode string `json:"company_code"`
	CompanyName string `json:"company_name"`
	State       string `json:"state"`
	Country     string `json:"country"`
	GST         string `json:"gst"`
}

func toCompanyResponse(company *models.Company) companyResponse {
	return companyResponse{
		CompanyCode: company.CompanyCode,
		CompanyName: company.CompanyName,
		State:       company.State,
		Country:     company.Country,
		GST:         company.GST,
	}
}

func CreateCompany(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload companyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		company, err := svc.CreateCompany(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCompanyResponse(company))
	}
}

func GetCompany(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company, err := svc.GetCompany(r.Context(), chi.URLParam(r, "companyCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCompanyResponse(company))
	}
}

func UpdateCompany(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload companyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		company, err := svc.UpdateCompany(r.Context(), chi.URLParam(r, "companyCode"), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCompanyResponse(company))
	}
}

func DeleteCompany(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCompany(r.Context(), chi.URLParam(r, "companyCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "company deleted"})
	}
}

func ListCompanies(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies, err := svc.ListCompanies(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]companyResponse, 0, len(companies))
		for i := range companies {
			out = append(out, toCompanyResponse(&companies[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type branchRequest struct {
	Name    string  `json:"name" validate:"required"`
	Address string  `json:"address" validate:"required"`
	Post    string  `json:"post" validate:"required"`
	Dist    string  `json:"dist" validate:"required"`
	State   string  `json:"state" validate:"required"`
	Pin     string  `json:"pin" validate:"required"`
	Country string  `json:"country" validate:"required"`
	RegDate *string `json:"reg_date,omitempty"`
	ExpDate *string `json:"exp_date,omitempty"`
}

func (r branchRequest) toModel() (*models.Branch, error) {
	branch := &models.Branch{
		Name:    r.Name,
		Address: r.Address,
		Post:    r.Post,
		Dist:    r.Dist,
		State:   r.State,
		Pin:     r.Pin,
		Country: r.Country,
	}
	var err error
	if branch.RegDate, err = parseDate(r.RegDate, "reg_date"); err != nil {
		return nil, err
	}
	if branch.ExpDate, err = parseDate(r.ExpDate, "exp_date"); err != nil {
		return nil, err
	}
	return branch, nil
}

type branchResponse struct {
	BranchCode string `json:"branch_code"`
	Name       string `json:"name"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

func toBranchResponse(branch *models.Branch) branchResponse {
	return branchResponse{
		BranchCode: branch.BranchCode,
		Name:       branch.Name,
		State:      branch.State,
		Country:    branch.Country,
	}
}

func CreateBranch(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload branchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branch, err := svc.CreateBranch(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toBranchResponse(branch))
	}
}

func GetBranch(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branch, err := svc.GetBranch(r.Context(), chi.URLParam(r, "branchCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toBranchResponse(branch))
	}
}

func UpdateBranch(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload branchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		branch, err := svc.UpdateBranch(r.Context(), chi.URLParam(r, "branchCode"), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toBranchResponse(branch))
	}
}

func DeleteBranch(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteBranch(r.Context(), chi.URLParam(r, "branchCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "branch deleted"})
	}
}

func ListBranches(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		branches, err := svc.ListBranches(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]branchResponse, 0, len(branches))
		for i := range branches {
			out = append(out, toBranchResponse(&branches[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type staffRequest struct {
	Name          string  `json:"name" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	Post          string  `json:"post" validate:"required"`
	Dist          string  `json:"dist" validate:"required"`
	State         string  `json:"state" validate:"required"`
	Country       string  `json:"country" validate:"required"`
	Pin           string  `json:"pin" validate:"required"`
	Qualification string  `json:"qualification" validate:"required"`
	JoiningDate   *string `json:"joining_date,omitempty"`
	ResignDate    *string `json:"resign_date,omitempty"`
	Status        string  `json:"status,omitempty"`
	Biodata       *string `json:"biodata,omitempty"`
	Photo         *string `json:"photo,omitempty"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
}

func (r staffRequest) toModel() (*models.Staff, error) {
	staff := &models.Staff{
		Name:          r.Name,
		Address:       r.Address,
		Post:          r.Post,
		Dist:          r.Dist,
		State:         r.State,
		Country:       r.Country,
		Pin:           r.Pin,
		Qualification: r.Qualification,
		Biodata:       r.Biodata,
		Photo:         r.Photo,
		Email:         r.Email,
		Status:        enums.RecordStatusActive,
	}
	var err error
	if staff.JoiningDate, err = parseDate(r.JoiningDate, "joining_date"); err != nil {
		return nil, err
	}
	if staff.ResignDate, err = parseDate(r.ResignDate, "resign_date"); err != nil {
		return nil, err
	}
	if r.Status != "" {
		status, err := enums.ParseRecordStatus(r.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		staff.Status = status
	}
	return staff, nil
}

type staffResponse struct {
	PCode         string `json:"pcode"`
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
	Status        string `json:"status"`
}

func toStaffResponse(staff *models.Staff) staffResponse {
	return staffResponse{
		PCode:         staff.PCode,
		Name:          staff.Name,
		Qualification: staff.Qualification,
		Status:        string(staff.Status),
	}
}

func CreateStaff(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload staffRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		staff, err := svc.CreateStaff(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toStaffResponse(staff))
	}
}

func GetStaff(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := svc.GetStaff(r.Context(), chi.URLParam(r, "pcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toStaffResponse(staff))
	}
}

func UpdateStaff(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload staffRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		staff, err := svc.UpdateStaff(r.Context(), chi.URLParam(r, "pcode"), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toStaffResponse(staff))
	}
}

func DeleteStaff(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteStaff(r.Context(), chi.URLParam(r, "pcode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "staff deleted"})
	}
}

func ListStaff(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		staff, err := svc.ListStaff(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]staffResponse, 0, len(staff))
		for i := range staff {
			out = append(out, toStaffResponse(&staff[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type doctorRequest struct {
	Name           string  `json:"name" validate:"required"`
	Qualification  string  `json:"qualification" validate:"required"`
	Address        string  `json:"address" validate:"required"`
	Post           string  `json:"post" validate:"required"`
	Dist           string  `json:"dist" validate:"required"`
	State          string  `json:"state" validate:"required"`
	Country        string  `json:"country" validate:"required"`
	Pin            string  `json:"pin" validate:"required"`
	Specialization string  `json:"specialization" validate:"required"`
	JoiningDate    *string `json:"joining_date,omitempty"`
	ResignDate     *string `json:"resign_date,omitempty"`
	Status         string  `json:"status,omitempty"`
	Biodata        *string `json:"biodata,omitempty"`
	Photo          *string `json:"photo,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
}

func (r doctorRequest) toModel() (*models.Doctor, error) {
	doctor := &models.Doctor{
		Name:           r.Name,
		Qualification:  r.Qualification,
		Address:        r.Address,
		Post:           r.Post,
		Dist:           r.Dist,
		State:          r.State,
		Country:        r.Country,
		Pin:            r.Pin,
		Specialization: r.Specialization,
		Biodata:        r.Biodata,
		Photo:          r.Photo,
		Email:          r.Email,
		Status:         enums.RecordStatusActive,
	}
	var err error
	if doctor.JoiningDate, err = parseDate(r.JoiningDate, "joining_date"); err != nil {
		return nil, err
	}
	if doctor.ResignDate, err = parseDate(r.ResignDate, "resign_date"); err != nil {
		return nil, err
	}
	if r.Status != "" {
		status, err := enums.ParseRecordStatus(r.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		doctor.Status = status
	}
	return doctor, nil
}

type doctorResponse struct {
	DoctorCode     string `json:"doctor_code"`
	Name           string `json:"name"`
	Qualification  string `json:"qualification"`
	Specialization string `json:"specialization"`
	Status         string `json:"status"`
}

func toDoctorResponse(doctor *models.Doctor) doctorResponse {
	return doctorResponse{
		DoctorCode:     doctor.DoctorCode,
		Name:           doctor.Name,
		Qualification:  doctor.Qualification,
		Specialization: doctor.Specialization,
		Status:         string(doctor.Status),
	}
}

func CreateDoctor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload doctorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doctor, err := svc.CreateDoctor(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toDoctorResponse(doctor))
	}
}

func GetDoctor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctor, err := svc.GetDoctor(r.Context(), chi.URLParam(r, "doctorCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toDoctorResponse(doctor))
	}
}

func UpdateDoctor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload doctorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		doctor, err := svc.UpdateDoctor(r.Context(), chi.URLParam(r, "doctorCode"), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toDoctorResponse(doctor))
	}
}

func DeleteDoctor(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteDoctor(r.Context(), chi.URLParam(r, "doctorCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "doctor deleted"})
	}
}

func ListDoctors(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ListDoctors(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]doctorResponse, 0, len(doctors))
		for i := range doctors {
			out = append(out, toDoctorResponse(&doctors[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type patientRequest struct {
	Name        string  `json:"name" validate:"required"`
	Mobile      string  `json:"mobile" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Post        string  `json:"post" validate:"required"`
	Dist        string  `json:"dist" validate:"required"`
	State       string  `json:"state" validate:"required"`
	Country     string  `json:"country" validate:"required"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
	Photo       *string `json:"photo,omitempty"`
	AdharNumber *string `json:"adhar_number,omitempty"`
	RegDate     *string `json:"reg_date,omitempty"`
	ReferredBy  *string `json:"referred_by,omitempty"`
	Sex         *string `json:"sex,omitempty"`
}

func (r patientRequest) toModel() (*models.Patient, error) {
	patient := &models.Patient{
		Name:        r.Name,
		Mobile:      r.Mobile,
		Address:     r.Address,
		Post:        r.Post,
		Dist:        r.Dist,
		State:       r.State,
		Country:     r.Country,
		Email:       r.Email,
		Photo:       r.Photo,
		AdharNumber: r.AdharNumber,
		ReferredBy:  r.ReferredBy,
	}
	var err error
	if patient.DateOfBirth, err = parseDate(r.DateOfBirth, "date_of_birth"); err != nil {
		return nil, err
	}
	if patient.RegDate, err = parseDate(r.RegDate, "reg_date"); err != nil {
		return nil, err
	}
	if r.Sex != nil && *r.Sex != "" {
		sex, err := enums.ParseSex(*r.Sex)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sex")
		}
		patient.Sex = &sex
	}
	return patient, nil
}

type patientResponse struct {
	PatientCode string `json:"patient_code"`
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	State       string `json:"state"`
}

func toPatientResponse(patient *models.Patient) patientResponse {
	return patientResponse{
		PatientCode: patient.PatientCode,
		Name:        patient.Name,
		Mobile:      patient.Mobile,
		State:       patient.State,
	}
}

func CreatePatient(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload patientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patient, err := svc.CreatePatient(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toPatientResponse(patient))
	}
}

func GetPatient(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patient, err := svc.GetPatient(r.Context(), chi.URLParam(r, "patientCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toPatientResponse(patient))
	}
}

func UpdatePatient(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload patientRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		patient, err := svc.UpdatePatient(r.Context(), chi.URLParam(r, "patientCode"), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toPatientResponse(patient))
	}
}

func DeletePatient(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePatient(r.Context(), chi.URLParam(r, "patientCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "patient deleted"})
	}
}

func ListPatients(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.ListPatients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]patientResponse, 0, len(patients))
		for i := range patients {
			out = append(out, toPatientResponse(&patients[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
