package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	catalogsvc "github.com/pharmacart/pharmacart-backend/internal/catalog"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

type supplierRequest struct {
	Name     string  `json:"name" validate:"required"`
	Position *string `json:"position,omitempty"`
	Company  *string `json:"company,omitempty"`
	Address  *string `json:"address,omitempty"`
	Post     *string `json:"post,omitempty"`
	Pin      *string `json:"pin,omitempty"`
	District *string `json:"district,omitempty"`
	State    *string `json:"state,omitempty"`
	Country  *string `json:"country,omitempty"`
	Mob      *string `json:"mob,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
}

func (r supplierRequest) toModel() *models.Supplier {
	return &models.Supplier{
		Name:     r.Name,
		Position: r.Position,
		Company:  r.Company,
		Address:  r.Address,
		Post:     r.Post,
		Pin:      r.Pin,
		District: r.District,
		State:    r.State,
		Country:  r.Country,
		Mob:      r.Mob,
		Email:    r.Email,
	}
}

type supplierResponse struct {
	SupplierCode string  `json:"supplier_code"`
	Name         string  `json:"name"`
	Company      *string `json:"company,omitempty"`
	Mob          *string `json:"mob,omitempty"`
	Email        *string `json:"email,omitempty"`
}

func toSupplierResponse(supplier *models.Supplier) supplierResponse {
	return supplierResponse{
		SupplierCode: supplier.SupplierCode,
		Name:         supplier.Name,
		Company:      supplier.Company,
		Mob:          supplier.Mob,
		Email:        supplier.Email,
	}
}

func CreateSupplier(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload supplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		supplier, err := svc.CreateSupplier(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toSupplierResponse(supplier))
	}
}

func GetSupplier(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		supplier, err := svc.GetSupplier(r.Context(), chi.URLParam(r, "supplierCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSupplierResponse(supplier))
	}
}

func UpdateSupplier(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload supplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		supplier, err := svc.UpdateSupplier(r.Context(), chi.URLParam(r, "supplierCode"), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSupplierResponse(supplier))
	}
}

func DeleteSupplier(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteSupplier(r.Context(), chi.URLParam(r, "supplierCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "supplier deleted"})
	}
}

func ListSuppliers(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := svc.ListSuppliers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]supplierResponse, 0, len(suppliers))
		for i := range suppliers {
			out = append(out, toSupplierResponse(&suppliers[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type couponRequest struct {
	Name        string          `json:"name" validate:"required"`
	PromoStart  *string         `json:"promo_start,omitempty"`
	PromoEnd    *string         `json:"promo_end,omitempty"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Status      string          `json:"status,omitempty"`
	Type        string          `json:"type,omitempty"`
}

func parseDate(value *string, field string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.DateOnly, *value)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+field)
	}
	return &parsed, nil
}

func (r couponRequest) toModel() (*models.Coupon, error) {
	coupon := &models.Coupon{
		Name:        r.Name,
		DiscountPct: r.DiscountPct,
		Status:      enums.RecordStatusActive,
		Type:        enums.CouponTypeNew,
	}

	var err error
	if coupon.PromoStart, err = parseDate(r.PromoStart, "promo_start"); err != nil {
		return nil, err
	}
	if coupon.PromoEnd, err = parseDate(r.PromoEnd, "promo_end"); err != nil {
		return nil, err
	}
	if r.Status != "" {
		status, err := enums.ParseRecordStatus(r.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		coupon.Status = status
	}
	if r.Type != "" {
		couponType, err := enums.ParseCouponType(r.Type)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type")
		}
		coupon.Type = couponType
	}
	return coupon, nil
}

type couponResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	Status      string          `json:"status"`
	Type        string          `json:"type"`
	PromoStart  *string         `json:"promo_start,omitempty"`
	PromoEnd    *string         `json:"promo_end,omitempty"`
}

func toCouponResponse(coupon *models.Coupon) couponResponse {
	resp := couponResponse{
		ID:          coupon.ID.String(),
		Name:        coupon.Name,
		DiscountPct: coupon.DiscountPct,
		Status:      string(coupon.Status),
		Type:        string(coupon.Type),
	}
	if coupon.PromoStart != nil {
		start := coupon.PromoStart.Format(time.DateOnly)
		resp.PromoStart = &start
	}
	if coupon.PromoEnd != nil {
		end := coupon.PromoEnd.Format(time.DateOnly)
		resp.PromoEnd = &end
	}
	return resp
}

func couponID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "couponID"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid coupon id")
	}
	return id, nil
}

func CreateCoupon(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		coupon, err := svc.CreateCoupon(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCouponResponse(coupon))
	}
}

func GetCoupon(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := couponID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		coupon, err := svc.GetCoupon(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCouponResponse(coupon))
	}
}

func UpdateCoupon(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := couponID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		coupon, err := svc.UpdateCoupon(r.Context(), id, model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCouponResponse(coupon))
	}
}

func DeleteCoupon(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := couponID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteCoupon(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "coupon deleted"})
	}
}

func ListCoupons(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coupons, err := svc.ListCoupons(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]couponResponse, 0, len(coupons))
		for i := range coupons {
			out = append(out, toCouponResponse(&coupons[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
