package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	purchasingsvc "github.com/pharmacart/pharmacart-backend/internal/purchasing"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

type purchaseItemRequest struct {
	ItemCode       *string `json:"item_code,omitempty"`
	SKUCode        *string `json:"sku_code,omitempty"`
	SKUName        *string `json:"sku_name,omitempty"`
	ItemType       *string `json:"item_type,omitempty"`
	Unit           *string `json:"unit,omitempty"`
	FullQuantity   int     `json:"full_quantity"`
	ActualQuantity int     `json:"actual_quantity"`
}

type purchaseOrderRequest struct {
	SupplierID string                `json:"supplier_id" validate:"required"`
	Date       *string               `json:"date,omitempty"`
	Status     string                `json:"status,omitempty"`
	Remarks    *string               `json:"remarks,omitempty"`
	Items      []purchaseItemRequest `json:"items"`
}

func (r purchaseOrderRequest) toModel() (*models.PurchaseOrder, error) {
	supplierID, err := uuid.Parse(r.SupplierID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid supplier_id")
	}

	po := &models.PurchaseOrder{
		SupplierID: supplierID,
		Remarks:    r.Remarks,
	}
	if r.Date != nil && *r.Date != "" {
		date, err := time.Parse(time.DateOnly, *r.Date)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date")
		}
		po.Date = date
	}
	if r.Status != "" {
		status, err := enums.ParsePurchaseOrderStatus(r.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		po.Status = status
	}

	for _, item := range r.Items {
		line := models.PurchaseOrderItem{
			ItemCode:       item.ItemCode,
			SKUCode:        item.SKUCode,
			SKUName:        item.SKUName,
			Unit:           item.Unit,
			FullQuantity:   item.FullQuantity,
			ActualQuantity: item.ActualQuantity,
		}
		if item.ItemType != nil && *item.ItemType != "" {
			itemType, err := enums.ParsePurchaseItemType(*item.ItemType)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item_type")
			}
			line.ItemType = &itemType
		}
		po.Items = append(po.Items, line)
	}
	return po, nil
}

type purchaseItemResponse struct {
	ItemCode       *string `json:"item_code,omitempty"`
	SKUCode        *string `json:"sku_code,omitempty"`
	SKUName        *string `json:"sku_name,omitempty"`
	ItemType       *string `json:"item_type,omitempty"`
	Unit           *string `json:"unit,omitempty"`
	FullQuantity   int     `json:"full_quantity"`
	ActualQuantity int     `json:"actual_quantity"`
}

type purchaseOrderResponse struct {
	PurchaseOrderNo string                 `json:"purchase_order_no"`
	Date            string                 `json:"date"`
	SupplierID      string                 `json:"supplier_id"`
	SupplierName    *string                `json:"supplier_name,omitempty"`
	Status          string                 `json:"status"`
	Remarks         *string                `json:"remarks,omitempty"`
	Items           []purchaseItemResponse `json:"items"`
}

func toPurchaseOrderResponse(po *models.PurchaseOrder) purchaseOrderResponse {
	resp := purchaseOrderResponse{
		PurchaseOrderNo: po.PurchaseOrderNo,
		Date:            po.Date.Format(time.DateOnly),
		SupplierID:      po.SupplierID.String(),
		Status:          string(po.Status),
		Remarks:         po.Remarks,
		Items:           make([]purchaseItemResponse, 0, len(po.Items)),
	}
	if po.Supplier != nil {
		resp.SupplierName = &po.Supplier.Name
	}
	for _, item := range po.Items {
		line := purchaseItemResponse{
			ItemCode:       item.ItemCode,
			SKUCode:        item.SKUCode,
			SKUName:        item.SKUName,
			Unit:           item.Unit,
			FullQuantity:   item.FullQuantity,
			ActualQuantity: item.ActualQuantity,
		}
		if item.ItemType != nil {
			itemType := string(*item.ItemType)
			line.ItemType = &itemType
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}

func CreatePurchaseOrder(svc purchasingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload purchaseOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		po, err := svc.CreatePurchaseOrder(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toPurchaseOrderResponse(po))
	}
}

func GetPurchaseOrder(svc purchasingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		po, err := svc.GetPurchaseOrder(r.Context(), chi.URLParam(r, "purchaseOrderNo"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toPurchaseOrderResponse(po))
	}
}

func UpdatePurchaseOrder(svc purchasingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload purchaseOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		po, err := svc.UpdatePurchaseOrder(r.Context(), chi.URLParam(r, "purchaseOrderNo"), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toPurchaseOrderResponse(po))
	}
}

func DeletePurchaseOrder(svc purchasingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePurchaseOrder(r.Context(), chi.URLParam(r, "purchaseOrderNo")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "purchase order deleted"})
	}
}

func ListPurchaseOrders(svc purchasingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListPurchaseOrders(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]purchaseOrderResponse, 0, len(orders))
		for i := range orders {
			out = append(out, toPurchaseOrderResponse(&orders[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
