package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	cartsvc "github.com/pharmacart/pharmacart-backend/internal/cart"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

type createCartRequest struct {
	CustomerCode *string `json:"customer_code,omitempty"`
}

type cartResponse struct {
	OrderNo        string  `json:"order_no"`
	DeliveryStatus string  `json:"delivery_status"`
	CustomerCode   *string `json:"customer_code,omitempty"`
}

func CreateCart(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCartRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		cart, err := svc.Create(r.Context(), payload.CustomerCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, cartResponse{
			OrderNo:        cart.OrderNo,
			DeliveryStatus: string(cart.DeliveryStatus),
			CustomerCode:   cart.CCode,
		})
	}
}

// Line mutations identify the target in the body, not the path: the
// published contract is POST /api/cart/item/<op>/ with {order_no, mcode}.
type addCartItemRequest struct {
	OrderNo string `json:"order_no" validate:"required"`
	MCode   string `json:"mcode" validate:"required"`
	Qty     int    `json:"qty" validate:"omitempty,min=1"`
}

type cartItemRef struct {
	OrderNo string `json:"order_no" validate:"required"`
	MCode   string `json:"mcode" validate:"required"`
}

type cartLineResponse struct {
	MCode  string          `json:"mcode"`
	Qty    int             `json:"qty"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

type cartLineEnvelope struct {
	Message string           `json:"message"`
	Item    cartLineResponse `json:"item"`
}

func toCartLineResponse(line *models.OrderItem) cartLineResponse {
	return cartLineResponse{
		MCode:  line.ItemCode,
		Qty:    line.Qty,
		Rate:   line.Rate,
		Amount: line.Amt,
	}
}

func AddCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		qty := payload.Qty
		if qty == 0 {
			qty = 1
		}

		line, created, err := svc.AddItem(r.Context(), payload.OrderNo, payload.MCode, qty)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		message := "item updated"
		if created {
			status = http.StatusCreated
			message = "item added"
		}
		responses.WriteSuccessStatus(w, status, cartLineEnvelope{
			Message: message,
			Item:    toCartLineResponse(line),
		})
	}
}

func IncrementCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartItemRef
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := svc.Increment(r.Context(), payload.OrderNo, payload.MCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartLineEnvelope{Message: "item updated", Item: toCartLineResponse(line)})
	}
}

func DecrementCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartItemRef
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		line, err := svc.Decrement(r.Context(), payload.OrderNo, payload.MCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartLineEnvelope{Message: "item updated", Item: toCartLineResponse(line)})
	}
}

func DeleteCartItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartItemRef
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), payload.OrderNo, payload.MCode); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "item removed"})
	}
}

type cartSummaryRequest struct {
	OrderNo string `json:"order_no" validate:"required"`
}

type cartSummaryResponse struct {
	OrderNo        string             `json:"order_no"`
	DeliveryStatus string             `json:"delivery_status"`
	Items          []cartLineResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	Total          decimal.Decimal    `json:"total"`
}

// CartSummary serves GET with ?order_no= and POST with {order_no}.
func CartSummary(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNo := r.URL.Query().Get("order_no")
		if r.ContentLength > 0 {
			var payload cartSummaryRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			orderNo = payload.OrderNo
		}

		summary, err := svc.Summary(r.Context(), orderNo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]cartLineResponse, 0, len(summary.Lines))
		for i := range summary.Lines {
			items = append(items, toCartLineResponse(&summary.Lines[i]))
		}
		responses.WriteSuccess(w, cartSummaryResponse{
			OrderNo:        summary.OrderNo,
			DeliveryStatus: summary.DeliveryStatus,
			Items:          items,
			Subtotal:       summary.Subtotal,
			Discount:       summary.Discount,
			Total:          summary.Total,
		})
	}
}
