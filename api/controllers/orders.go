package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/api/middleware"
	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	ordersvc "github.com/pharmacart/pharmacart-backend/internal/orders"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
	"github.com/pharmacart/pharmacart-backend/pkg/pagination"
)

type confirmOrderRequest struct {
	OrderNo     string `json:"order_no" validate:"required"`
	AddressID   string `json:"address_id" validate:"required"`
	PaymentMode string `json:"payment_mode" validate:"required"`
}

type confirmOrderResponse struct {
	Message        string          `json:"message"`
	OrderNo        string          `json:"order_no"`
	InvNo          string          `json:"inv_no"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	CourierAmount  decimal.Decimal `json:"courier_amount"`
	NetAmount      decimal.Decimal `json:"net_amount"`
	Discount       decimal.Decimal `json:"discount"`
	PaymentMode    string          `json:"payment_mode"`
	DeliveryStatus string          `json:"delivery_status"`
}

func ConfirmOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller := ordersvc.Caller{
			UserID:   middleware.UserIDFromContext(r.Context()),
			Username: middleware.UsernameFromContext(r.Context()),
		}

		var payload confirmOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		addressID, err := uuid.Parse(payload.AddressID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid address_id"))
			return
		}

		result, err := svc.Confirm(r.Context(), caller, ordersvc.ConfirmInput{
			OrderNo:     payload.OrderNo,
			AddressID:   addressID,
			PaymentMode: payload.PaymentMode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusCreated
		if result.AlreadyConfirmed {
			status = http.StatusOK
		}
		responses.WriteSuccessStatus(w, status, confirmOrderResponse{
			Message:        result.Message,
			OrderNo:        result.OrderNo,
			InvNo:          result.InvNo,
			TotalAmount:    result.TotalAmount,
			CourierAmount:  result.CourierAmount,
			NetAmount:      result.NetAmount,
			Discount:       result.Discount,
			PaymentMode:    string(result.PaymentMode),
			DeliveryStatus: string(result.DeliveryStatus),
		})
	}
}

type adminOrderResponse struct {
	OrderNo       string          `json:"order_no"`
	InvNo         string          `json:"inv_no"`
	CustomerCode  string          `json:"customer_code"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CourierAmount decimal.Decimal `json:"courier_amount"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMode   string          `json:"payment_mode"`
	PaymentStatus string          `json:"payment_status"`
	OrderStatus   string          `json:"order_status"`
	Date          *string         `json:"date,omitempty"`
	Time          *string         `json:"time,omitempty"`
}

func toAdminOrderResponse(order ordersvc.AdminOrder) adminOrderResponse {
	resp := adminOrderResponse{
		OrderNo:       order.OrderNo,
		InvNo:         order.InvNo,
		CustomerCode:  order.CustomerCode,
		TotalAmount:   order.TotalAmount,
		CourierAmount: order.CourierAmount,
		NetAmount:     order.NetAmount,
		Discount:      order.Discount,
		PaymentMode:   string(order.PaymentMode),
		PaymentStatus: string(order.PaymentStatus),
		OrderStatus:   string(order.OrderStatus),
		Time:          order.Time,
	}
	if order.Date != nil {
		date := order.Date.Format(time.DateOnly)
		resp.Date = &date
	}
	return resp
}

type adminOrderListResponse struct {
	Orders     []adminOrderResponse `json:"orders"`
	NextCursor string               `json:"next_cursor,omitempty"`
}

func AdminListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListConfirmed(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := adminOrderListResponse{
			Orders:     make([]adminOrderResponse, 0, len(list.Orders)),
			NextCursor: list.NextCursor,
		}
		for _, order := range list.Orders {
			out.Orders = append(out.Orders, toAdminOrderResponse(order))
		}
		responses.WriteSuccess(w, out)
	}
}

func AdminGetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.GetConfirmed(r.Context(), chi.URLParam(r, "orderNo"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toAdminOrderResponse(*order))
	}
}
