package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/api/middleware"
	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	customersvc "github.com/pharmacart/pharmacart-backend/internal/customers"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

type profileResponse struct {
	Name         string  `json:"name"`
	CustomerCode *string `json:"customer_code,omitempty"`
	Phone        *string `json:"phone,omitempty"`
}

func GetProfile(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.GetProfile(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profileResponse{
			Name:         profile.Name,
			CustomerCode: profile.CustomerCode,
			Phone:        profile.Phone,
		})
	}
}

type addressRequest struct {
	Name         *string `json:"name,omitempty"`
	Prefix       string  `json:"prefix"`
	Address      string  `json:"address"`
	Post         string  `json:"post"`
	District     string  `json:"district"`
	State        string  `json:"state"`
	Pin          string  `json:"pin"`
	Country      string  `json:"country"`
	CustomerCode string  `json:"customer_code,omitempty"`
}

func (r addressRequest) toInput() customersvc.AddressInput {
	return customersvc.AddressInput{
		Name:     r.Name,
		Prefix:   r.Prefix,
		Address:  r.Address,
		Post:     r.Post,
		District: r.District,
		State:    r.State,
		Pin:      r.Pin,
		Country:  r.Country,
	}
}

type addressResponse struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Prefix   string  `json:"prefix"`
	Address  string  `json:"address"`
	Post     string  `json:"post"`
	District string  `json:"district"`
	State    string  `json:"state"`
	Pin      string  `json:"pin"`
	Country  string  `json:"country"`
}

func toAddressResponse(address *models.CustomerAddress) addressResponse {
	return addressResponse{
		ID:       address.ID.String(),
		Name:     address.Name,
		Prefix:   string(address.Prefix),
		Address:  address.Address,
		Post:     address.Post,
		District: address.District,
		State:    address.State,
		Pin:      address.Pin,
		Country:  address.Country,
	}
}

// UpsertAddress saves the caller's shipping address. Authenticated calls
// resolve the profile from the token; anonymous calls must carry a
// customer_code in the payload.
func UpsertAddress(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addressRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())

		var address *models.CustomerAddress
		var err error
		if userID != uuid.Nil {
			address, err = svc.UpsertAddress(r.Context(), userID, middleware.UsernameFromContext(r.Context()), payload.toInput())
		} else {
			address, err = svc.UpsertAddressForCustomer(r.Context(), payload.CustomerCode, payload.toInput())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toAddressResponse(address))
	}
}

func GetAddress(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, err := svc.GetAddress(r.Context(), middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toAddressResponse(address))
	}
}
