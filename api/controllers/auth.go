package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/pharmacart/pharmacart-backend/api/middleware"
	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	authsvc "github.com/pharmacart/pharmacart-backend/internal/auth"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`

	// Clients disagree on the phone field name; accept every historical
	// alias and resolve to one value.
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	MobileNo    string `json:"mobileNumber"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r registerRequest) mobile() string {
	for _, candidate := range []string{r.Phone, r.Mobile, r.MobileNo, r.PhoneNumber} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

type registerResponse struct {
	Username   string `json:"username"`
	EmailSent  bool   `json:"email_sent"`
	EmailError string `json:"email_error,omitempty"`
	SMSSent    bool   `json:"sms_sent"`
	SMSError   string `json:"sms_error,omitempty"`
}

func Register(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), authsvc.RegisterInput{
			Name:     payload.Name,
			Username: payload.Username,
			Email:    payload.Email,
			Mobile:   payload.mobile(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, registerResponse{
			Username:   result.Username,
			EmailSent:  result.EmailSent,
			EmailError: result.EmailError,
			SMSSent:    result.SMSSent,
			SMSError:   result.SMSError,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

func toTokenPairResponse(pair *authsvc.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	}
}

func Login(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Login(r.Context(), authsvc.LoginInput{Email: payload.Email, Password: payload.Password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toTokenPairResponse(pair))
	}
}

func AdminLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.AdminLogin(r.Context(), authsvc.LoginInput{Email: payload.Email, Password: payload.Password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toTokenPairResponse(pair))
	}
}

type refreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func Refresh(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload refreshRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Refresh(r.Context(), payload.AccessToken, payload.RefreshToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toTokenPairResponse(pair))
	}
}

type logoutRequest struct {
	AccessID string `json:"access_id" validate:"required"`
}

func Logout(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload logoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Logout(r.Context(), payload.AccessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "logged out"})
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload forgotPasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ForgotPassword(r.Context(), payload.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"email_sent":  result.EmailSent,
			"email_error": result.EmailError,
		})
	}
}

type verifyResetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func VerifyResetToken(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload verifyResetTokenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.VerifyResetToken(r.Context(), payload.Token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "token valid"})
	}
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func ResetPassword(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resetPasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResetPassword(r.Context(), payload.Token, payload.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "password updated"})
	}
}

type identifyCustomerRequest struct {
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	MobileNo    string `json:"mobileNumber"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r identifyCustomerRequest) mobile() string {
	return registerRequest{
		Phone:       r.Phone,
		Mobile:      r.Mobile,
		MobileNo:    r.MobileNo,
		PhoneNumber: r.PhoneNumber,
	}.mobile()
}

func IdentifyCustomer(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload identifyCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lookup, err := svc.IdentifyCustomer(r.Context(), payload.mobile())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"status":        string(lookup.Status),
			"customer_code": lookup.CustomerCode,
		})
	}
}

type sendOTPRequest struct {
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	MobileNo    string `json:"mobileNumber"`
	PhoneNumber string `json:"phoneNumber"`
	Purpose     string `json:"purpose"`
}

func SendOTP(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sendOTPRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mobile := registerRequest{
			Phone:       payload.Phone,
			Mobile:      payload.Mobile,
			MobileNo:    payload.MobileNo,
			PhoneNumber: payload.PhoneNumber,
		}.mobile()

		result, err := svc.SendOTP(r.Context(), authsvc.SendOTPInput{Mobile: mobile, Purpose: payload.Purpose})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"reference_id": result.ReferenceID,
			"expires_at":   result.ExpiresAt.Format(time.RFC3339),
			"sms_sent":     result.SMSSent,
			"sms_error":    result.SMSError,
		})
	}
}

type verifyOTPRequest struct {
	Phone       string `json:"phone"`
	Mobile      string `json:"mobile"`
	MobileNo    string `json:"mobileNumber"`
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code" validate:"required"`
}

func VerifyOTP(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload verifyOTPRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mobile := registerRequest{
			Phone:       payload.Phone,
			Mobile:      payload.Mobile,
			MobileNo:    payload.MobileNo,
			PhoneNumber: payload.PhoneNumber,
		}.mobile()

		if err := svc.VerifyOTP(r.Context(), mobile, payload.Code); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "otp verified"})
	}
}

type deleteAccountRequest struct {
	Password *string `json:"password,omitempty"`
}

func DeleteAccount(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload deleteAccountRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if err := svc.DeleteAccount(r.Context(), userID, payload.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "account deleted"})
	}
}
