package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID       uuid.UUID
	Username     string
	CustomerCode *string
	IsStaff      bool
	JTI          string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	CustomerCode *string   `json:"customer_code,omitempty"`
	IsStaff      bool      `json:"is_staff"`
	jwt.RegisteredClaims
}
