package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pharmacart/pharmacart-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pharmacart-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	code := "CUST2608314201"

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:       userID,
		Username:     "asha",
		CustomerCode: &code,
		JTI:          "access-1",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "asha", claims.Username)
	require.NotNil(t, claims.CustomerCode)
	assert.Equal(t, code, *claims.CustomerCode)
	assert.False(t, claims.IsStaff)
	assert.Equal(t, "access-1", claims.ID)
}

func TestMintRequiresUserID(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{Username: "asha"})
	require.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	bad := cfg
	bad.Secret = "other-secret"
	_, err = ParseAccessToken(bad, token)
	require.Error(t, err)
}

func TestParseRejectsExpiredButAllowExpiredAccepts(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().Add(-time.Hour)
	token, err := MintAccessToken(cfg, past, AccessTokenPayload{UserID: uuid.New(), JTI: "expired-1"})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	require.Error(t, err)

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "expired-1", claims.ID)
}
