package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/pharmacart/pharmacart-backend/pkg/auth"
	"github.com/pharmacart/pharmacart-backend/pkg/config"
)

type stubChecker struct {
	sessions map[string]bool
}

func (s *stubChecker) HasSession(_ context.Context, accessID string) (bool, error) {
	return s.sessions[accessID], nil
}

func jwtTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pharmacart-test",
		ExpirationMinutes: 15,
	}
}

func TestAuthSeedsContext(t *testing.T) {
	cfg := jwtTestConfig()
	userID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   userID,
		Username: "asha",
		IsStaff:  true,
		JTI:      "session-1",
	})
	require.NoError(t, err)

	checker := &stubChecker{sessions: map[string]bool{"session-1": true}}

	var gotUser uuid.UUID
	var gotStaff bool
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotStaff = IsStaffFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUser)
	assert.True(t, gotStaff)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	handler := Auth(jwtTestConfig(), &stubChecker{sessions: map[string]bool{}}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	cfg := jwtTestConfig()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "asha",
		JTI:      "session-1",
	})
	require.NoError(t, err)

	checker := &stubChecker{sessions: map[string]bool{}}
	handler := Auth(cfg, checker, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireStaff(t *testing.T) {
	handler := RequireStaff(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = req.WithContext(WithIsStaff(context.Background(), true))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
