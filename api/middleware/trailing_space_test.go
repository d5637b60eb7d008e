package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func trailingSpaceHandler() http.Handler {
	return TrailingSpaceRedirect()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestTrailingSpaceRedirect(t *testing.T) {
	handler := trailingSpaceHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/products/%20", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/api/products/", w.Header().Get("Location"))
}

func TestTrailingSpaceRedirectPreservesQuery(t *testing.T) {
	handler := trailingSpaceHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/products%20?catcode=3", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/api/products?catcode=3", w.Header().Get("Location"))
}

func TestCleanPathPassesThrough(t *testing.T) {
	handler := trailingSpaceHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
