package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/pharmacart/pharmacart-backend/internal/auth"
	cartsvc "github.com/pharmacart/pharmacart-backend/internal/cart"
	catalogsvc "github.com/pharmacart/pharmacart-backend/internal/catalog"
	customersvc "github.com/pharmacart/pharmacart-backend/internal/customers"
	ordersvc "github.com/pharmacart/pharmacart-backend/internal/orders"
	purchasingsvc "github.com/pharmacart/pharmacart-backend/internal/purchasing"
	pkgauth "github.com/pharmacart/pharmacart-backend/pkg/auth"
	"github.com/pharmacart/pharmacart-backend/pkg/config"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
	"github.com/pharmacart/pharmacart-backend/pkg/pagination"
	"github.com/pharmacart/pharmacart-backend/pkg/redis"
)

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

// stubAuthService embeds the interface; only the routes exercised below
// need live methods.
type stubAuthService struct {
	authsvc.Service
}

type stubCartService struct {
	cartsvc.Service
}

func (stubCartService) Create(ctx context.Context, ccode *string) (*models.Cart, error) {
	return &models.Cart{
		OrderNo:        "ORD2601010001",
		CCode:          ccode,
		DeliveryStatus: enums.DeliveryStatusCart,
	}, nil
}

func (stubCartService) AddItem(ctx context.Context, orderNo, mcode string, qty int) (*models.OrderItem, bool, error) {
	return &models.OrderItem{ItemCode: mcode, Qty: qty}, true, nil
}

type stubOrderService struct {
	ordersvc.Service
}

func (stubOrderService) ListConfirmed(ctx context.Context, params pagination.Params) (*ordersvc.AdminOrderList, error) {
	return &ordersvc.AdminOrderList{}, nil
}

type stubCustomerService struct {
	customersvc.Service
}

type stubCatalogService struct {
	catalogsvc.Service
}

func (stubCatalogService) ListMedicalItems(ctx context.Context, catcode *string) ([]models.MedicalItem, error) {
	return []models.MedicalItem{}, nil
}

type stubPurchasingService struct {
	purchasingsvc.Service
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		(*redis.Client)(nil),
		stubSessionManager{},
		nil,
		nil,
		stubAuthService{},
		stubCartService{},
		stubOrderService{},
		stubCustomerService{},
		stubCatalogService{},
		stubPurchasingService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, isStaff bool) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "router-test",
		IsStaff:  isStaff,
		JTI:      "session-1",
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartCreateIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			OrderNo string `json:"order_no"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.Data.OrderNo == "" {
		t.Fatal("expected order_no in response")
	}
}

func TestCartItemAddUsesBodyContract(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"order_no":"ORD2601010001","mcode":"17","qty":2}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/item/add/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data struct {
			Message string `json:"message"`
			Item    struct {
				MCode string `json:"mcode"`
				Qty   int    `json:"qty"`
			} `json:"item"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if envelope.Data.Item.MCode != "17" || envelope.Data.Item.Qty != 2 {
		t.Fatalf("unexpected line payload: %+v", envelope.Data)
	}
}

func TestProductListIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/products/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestOrderConfirmRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/orders/confirm", strings.NewReader("{}"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRequiresStaff(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	nonStaff := httptest.NewRequest(http.MethodGet, "/api/admin/orders/", nil)
	nonStaff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, false))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, nonStaff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-staff got %d", resp.Code)
	}

	staff := httptest.NewRequest(http.MethodGet, "/api/admin/orders/", nil)
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, true))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for staff got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestTrailingSpaceRedirect(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/products%20", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusMovedPermanently {
		t.Fatalf("expected 301 got %d", resp.Code)
	}
	if location := resp.Header().Get("Location"); location != "/api/products" {
		t.Fatalf("unexpected redirect target %q", location)
	}
}
