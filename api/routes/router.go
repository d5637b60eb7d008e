package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pharmacart/pharmacart-backend/api/controllers"
	"github.com/pharmacart/pharmacart-backend/api/middleware"
	authsvc "github.com/pharmacart/pharmacart-backend/internal/auth"
	cartsvc "github.com/pharmacart/pharmacart-backend/internal/cart"
	catalogsvc "github.com/pharmacart/pharmacart-backend/internal/catalog"
	customersvc "github.com/pharmacart/pharmacart-backend/internal/customers"
	ordersvc "github.com/pharmacart/pharmacart-backend/internal/orders"
	purchasingsvc "github.com/pharmacart/pharmacart-backend/internal/purchasing"
	"github.com/pharmacart/pharmacart-backend/pkg/auth/session"
	"github.com/pharmacart/pharmacart-backend/pkg/config"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
	"github.com/pharmacart/pharmacart-backend/pkg/metrics"
	"github.com/pharmacart/pharmacart-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessions sessionManager,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	authService authsvc.Service,
	cartService cartsvc.Service,
	orderService ordersvc.Service,
	customerService customersvc.Service,
	catalogService catalogsvc.Service,
	purchasingService purchasingsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.TrailingSpaceRedirect(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.Register(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/admin-login", controllers.AdminLogin(authService, logg))
		r.Post("/refresh", controllers.Refresh(authService, logg))
		r.Post("/logout", controllers.Logout(authService, logg))
		r.Post("/forgot-password", controllers.ForgotPassword(authService, logg))
		r.Post("/verify-reset-token", controllers.VerifyResetToken(authService, logg))
		r.Post("/reset-password", controllers.ResetPassword(authService, logg))
		r.Post("/identify", controllers.IdentifyCustomer(authService, logg))
		r.Post("/send-otp", controllers.SendOTP(authService, logg))
		r.Post("/verify-otp", controllers.VerifyOTP(authService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/delete-account", controllers.DeleteAccount(authService, logg))
		})
	})

	// Cart and browse endpoints stay open so anonymous shoppers can fill a
	// basket before they register.
	r.Route("/api/cart", func(r chi.Router) {
		r.Post("/", controllers.CreateCart(cartService, logg))
		r.Post("/item/add/", controllers.AddCartItem(cartService, logg))
		r.Post("/item/increment/", controllers.IncrementCartItem(cartService, logg))
		r.Post("/item/decrement/", controllers.DecrementCartItem(cartService, logg))
		r.Post("/item/delete/", controllers.DeleteCartItem(cartService, logg))
		r.Get("/summary/", controllers.CartSummary(cartService, logg))
		r.Post("/summary/", controllers.CartSummary(cartService, logg))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListMedicalItems(catalogService, logg))
		r.Get("/{mcode}", controllers.GetMedicalItem(catalogService, logg))
	})
	r.Get("/api/categories", controllers.ListCategories(catalogService, logg))
	r.Get("/api/medicines", controllers.ListMedicines(catalogService, logg))

	// Anonymous address capture keyed by customer_code in the payload.
	r.Post("/api/public/address", controllers.UpsertAddress(customerService, logg))

	r.Route("/api/profile", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Get("/", controllers.GetProfile(customerService, logg))
		r.Get("/address", controllers.GetAddress(customerService, logg))
		r.Post("/address", controllers.UpsertAddress(customerService, logg))
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Post("/confirm", controllers.ConfirmOrder(orderService, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.RequireStaff(logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(orderService, logg))
			r.Get("/{orderNo}", controllers.AdminGetOrder(orderService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateMedicalItem(catalogService, logg))
			r.Get("/", controllers.ListMedicalItems(catalogService, logg))
			r.Get("/{mcode}", controllers.GetMedicalItem(catalogService, logg))
			r.Put("/{mcode}", controllers.UpdateMedicalItem(catalogService, logg))
			r.Delete("/{mcode}", controllers.DeleteMedicalItem(catalogService, logg))
		})
		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.CreateItem(catalogService, logg))
			r.Get("/", controllers.ListItems(catalogService, logg))
			r.Get("/{itemCode}", controllers.GetItem(catalogService, logg))
			r.Put("/{itemCode}", controllers.UpdateItem(catalogService, logg))
			r.Delete("/{itemCode}", controllers.DeleteItem(catalogService, logg))
		})
		r.Route("/categories", func(r chi.Router) {
			r.Post("/", controllers.CreateCategory(catalogService, logg))
			r.Get("/", controllers.ListCategories(catalogService, logg))
			r.Get("/{catcode}", controllers.GetCategory(catalogService, logg))
			r.Put("/{catcode}", controllers.UpdateCategory(catalogService, logg))
			r.Delete("/{catcode}", controllers.DeleteCategory(catalogService, logg))
		})
		r.Route("/medicines", func(r chi.Router) {
			r.Post("/", controllers.CreateMedicine(catalogService, logg))
			r.Get("/", controllers.ListMedicines(catalogService, logg))
			r.Get("/{medicineCode}", controllers.GetMedicine(catalogService, logg))
			r.Put("/{medicineCode}", controllers.UpdateMedicine(catalogService, logg))
			r.Delete("/{medicineCode}", controllers.DeleteMedicine(catalogService, logg))
		})
		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", controllers.CreateSupplier(catalogService, logg))
			r.Get("/", controllers.ListSuppliers(catalogService, logg))
			r.Get("/{supplierCode}", controllers.GetSupplier(catalogService, logg))
			r.Put("/{supplierCode}", controllers.UpdateSupplier(catalogService, logg))
			r.Delete("/{supplierCode}", controllers.DeleteSupplier(catalogService, logg))
		})
		r.Route("/coupons", func(r chi.Router) {
			r.Post("/", controllers.CreateCoupon(catalogService, logg))
			r.Get("/", controllers.ListCoupons(catalogService, logg))
			r.Get("/{couponID}", controllers.GetCoupon(catalogService, logg))
			r.Put("/{couponID}", controllers.UpdateCoupon(catalogService, logg))
			r.Delete("/{couponID}", controllers.DeleteCoupon(catalogService, logg))
		})
		r.Route("/companies", func(r chi.Router) {
			r.Post("/", controllers.CreateCompany(catalogService, logg))
			r.Get("/", controllers.ListCompanies(catalogService, logg))
			r.Get("/{companyCode}", controllers.GetCompany(catalogService, logg))
			r.Put("/{companyCode}", controllers.UpdateCompany(catalogService, logg))
			r.Delete("/{companyCode}", controllers.DeleteCompany(catalogService, logg))
		})
		r.Route("/branches", func(r chi.Router) {
			r.Post("/", controllers.CreateBranch(catalogService, logg))
			r.Get("/", controllers.ListBranches(catalogService, logg))
			r.Get("/{branchCode}", controllers.GetBranch(catalogService, logg))
			r.Put("/{branchCode}", controllers.UpdateBranch(catalogService, logg))
			r.Delete("/{branchCode}", controllers.DeleteBranch(catalogService, logg))
		})
		r.Route("/staff", func(r chi.Router) {
			r.Post("/", controllers.CreateStaff(catalogService, logg))
			r.Get("/", controllers.ListStaff(catalogService, logg))
			r.Get("/{pcode}", controllers.GetStaff(catalogService, logg))
			r.Put("/{pcode}", controllers.UpdateStaff(catalogService, logg))
			r.Delete("/{pcode}", controllers.DeleteStaff(catalogService, logg))
		})
		r.Route("/doctors", func(r chi.Router) {
			r.Post("/", controllers.CreateDoctor(catalogService, logg))
			r.Get("/", controllers.ListDoctors(catalogService, logg))
			r.Get("/{doctorCode}", controllers.GetDoctor(catalogService, logg))
			r.Put("/{doctorCode}", controllers.UpdateDoctor(catalogService, logg))
			r.Delete("/{doctorCode}", controllers.DeleteDoctor(catalogService, logg))
		})
		r.Route("/patients", func(r chi.Router) {
			r.Post("/", controllers.CreatePatient(catalogService, logg))
			r.Get("/", controllers.ListPatients(catalogService, logg))
			r.Get("/{patientCode}", controllers.GetPatient(catalogService, logg))
			r.Put("/{patientCode}", controllers.UpdatePatient(catalogService, logg))
			r.Delete("/{patientCode}", controllers.DeletePatient(catalogService, logg))
		})
		r.Route("/purchase-orders", func(r chi.Router) {
			r.Post("/", controllers.CreatePurchaseOrder(purchasingService, logg))
			r.Get("/", controllers.ListPurchaseOrders(purchasingService, logg))
			r.Get("/{purchaseOrderNo}", controllers.GetPurchaseOrder(purchasingService, logg))
			r.Put("/{purchaseOrderNo}", controllers.UpdatePurchaseOrder(purchasingService, logg))
			r.Delete("/{purchaseOrderNo}", controllers.DeletePurchaseOrder(purchasingService, logg))
		})
	})

	return r
}
