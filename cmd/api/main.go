package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/pharmacart/pharmacart-backend/api/routes"
	"github.com/pharmacart/pharmacart-backend/internal/auth"
	"github.com/pharmacart/pharmacart-backend/internal/cart"
	"github.com/pharmacart/pharmacart-backend/internal/catalog"
	"github.com/pharmacart/pharmacart-backend/internal/customers"
	"github.com/pharmacart/pharmacart-backend/internal/notify"
	"github.com/pharmacart/pharmacart-backend/internal/orders"
	"github.com/pharmacart/pharmacart-backend/internal/purchasing"
	"github.com/pharmacart/pharmacart-backend/pkg/auth/session"
	"github.com/pharmacart/pharmacart-backend/pkg/config"
	"github.com/pharmacart/pharmacart-backend/pkg/db"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
	"github.com/pharmacart/pharmacart-backend/pkg/metrics"
	"github.com/pharmacart/pharmacart-backend/pkg/migrate"
	"github.com/pharmacart/pharmacart-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	notifier := notify.NewService(notify.NewSMTPMailer(cfg.Notify), notify.NewGatewaySMS(cfg.Notify), logg)

	authRepo, err := auth.NewRepository(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth repository", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(authRepo, sessionManager, notifier, redisClient, cfg.JWT, cfg.Password, cfg.OTP)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	cartRepo, err := cart.NewRepository(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart repository", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	customersRepo, err := customers.NewRepository(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers repository", err)
		os.Exit(1)
	}
	customerService, err := customers.NewService(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}
	addressDirectory, err := customers.NewAddressDirectory(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create address directory", err)
		os.Exit(1)
	}

	ordersRepo, err := orders.NewRepository(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders repository", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(ordersRepo, customerService, addressDirectory)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewRepository(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog repository", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	purchasingRepo, err := purchasing.NewRepository(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchasing repository", err)
		os.Exit(1)
	}
	purchasingService, err := purchasing.NewService(purchasingRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create purchasing service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			sessionManager,
			registry,
			httpMetrics,
			authService,
			cartService,
			orderService,
			customerService,
			catalogService,
			purchasingService,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
