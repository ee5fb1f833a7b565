package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subsidy-dashboard/internal/api"
	"subsidy-dashboard/internal/auth"
	"subsidy-dashboard/internal/cache"
	"subsidy-dashboard/internal/config"
	"subsidy-dashboard/internal/database"
	"subsidy-dashboard/internal/db"
	"subsidy-dashboard/internal/handlers"
	"subsidy-dashboard/internal/health"
	h "subsidy-dashboard/internal/http"
	"subsidy-dashboard/internal/mapview"
	"subsidy-dashboard/internal/middleware"
	"subsidy-dashboard/internal/repositories"
	"subsidy-dashboard/internal/services"
	"subsidy-dashboard/internal/store"
	"subsidy-dashboard/internal/timeutil"
	"subsidy-dashboard/migrations"
)

func main() {
	cfg := config.Load()
	if err := timeutil.SetLocation(cfg.Timezone); err != nil {
		log.Printf("[Config] Unknown timezone %q, keeping %s: %v", cfg.Timezone, timeutil.WIB, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := api.NewClient(cfg.API.BaseURL, cfg.APITimeout())
	if err != nil {
		log.Fatalf("[API] %v", err)
	}
	log.Printf("[API] Upstream %s (timeout %s)", client.BaseURL(), cfg.APITimeout())

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	opts := store.Options{PageSize: cfg.API.PageSize, SharedTTL: cfg.StatisticsTTL()}
	var redisPinger health.Pinger
	if err := cache.Init(cfg.Redis.Addr, cfg.Redis.Password); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (statistics cached per process only)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
		opts.Shared = cache.Shared{}
		redisPinger = health.PingFunc(func(ctx context.Context) error {
			if !cache.IsHealthy() {
				return errors.New("redis ping failed")
			}
			return nil
		})
	}
	defer cache.Close()

	// Optional audit log database
	var (
		auditLog  handlers.ActionLogger
		auditList handlers.ActionLogLister
		dbPinger  health.Pinger
	)
	if cfg.Database.Enabled {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Printf("[DB] Audit log disabled: %v", err)
		} else {
			defer pool.Close()
			// Uses embedded migrations for standalone binary operation
			migrator := database.NewMigratorWithFS(pool, migrations.FS, ".")
			if err := migrator.RunMigrations(ctx); err != nil {
				log.Fatalf("[DB] Failed to run migrations: %v", err)
			}
			repo := repositories.NewAdminActionLogRepository(pool)
			auditLog, auditList, dbPinger = repo, repo, pool
		}
	} else {
		log.Println("[DB] Audit log disabled (set DB_HOST to enable)")
	}

	// Stores
	stores := store.NewSet(client, opts)

	// Services
	recipientService := services.NewRecipientService(stores.Recipients)
	merchantService := services.NewMerchantService(stores.Merchants, mapview.NewLayer())
	productService := services.NewProductService(stores.Products)
	transactionService := services.NewTransactionService(stores.Transactions)
	dashboardService := services.NewDashboardService(recipientService, merchantService, transactionService)

	// Handlers
	recipientHandler := handlers.NewRecipientHandler(recipientService, auditLog)
	merchantHandler := handlers.NewMerchantHandler(merchantService, auditLog)
	productHandler := handlers.NewProductHandler(productService, auditLog)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditLog)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	adminActionLogHandler := handlers.NewAdminActionLogHandler(auditList)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(client, redisPinger, dbPinger))

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled() {
		jwtManager = auth.NewJWTManager(cfg)
	} else {
		log.Println("[Auth] JWT_SECRET not set, bearer tokens are forwarded unchecked")
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	corsMiddleware := middleware.NewCORS(cfg)

	router := h.NewRouter(
		recipientHandler,
		merchantHandler,
		productHandler,
		transactionHandler,
		dashboardHandler,
		adminActionLogHandler,
		healthHandler,
		authMiddleware,
	)
	handler := middleware.PanicRecovery(middleware.RequestLogger(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("[Server] Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[Server] Shutdown error: %v", err)
		}
	}()

	log.Printf("Server running on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
