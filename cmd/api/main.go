package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subscription-billing/config"
	httpHandler "subscription-billing/internal/adapter/http/handler"
	pgStorage "subscription-billing/internal/adapter/storage/postgres"
	redisStorage "subscription-billing/internal/adapter/storage/redis"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"
	"subscription-billing/internal/service"
	"subscription-billing/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("sandbox", cfg.Gateway.Sandbox).
		Msg("Starting subscription billing service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	authRepo := pgStorage.NewAuthorizationRepo(pool)
	subRepo := pgStorage.NewSubscriptionRepo(pool)
	payRepo := pgStorage.NewPaymentRepo(pool)
	eventRepo := pgStorage.NewWebhookEventRepo(pool)
	transRepo := pgStorage.NewTransitionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	dedupStore := redisStorage.NewDedupStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	catalog := domain.NewPlanCatalog(cfg.Billing.PlanOverrides)
	codec := service.NewCheckMacCodec(cfg.Gateway)
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	gateway := service.NewGatewayClient(cfg.Gateway, codec, &http.Client{Timeout: cfg.Gateway.Timeout}, log)
	notifier := service.NewLogNotifier(log)

	// Initialize business services
	ledger := service.NewLedgerService(subRepo, authRepo, payRepo, transRepo, transactor, notifier, catalog, cfg.Billing, log)
	processor := service.NewWebhookService(codec, ledger, eventRepo, dedupStore, cfg.Billing.RetryBackoff, cfg.Scheduler.WebhookRetention, log)
	reportingSvc := service.NewReportingService(payRepo, subRepo)
	scheduler := service.NewSchedulerService(subRepo, payRepo, authRepo, eventRepo, ledger, gateway, processor, cfg.Scheduler, cfg.Gateway.TradePrefix, log)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Ledger:         ledger,
		Gateway:        gateway,
		Processor:      processor,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		PaymentRepo:    payRepo,
		Catalog:        catalog,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// Start the reconciliation scheduler
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
