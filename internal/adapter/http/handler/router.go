package handler

import (
	"subscription-billing/internal/adapter/http/middleware"
	redisStore "subscription-billing/internal/adapter/storage/redis"
	"subscription-billing/internal/core/domain"
	"subscription-billing/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Ledger         ports.Ledger
	Gateway        ports.GatewayClient
	Processor      ports.WebhookProcessor
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	PaymentRepo    ports.PaymentRepository
	Catalog        *domain.PlanCatalog
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Gateway callbacks (no auth; authenticated by CheckMacValue) ---
	// Never rate limited: a throttled delivery would be answered non-200 and
	// push the gateway into its redelivery storm.
	webhookHandler := NewWebhookHandler(deps.Processor, deps.Logger)
	r.POST("/webhooks/:event_type", webhookHandler.Receive)

	// --- JWT-authenticated API ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1")

	subscriptionHandler := NewSubscriptionHandler(deps.Ledger, deps.Gateway, deps.PaymentRepo, deps.Catalog, deps.Logger)
	subscriptions := v1.Group("/subscriptions", jwtAuth)
	{
		subscriptions.POST("", rl("subscriptions"), subscriptionHandler.Subscribe)
		subscriptions.GET("/current", rl("dashboard"), subscriptionHandler.GetCurrent)
		subscriptions.POST("/cancel", rl("subscriptions"), subscriptionHandler.Cancel)
		subscriptions.POST("/downgrade", rl("subscriptions"), subscriptionHandler.Downgrade)
	}

	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)
	dashboard := v1.Group("/dashboard", jwtAuth)
	{
		dashboard.GET("/stats", rl("dashboard"), dashboardHandler.GetStats)
	}

	return r
}
