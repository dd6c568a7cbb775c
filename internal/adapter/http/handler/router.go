package handler

import (
	"bitcoin-wallet/internal/adapter/http/middleware"
	redisStore "bitcoin-wallet/internal/adapter/storage/redis"
	"bitcoin-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	LedgerSvc      ports.LedgerService
	StatsSvc       ports.StatisticsService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
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

	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- Statistics (administrator key, checked by the service) ---
	statsHandler := NewStatisticsHandler(deps.StatsSvc)
	v1.GET("/statistics", statsHandler.Get)

	// --- API-key routes ---
	apiKeyAuth := middleware.APIKeyAuth(deps.AuthSvc, deps.Logger)
	walletHandler := NewWalletHandler(deps.LedgerSvc)
	transferHandler := NewTransferHandler(deps.LedgerSvc)

	wallets := v1.Group("/wallets", apiKeyAuth)
	{
		wallets.POST("", rl("wallets"), walletHandler.Create)
		wallets.GET("/:address", rl("wallets"), walletHandler.Get)
		wallets.POST("/:address/deposit", rl("wallets"), walletHandler.Deposit)
		wallets.POST("/:address/withdraw", rl("wallets"), walletHandler.Withdraw)
		wallets.GET("/:address/transactions", rl("wallets"), walletHandler.Transactions)
	}

	transfers := v1.Group("/transfers", apiKeyAuth)
	{
		transfers.POST("", rl("transfers"), transferHandler.Transfer)
	}

	// --- JWT-authenticated routes (dashboard) ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	dashboard := v1.Group("/dashboard", jwtAuth)
	{
		dashboard.GET("/wallets", walletHandler.ListOwn)
		dashboard.GET("/profile", authHandler.Profile)
	}

	return r
}
