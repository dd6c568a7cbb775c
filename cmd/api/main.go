package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bitcoin-wallet/config"
	httpHandler "bitcoin-wallet/internal/adapter/http/handler"
	memStorage "bitcoin-wallet/internal/adapter/storage/memory"
	pgStorage "bitcoin-wallet/internal/adapter/storage/postgres"
	redisStorage "bitcoin-wallet/internal/adapter/storage/redis"
	"bitcoin-wallet/internal/core/ports"
	"bitcoin-wallet/internal/service"
	"bitcoin-wallet/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Bitcoin Wallet")

	ctx := context.Background()

	// Storage backends
	var (
		userRepo       ports.UserRepository
		walletRepo     ports.WalletRepository
		txRepo         ports.TransactionRepository
		healthCheckers []ports.HealthChecker
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		if err := pgStorage.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database schema")
		}

		userRepo = pgStorage.NewUserRepo(pool)
		walletRepo = pgStorage.NewWalletRepo(pool)
		txRepo = pgStorage.NewTransactionRepo(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	default:
		userRepo = memStorage.NewUserRepo()
		walletRepo = memStorage.NewWalletRepo()
		txRepo = memStorage.NewTransactionRepo()
	}

	// Optional Redis rate limiting
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Core services
	hashSvc := service.NewArgon2HashService()
	keyGen := service.NewUniqueKeyGenerator()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	converter, err := service.NewFixedRateConverter(decimal.NewFromFloat(cfg.Exchange.USDPerBTC))
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid exchange rate")
	}
	fees := service.NewFeeRateStrategy(cfg.Fees)

	// Business services
	authSvc := service.NewAuthService(userRepo, walletRepo, hashSvc, keyGen, tokenSvc)
	ledgerSvc := service.NewLedgerService(authSvc, walletRepo, txRepo, fees, converter, keyGen, log)
	statsSvc := service.NewStatisticsService(txRepo, converter, cfg.Admin.APIKey)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LedgerSvc:      ledgerSvc,
		StatsSvc:       statsSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

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
