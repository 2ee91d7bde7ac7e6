package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"bricsbtc/configs"
	"bricsbtc/internal/adapter"
	"bricsbtc/internal/database"
	delivery "bricsbtc/internal/delivery/http"
	"bricsbtc/internal/infra"
	"bricsbtc/internal/middleware"
	"bricsbtc/internal/repository"
	"bricsbtc/internal/service"
	"bricsbtc/internal/usecase"
	"bricsbtc/pkg/logger"
)

func main() {
	envMissing := godotenv.Load() != nil

	cfg := configs.Load()
	logger.Init("bricsbtc", getLogLevel(cfg), cfg.Server.Env == "development")
	if envMissing {
		logger.Warn().Msg(".env file not found, using environment variables")
	}

	if cfg.Auth.JWTSecret == "" && cfg.Server.Env == "production" {
		logger.Fatal().Msg("JWT_SECRET must be set in production")
	}
	middleware.SetJWTSecret(cfg.Auth.JWTSecret)

	ctx := context.Background()

	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := infra.NewRedis(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	uploader, err := adapter.NewCloudinaryUploader(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize cloudinary")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	offerRepo := repository.NewOfferRepository(db)
	tradeRepo := repository.NewTradeRepository(db, offerRepo)
	depositRepo := repository.NewDepositRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	tokenStore := service.NewTokenStore(rdb)
	tickerService := service.NewTickerService(rdb, catalogRepo)
	tradeService := usecase.NewTradeService(offerRepo, tradeRepo, userRepo, notificationRepo, cfg.Trading.PaymentWindowMinutes)
	walletService := usecase.NewWalletService(userRepo, depositRepo, transactionRepo, notificationRepo)
	investService := usecase.NewInvestService(packageRepo, userRepo, transactionRepo, notificationRepo)

	// Recurring jobs
	scheduler := infra.NewScheduler(tickerService, tradeService, investService)
	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer scheduler.Stop()

	// HTTP layer
	tokenTTL := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour
	secureCookie := cfg.Server.Env == "production"

	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:    delivery.NewAuthHandler(userRepo, uploader, tokenStore, tokenTTL, secureCookie),
		OfferHandler:   delivery.NewOfferHandler(offerRepo),
		TradeHandler:   delivery.NewTradeHandler(tradeService, tradeRepo),
		WalletHandler:  delivery.NewWalletHandler(walletService, depositRepo),
		PackageHandler: delivery.NewPackageHandler(investService, packageRepo),
		MessageHandler: delivery.NewMessageHandler(messageRepo, notificationRepo, userRepo),
		UserHandler:    delivery.NewUserHandler(userRepo, tradeRepo, packageRepo, transactionRepo, uploader, tickerService),
		AdminHandler:   delivery.NewAdminHandler(userRepo, tradeRepo, depositRepo, catalogRepo, walletService),
		TokenStore:     tokenStore,
		UserRepo:       userRepo,
		FrontendURL:    cfg.Server.FrontendURL,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}

func getLogLevel(cfg *configs.Config) string {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		return level
	}
	if cfg.Server.Env == "production" {
		return "info"
	}
	return "debug"
}
