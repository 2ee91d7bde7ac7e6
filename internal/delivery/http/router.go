package http

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bricsbtc/internal/domain"
	custommiddleware "bricsbtc/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler    *AuthHandler
	OfferHandler   *OfferHandler
	TradeHandler   *TradeHandler
	WalletHandler  *WalletHandler
	PackageHandler *PackageHandler
	MessageHandler *MessageHandler
	UserHandler    *UserHandler
	AdminHandler   *AdminHandler

	TokenStore custommiddleware.TokenRevoker
	UserRepo   domain.UserRepository

	// FrontendURL is the origin allowed to send credentialed requests
	FrontendURL string
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for high-frequency polling endpoints to reduce noise
			path := c.Request().URL.Path
			if strings.Contains(path, "/messages/") && c.Request().Method == "GET" {
				return true
			}
			if strings.HasSuffix(path, "/notifications/unread") {
				return true
			}
			if strings.HasSuffix(path, "/market/ticker") || path == "/health" {
				return true
			}
			return false
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{config.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	authed := custommiddleware.Auth(config.TokenStore)
	kycApproved := custommiddleware.KYCApproved(config.UserRepo)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "bricsbtc-api",
		})
	})

	api := e.Group("/api")
	v1 := api.Group("/v1")

	// Auth routes (public except verify/logout, which resolve the session)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.GET("/verify", config.AuthHandler.Verify, authed)
		auth.GET("/logout", config.AuthHandler.Logout, authed)
	}

	// Market data and catalog reads (any authenticated user)
	v1.GET("/market/ticker", config.UserHandler.Ticker, authed)
	v1.GET("/cryptos", config.AdminHandler.GetCryptos, authed)
	v1.GET("/networks", config.AdminHandler.GetNetworks, authed)
	api.GET("/payment-methods", config.AdminHandler.GetPaymentMethods, authed)

	// Offer browsing (any authenticated user); mutation requires approved KYC
	offers := v1.Group("/offers", authed)
	{
		offers.GET("", config.OfferHandler.GetAll)
		offers.GET("/:id", config.OfferHandler.GetByID)
		offers.POST("/quote", config.OfferHandler.Quote)
		offers.POST("", config.OfferHandler.Create, kycApproved)
		offers.DELETE("/:id", config.OfferHandler.Delete, kycApproved)
	}
	api.PUT("/offer/toggle/:id", config.OfferHandler.Toggle, authed, kycApproved)

	// Trading requires approved KYC
	trades := v1.Group("/trades", authed, kycApproved)
	{
		trades.POST("", config.TradeHandler.Create)
		trades.GET("", config.TradeHandler.GetMine)
		trades.GET("/:id", config.TradeHandler.GetByID)
		trades.PUT("/:id/status", config.TradeHandler.UpdateStatus)
	}

	// Wallet: deposits and transfers
	api.POST("/deposit", config.WalletHandler.RequestDeposit, authed)
	api.GET("/deposit", config.WalletHandler.GetMyDeposits, authed)
	api.POST("/balance/transfer", config.WalletHandler.Transfer, authed)

	// Investment packages
	api.POST("/packages", config.PackageHandler.Purchase, authed)
	api.GET("/packages", config.PackageHandler.GetMine, authed)

	// Messaging and notifications (polled)
	messages := v1.Group("/messages", authed)
	{
		messages.POST("", config.MessageHandler.Send)
		messages.GET("/admins", config.MessageHandler.Admins)
		messages.GET("/:peerId", config.MessageHandler.Conversation)
	}
	notifications := v1.Group("/notifications", authed)
	{
		notifications.GET("", config.MessageHandler.Notifications)
		notifications.GET("/unread", config.MessageHandler.UnreadCount)
		notifications.PUT("/:id/read", config.MessageHandler.MarkRead)
	}

	// User dashboard and settings
	user := v1.Group("/user", authed)
	{
		user.GET("/dashboard", config.UserHandler.Dashboard)
		user.GET("/settings", config.UserHandler.Settings)
		user.PUT("/profile", config.UserHandler.UpdateProfile)
		user.PUT("/avatar", config.UserHandler.UpdateAvatar)
		user.GET("/transactions", config.UserHandler.Transactions)
	}

	// Admin routes (protected with Auth + Admin middleware)
	admin := v1.Group("/admin", authed, custommiddleware.AdminOnly)
	{
		admin.GET("/dashboard", config.AdminHandler.Dashboard)
		admin.GET("/users", config.AdminHandler.GetUsers)
		admin.GET("/users/:id", config.AdminHandler.GetUser)
		admin.DELETE("/users/:id", config.AdminHandler.DeleteUser)
		admin.PUT("/users/:id/kyc", config.AdminHandler.DecideKYC)
		admin.GET("/trades", config.AdminHandler.GetTrades)
		admin.PUT("/trades/:id/status", config.TradeHandler.UpdateStatus)
		admin.DELETE("/trades/:id", config.AdminHandler.DeleteTrade)

		admin.POST("/cryptos", config.AdminHandler.CreateCrypto)
		admin.PUT("/cryptos/:id", config.AdminHandler.UpdateCrypto)
		admin.DELETE("/cryptos/:id", config.AdminHandler.DeleteCrypto)

		admin.POST("/networks", config.AdminHandler.CreateNetwork)
		admin.PUT("/networks/:id", config.AdminHandler.UpdateNetwork)
		admin.DELETE("/networks/:id", config.AdminHandler.DeleteNetwork)

		admin.POST("/payment-methods", config.AdminHandler.CreatePaymentMethod)
		admin.PUT("/payment-methods/:id", config.AdminHandler.UpdatePaymentMethod)
		admin.DELETE("/payment-methods/:id", config.AdminHandler.DeletePaymentMethod)
	}

	// Admin wallet settlement, kept under /api for the legacy screens
	adminAPI := api.Group("", authed, custommiddleware.AdminOnly)
	{
		adminAPI.GET("/deposit/all", config.WalletHandler.GetAllDeposits)
		adminAPI.PUT("/deposit/approve/:id", config.WalletHandler.ApproveDeposit)
		adminAPI.PUT("/deposit/reject/:id", config.WalletHandler.RejectDeposit)
		adminAPI.POST("/balance/modify", config.WalletHandler.ModifyBalance)
		adminAPI.GET("/packages/all", config.PackageHandler.GetAll)
		adminAPI.DELETE("/packages/:id", config.PackageHandler.Delete)
	}
}
