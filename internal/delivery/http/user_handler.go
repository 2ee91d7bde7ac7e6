package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"bricsbtc/internal/adapter"
	"bricsbtc/internal/delivery/http/dto"
	"bricsbtc/internal/domain"
	"bricsbtc/internal/middleware"
	"bricsbtc/internal/service"
	"bricsbtc/internal/session"
)

// UserHandler handles the user dashboard, settings and ledger screens
type UserHandler struct {
	userRepo        domain.UserRepository
	tradeRepo       domain.TradeRepository
	packageRepo     domain.PackageRepository
	transactionRepo domain.TransactionRepository
	uploader        adapter.Uploader
	ticker          *service.TickerService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo domain.UserRepository,
	tradeRepo domain.TradeRepository,
	packageRepo domain.PackageRepository,
	transactionRepo domain.TransactionRepository,
	uploader adapter.Uploader,
	ticker *service.TickerService,
) *UserHandler {
	return &UserHandler{
		userRepo:        userRepo,
		tradeRepo:       tradeRepo,
		packageRepo:     packageRepo,
		transactionRepo: transactionRepo,
		uploader:        uploader,
		ticker:          ticker,
	}
}

// Dashboard aggregates the numbers the user dashboard shows: balance,
// recent trades and active investments.
// GET /api/v1/user/dashboard
func (h *UserHandler) Dashboard(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get user", err)
	}

	trades, err := h.tradeRepo.GetByUser(ctx, userID, 10)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get trades", err)
	}

	packages, err := h.packageRepo.GetByUser(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get packages", err)
	}

	var invested float64
	for _, p := range packages {
		if p.Status == domain.PackageActive {
			invested += p.Amount
		}
	}

	return SuccessResponse(c, map[string]interface{}{
		"user":          session.FromUser(user),
		"balance":       user.Balance,
		"totalInvested": invested,
		"recentTrades":  trades,
		"packages":      packages,
	})
}

// Settings returns the profile fields the settings screen edits
// GET /api/v1/user/settings
func (h *UserHandler) Settings(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get user", err)
	}

	return SuccessResponse(c, session.FromUser(user))
}

// UpdateProfile updates the settings-page profile fields
// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get user", err)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Country != "" {
		user.Country = req.Country
	}
	if req.Address != "" {
		user.Address = req.Address
	}

	if err := h.userRepo.UpdateProfile(ctx, user); err != nil {
		return InternalServerErrorResponse(c, "Failed to update profile", err)
	}

	return SuccessResponse(c, session.FromUser(user))
}

// UpdateAvatar replaces the user's avatar
// PUT /api/v1/user/avatar (multipart, field "avatar")
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		return BadRequestResponse(c, "Avatar file is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	url, err := h.uploader.UploadFromHeader(ctx, avatar, "avatars")
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to upload avatar", err)
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get user", err)
	}
	user.AvatarURL = url

	if err := h.userRepo.UpdateProfile(ctx, user); err != nil {
		return InternalServerErrorResponse(c, "Failed to update avatar", err)
	}

	return SuccessResponse(c, map[string]string{"avatarUrl": url})
}

// Transactions lists the authenticated user's balance ledger, newest first
// GET /api/v1/user/transactions
func (h *UserHandler) Transactions(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transactions, err := h.transactionRepo.GetByUser(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get transactions", err)
	}

	return SuccessResponse(c, transactions)
}

// Ticker returns the cached market snapshot. The scheduler refreshes it
// every ten seconds; this endpoint never hits the upstream exchange.
// GET /api/v1/market/ticker
func (h *UserHandler) Ticker(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prices, err := h.ticker.Snapshot(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get ticker", err)
	}

	return SuccessResponse(c, prices)
}
