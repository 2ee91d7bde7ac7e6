package http

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bricsbtc/internal/delivery/http/dto"
	"bricsbtc/internal/domain"
	"bricsbtc/internal/repository"
	"bricsbtc/internal/usecase"
)

// AdminHandler handles the admin console: user management, KYC decisions,
// catalog CRUD and platform-wide views.
type AdminHandler struct {
	userRepo      domain.UserRepository
	tradeRepo     domain.TradeRepository
	depositRepo   domain.DepositRepository
	catalogRepo   domain.CatalogRepository
	walletService *usecase.WalletService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	userRepo domain.UserRepository,
	tradeRepo domain.TradeRepository,
	depositRepo domain.DepositRepository,
	catalogRepo domain.CatalogRepository,
	walletService *usecase.WalletService,
) *AdminHandler {
	return &AdminHandler{
		userRepo:      userRepo,
		tradeRepo:     tradeRepo,
		depositRepo:   depositRepo,
		catalogRepo:   catalogRepo,
		walletService: walletService,
	}
}

// GetUsers lists all users
// GET /api/v1/admin/users
func (h *AdminHandler) GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.userRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get users", err)
	}

	return SuccessResponse(c, users)
}

// GetUser retrieves one user with their KYC documents
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "User not found")
		}
		return InternalServerErrorResponse(c, "Failed to get user", err)
	}

	docs, err := h.userRepo.GetKYCDocuments(ctx, id)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get KYC documents", err)
	}

	return SuccessResponse(c, map[string]interface{}{
		"user":         user,
		"kycDocuments": docs,
	})
}

// DeleteUser removes a user account
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "User not found")
		}
		return InternalServerErrorResponse(c, "Failed to delete user", err)
	}

	return SuccessMessageResponse(c, "User deleted", nil)
}

// DecideKYC records the KYC verdict for a user and notifies them
// PUT /api/v1/admin/users/:id/kyc
func (h *AdminHandler) DecideKYC(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}

	var req dto.KYCDecisionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Status != domain.KYCApproved && req.Status != domain.KYCRejected {
		return BadRequestResponse(c, "Status must be APPROVED or REJECTED")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.userRepo.UpdateKYCStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "User not found")
		}
		return InternalServerErrorResponse(c, "Failed to update KYC status", err)
	}

	h.walletService.NotifyKYC(ctx, id, req.Status)

	return SuccessMessageResponse(c, "KYC status updated", nil)
}

// GetTrades lists every trade for the admin trades screen
// GET /api/v1/admin/trades
func (h *AdminHandler) GetTrades(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	trades, err := h.tradeRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get trades", err)
	}

	return SuccessResponse(c, trades)
}

// DeleteTrade removes a trade record
// DELETE /api/v1/admin/trades/:id
func (h *AdminHandler) DeleteTrade(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid trade ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.tradeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Trade not found")
		}
		return InternalServerErrorResponse(c, "Failed to delete trade", err)
	}

	return SuccessMessageResponse(c, "Trade deleted", nil)
}

// Dashboard aggregates platform-wide counts for the admin dashboard
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	users, err := h.userRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get users", err)
	}

	deposits, err := h.depositRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get deposits", err)
	}

	trades, err := h.tradeRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get trades", err)
	}

	var pendingKYC, pendingDeposits int
	var depositVolume float64
	for _, u := range users {
		if u.Role == domain.RoleUser && u.KYCStatus == domain.KYCPending {
			pendingKYC++
		}
	}
	for _, d := range deposits {
		switch d.Status {
		case domain.DepositPending:
			pendingDeposits++
		case domain.DepositApproved:
			depositVolume += d.Amount
		}
	}

	return SuccessResponse(c, map[string]interface{}{
		"totalUsers":      len(users),
		"totalTrades":     len(trades),
		"pendingKyc":      pendingKYC,
		"pendingDeposits": pendingDeposits,
		"depositVolume":   depositVolume,
	})
}

// CreateCrypto lists a new crypto
// POST /api/v1/admin/cryptos
func (h *AdminHandler) CreateCrypto(c echo.Context) error {
	var req dto.CryptoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Name == "" || req.Symbol == "" {
		return BadRequestResponse(c, "Name and symbol are required")
	}

	crypto := &domain.Crypto{
		ID:        uuid.New(),
		Name:      req.Name,
		Symbol:    req.Symbol,
		Price:     req.Price,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.CreateCrypto(ctx, crypto); err != nil {
		return InternalServerErrorResponse(c, "Failed to create crypto", err)
	}

	return CreatedResponse(c, crypto)
}

// GetCryptos lists all cryptos
// GET /api/v1/cryptos
func (h *AdminHandler) GetCryptos(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cryptos, err := h.catalogRepo.GetCryptos(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get cryptos", err)
	}

	return SuccessResponse(c, cryptos)
}

// UpdateCrypto updates a listed crypto
// PUT /api/v1/admin/cryptos/:id
func (h *AdminHandler) UpdateCrypto(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid crypto ID")
	}

	var req dto.CryptoRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	crypto := &domain.Crypto{
		ID:     id,
		Name:   req.Name,
		Symbol: req.Symbol,
		Price:  req.Price,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.UpdateCrypto(ctx, crypto); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Crypto not found")
		}
		return InternalServerErrorResponse(c, "Failed to update crypto", err)
	}

	return SuccessResponse(c, crypto)
}

// DeleteCrypto removes a listed crypto
// DELETE /api/v1/admin/cryptos/:id
func (h *AdminHandler) DeleteCrypto(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid crypto ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.DeleteCrypto(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Crypto not found")
		}
		return InternalServerErrorResponse(c, "Failed to delete crypto", err)
	}

	return SuccessMessageResponse(c, "Crypto deleted", nil)
}

// CreateNetwork creates a network under a crypto
// POST /api/v1/admin/networks
func (h *AdminHandler) CreateNetwork(c echo.Context) error {
	var req dto.NetworkRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	cryptoID, err := uuid.Parse(req.CryptoID)
	if err != nil {
		return BadRequestResponse(c, "Invalid crypto ID")
	}
	if req.Name == "" {
		return BadRequestResponse(c, "Name is required")
	}

	network := &domain.Network{
		ID:        uuid.New(),
		Name:      req.Name,
		CryptoID:  cryptoID,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.CreateNetwork(ctx, network); err != nil {
		return InternalServerErrorResponse(c, "Failed to create network", err)
	}

	return CreatedResponse(c, network)
}

// GetNetworks lists all networks
// GET /api/v1/networks
func (h *AdminHandler) GetNetworks(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	networks, err := h.catalogRepo.GetNetworks(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get networks", err)
	}

	return SuccessResponse(c, networks)
}

// UpdateNetwork updates a network
// PUT /api/v1/admin/networks/:id
func (h *AdminHandler) UpdateNetwork(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid network ID")
	}

	var req dto.NetworkRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	cryptoID, err := uuid.Parse(req.CryptoID)
	if err != nil {
		return BadRequestResponse(c, "Invalid crypto ID")
	}

	network := &domain.Network{ID: id, Name: req.Name, CryptoID: cryptoID}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.UpdateNetwork(ctx, network); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Network not found")
		}
		return InternalServerErrorResponse(c, "Failed to update network", err)
	}

	return SuccessResponse(c, network)
}

// DeleteNetwork removes a network
// DELETE /api/v1/admin/networks/:id
func (h *AdminHandler) DeleteNetwork(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid network ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.DeleteNetwork(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Network not found")
		}
		return InternalServerErrorResponse(c, "Failed to delete network", err)
	}

	return SuccessMessageResponse(c, "Network deleted", nil)
}

// CreatePaymentMethod creates a payment method
// POST /api/v1/admin/payment-methods
func (h *AdminHandler) CreatePaymentMethod(c echo.Context) error {
	var req dto.PaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Name == "" {
		return BadRequestResponse(c, "Name is required")
	}

	pm := &domain.PaymentMethod{
		ID:        uuid.New(),
		Name:      req.Name,
		AccountNo: req.AccountNo,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.CreatePaymentMethod(ctx, pm); err != nil {
		return InternalServerErrorResponse(c, "Failed to create payment method", err)
	}

	return CreatedResponse(c, pm)
}

// GetPaymentMethods lists all payment methods
// GET /api/payment-methods
func (h *AdminHandler) GetPaymentMethods(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	methods, err := h.catalogRepo.GetPaymentMethods(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get payment methods", err)
	}

	return SuccessResponse(c, methods)
}

// UpdatePaymentMethod updates a payment method
// PUT /api/v1/admin/payment-methods/:id
func (h *AdminHandler) UpdatePaymentMethod(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid payment method ID")
	}

	var req dto.PaymentMethodRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	pm := &domain.PaymentMethod{ID: id, Name: req.Name, AccountNo: req.AccountNo}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.UpdatePaymentMethod(ctx, pm); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Payment method not found")
		}
		return InternalServerErrorResponse(c, "Failed to update payment method", err)
	}

	return SuccessResponse(c, pm)
}

// DeletePaymentMethod removes a payment method
// DELETE /api/v1/admin/payment-methods/:id
func (h *AdminHandler) DeletePaymentMethod(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid payment method ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.catalogRepo.DeletePaymentMethod(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Payment method not found")
		}
		return InternalServerErrorResponse(c, "Failed to delete payment method", err)
	}

	return SuccessMessageResponse(c, "Payment method deleted", nil)
}
