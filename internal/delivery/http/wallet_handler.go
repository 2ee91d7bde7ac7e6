package http

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bricsbtc/internal/delivery/http/dto"
	"bricsbtc/internal/domain"
	"bricsbtc/internal/middleware"
	"bricsbtc/internal/repository"
	"bricsbtc/internal/usecase"
)

// WalletHandler handles deposits and balance movements
type WalletHandler struct {
	walletService *usecase.WalletService
	depositRepo   domain.DepositRepository
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *usecase.WalletService, depositRepo domain.DepositRepository) *WalletHandler {
	return &WalletHandler{walletService: walletService, depositRepo: depositRepo}
}

// RequestDeposit opens a deposit request awaiting admin settlement
// POST /api/deposit
func (h *WalletHandler) RequestDeposit(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if req.Amount <= 0 {
		return BadRequestResponse(c, "Amount must be positive")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deposit, err := h.walletService.RequestDeposit(ctx, userID, req.Amount)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to create deposit", err)
	}

	return CreatedResponse(c, deposit)
}

// GetMyDeposits lists the authenticated user's deposits, newest first
// GET /api/deposit
func (h *WalletHandler) GetMyDeposits(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deposits, err := h.depositRepo.GetByUser(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get deposits", err)
	}

	return SuccessResponse(c, deposits)
}

// GetAllDeposits lists every deposit for the admin settlement screen
// GET /api/deposit/all
func (h *WalletHandler) GetAllDeposits(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deposits, err := h.depositRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get deposits", err)
	}

	return SuccessResponse(c, deposits)
}

// ApproveDeposit settles a pending deposit and credits the user's balance.
// A deposit can only be settled once.
// PUT /api/deposit/approve/:id
func (h *WalletHandler) ApproveDeposit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid deposit ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.walletService.ApproveDeposit(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return NotFoundResponse(c, "Deposit not found")
		case errors.Is(err, usecase.ErrDepositSettled):
			return BadRequestResponse(c, "Deposit has already been settled")
		}
		return InternalServerErrorResponse(c, "Failed to approve deposit", err)
	}

	return SuccessMessageResponse(c, "Deposit approved", nil)
}

// RejectDeposit declines a pending deposit without crediting anything
// PUT /api/deposit/reject/:id
func (h *WalletHandler) RejectDeposit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid deposit ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.walletService.RejectDeposit(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return NotFoundResponse(c, "Deposit not found")
		case errors.Is(err, usecase.ErrDepositSettled):
			return BadRequestResponse(c, "Deposit has already been settled")
		}
		return InternalServerErrorResponse(c, "Failed to reject deposit", err)
	}

	return SuccessMessageResponse(c, "Deposit rejected", nil)
}

// Transfer moves balance between two users. The sender must be the
// authenticated user unless an admin is acting.
// POST /api/balance/transfer
func (h *WalletHandler) Transfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	fromID, err := uuid.Parse(req.FromUserID)
	if err != nil {
		return BadRequestResponse(c, "Invalid sender ID")
	}
	toID, err := uuid.Parse(req.ToUserID)
	if err != nil {
		return BadRequestResponse(c, "Invalid recipient ID")
	}
	if req.Amount <= 0 {
		return BadRequestResponse(c, "Amount must be positive")
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if fromID != userID && role != domain.RoleAdmin {
		return ForbiddenResponse(c, "You can only transfer from your own balance")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.walletService.Transfer(ctx, fromID, toID, req.Amount); err != nil {
		switch {
		case errors.Is(err, usecase.ErrSelfTransfer):
			return BadRequestResponse(c, "Cannot transfer to yourself")
		case errors.Is(err, repository.ErrInsufficientBalance):
			return BadRequestResponse(c, "Insufficient balance")
		case errors.Is(err, repository.ErrNotFound):
			return NotFoundResponse(c, "User not found")
		}
		return InternalServerErrorResponse(c, "Failed to transfer", err)
	}

	return SuccessMessageResponse(c, "Transfer completed", nil)
}

// ModifyBalance lets an admin add to or remove from a user's balance
// POST /api/balance/modify
func (h *WalletHandler) ModifyBalance(c echo.Context) error {
	var req dto.ModifyBalanceRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return BadRequestResponse(c, "Invalid user ID")
	}
	if req.Amount <= 0 {
		return BadRequestResponse(c, "Amount must be positive")
	}
	if req.Action != "add" && req.Action != "remove" {
		return BadRequestResponse(c, "Action must be add or remove")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.walletService.AdminModify(ctx, userID, req.Amount, req.Action); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientBalance):
			return BadRequestResponse(c, "Insufficient balance")
		case errors.Is(err, repository.ErrNotFound):
			return NotFoundResponse(c, "User not found")
		}
		return InternalServerErrorResponse(c, "Failed to modify balance", err)
	}

	return SuccessMessageResponse(c, "Balance updated", nil)
}
