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

// TradeHandler handles trade lifecycle requests
type TradeHandler struct {
	tradeService *usecase.TradeService
	tradeRepo    domain.TradeRepository
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradeService *usecase.TradeService, tradeRepo domain.TradeRepository) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, tradeRepo: tradeRepo}
}

// Create opens a trade against an offer. The amount is re-validated against
// the offer's limits server-side; the client-side quote is advisory only.
// POST /api/v1/trades
func (h *TradeHandler) Create(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		return BadRequestResponse(c, "Invalid offer ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	trade, err := h.tradeService.CreateTrade(ctx, offerID, userID, req.Amount)
	if err != nil {
		var limitErr *usecase.LimitError
		switch {
		case errors.As(err, &limitErr):
			return BadRequestResponse(c, limitErr.Message)
		case errors.Is(err, usecase.ErrOfferInactive):
			return BadRequestResponse(c, "This offer is no longer available")
		case errors.Is(err, usecase.ErrInvalidAmount):
			return BadRequestResponse(c, "Enter a valid amount")
		case errors.Is(err, repository.ErrNotFound):
			return NotFoundResponse(c, "Offer not found")
		}
		return InternalServerErrorResponse(c, "Failed to create trade", err)
	}

	return CreatedResponse(c, trade)
}

// GetByID retrieves a trade with its offer detail for the payment screen
// GET /api/v1/trades/:id
func (h *TradeHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid trade ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trade, err := h.tradeService.GetTrade(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Trade not found")
		}
		return InternalServerErrorResponse(c, "Failed to get trade", err)
	}

	return SuccessResponse(c, trade)
}

// GetMine lists the authenticated user's trades, newest first
// GET /api/v1/trades
func (h *TradeHandler) GetMine(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trades, err := h.tradeRepo.GetByUser(ctx, userID, 50)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get trades", err)
	}

	return SuccessResponse(c, trades)
}

// UpdateStatus advances a trade through its lifecycle. The buyer may only
// confirm payment on their own trade; COMPLETED and CANCELLED are admin
// verdicts. Both counterparties are notified.
// PUT /api/v1/trades/:id/status
func (h *TradeHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid trade ID")
	}

	var req dto.TradeStatusRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}
	role, _ := middleware.GetUserRole(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	trade, err := h.tradeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Trade not found")
		}
		return InternalServerErrorResponse(c, "Failed to get trade", err)
	}

	if role != domain.RoleAdmin {
		if trade.BuyerID != userID {
			return ForbiddenResponse(c, "You are not a party to this trade")
		}
		if req.Status != domain.TradePaid {
			return ForbiddenResponse(c, "Only payment confirmation is allowed")
		}
	}

	if err := h.tradeService.UpdateStatus(ctx, id, req.Status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Trade not found")
		}
		return BadRequestResponse(c, err.Error())
	}

	return SuccessMessageResponse(c, "Trade updated", nil)
}
