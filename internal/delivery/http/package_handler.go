package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bricsbtc/internal/delivery/http/dto"
	"bricsbtc/internal/domain"
	"bricsbtc/internal/middleware"
	"bricsbtc/internal/repository"
	"bricsbtc/internal/usecase"
)

// PackageHandler handles investment package requests
type PackageHandler struct {
	investService *usecase.InvestService
	packageRepo   domain.PackageRepository
}

// NewPackageHandler creates a new PackageHandler
func NewPackageHandler(investService *usecase.InvestService, packageRepo domain.PackageRepository) *PackageHandler {
	return &PackageHandler{investService: investService, packageRepo: packageRepo}
}

// Purchase buys an investment package. The principal is deducted from the
// buyer's balance up front.
// POST /api/packages
func (h *PackageHandler) Purchase(c echo.Context) error {
	authedID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.PurchasePackageRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	userID := authedID
	if req.UserID != "" {
		parsed, err := uuid.Parse(req.UserID)
		if err != nil {
			return BadRequestResponse(c, "Invalid user ID")
		}
		role, _ := middleware.GetUserRole(c)
		if parsed != authedID && role != domain.RoleAdmin {
			return ForbiddenResponse(c, "You can only purchase for yourself")
		}
		userID = parsed
	}

	if req.Amount <= 0 || req.DailyROI < 0 || req.DurationDays <= 0 {
		return BadRequestResponse(c, "Invalid package parameters")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	pkg, err := h.investService.Purchase(ctx, userID, req.Name, req.Amount, req.DailyROI, req.DurationDays)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return BadRequestResponse(c, "Insufficient balance")
		}
		return InternalServerErrorResponse(c, "Failed to purchase package", err)
	}

	return CreatedResponse(c, pkg)
}

// GetMine lists the authenticated user's packages, newest first
// GET /api/packages
func (h *PackageHandler) GetMine(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	packages, err := h.packageRepo.GetByUser(ctx, userID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get packages", err)
	}

	return SuccessResponse(c, packages)
}

// GetAll lists every package for the admin investments screen
// GET /api/packages/all
func (h *PackageHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	packages, err := h.packageRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get packages", err)
	}

	return SuccessResponse(c, packages)
}

// Delete removes a package, optionally refunding the principal
// DELETE /api/packages/:id?refund=true
func (h *PackageHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid package ID")
	}

	refund, _ := strconv.ParseBool(c.QueryParam("refund"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.investService.Delete(ctx, id, refund); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Package not found")
		}
		return InternalServerErrorResponse(c, "Failed to delete package", err)
	}

	return SuccessMessageResponse(c, "Package deleted", nil)
}
