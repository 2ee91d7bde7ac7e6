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

// OfferHandler handles offer listing, creation and quote previews
type OfferHandler struct {
	offerRepo domain.OfferRepository
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerRepo domain.OfferRepository) *OfferHandler {
	return &OfferHandler{offerRepo: offerRepo}
}

// Create creates a new offer owned by the authenticated user
// POST /api/v1/offers
func (h *OfferHandler) Create(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "Not authenticated")
	}

	var req dto.CreateOfferRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	cryptoID, err := uuid.Parse(req.CryptoID)
	if err != nil {
		return BadRequestResponse(c, "Invalid crypto ID")
	}
	paymentMethodID, err := uuid.Parse(req.PaymentMethodID)
	if err != nil {
		return BadRequestResponse(c, "Invalid payment method ID")
	}
	if req.Type != domain.OfferTypeBuy && req.Type != domain.OfferTypeSell {
		return BadRequestResponse(c, "Offer type must be BUY or SELL")
	}
	if req.Price <= 0 {
		return BadRequestResponse(c, "Price must be positive")
	}
	if req.MinLimit < 0 || req.MinLimit > req.MaxLimit {
		return BadRequestResponse(c, "Invalid trade limits")
	}

	offer := &domain.Offer{
		ID:              uuid.New(),
		UserID:          userID,
		CryptoID:        cryptoID,
		PaymentMethodID: paymentMethodID,
		Type:            req.Type,
		Price:           req.Price,
		MinLimit:        req.MinLimit,
		MaxLimit:        req.MaxLimit,
		Active:          true,
		CreatedAt:       time.Now(),
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.offerRepo.Create(ctx, offer); err != nil {
		return InternalServerErrorResponse(c, "Failed to create offer", err)
	}

	return CreatedResponse(c, offer)
}

// GetAll lists all active offers with their joined detail
// GET /api/v1/offers
func (h *OfferHandler) GetAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offers, err := h.offerRepo.GetAll(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to get offers", err)
	}

	return SuccessResponse(c, offers)
}

// GetByID retrieves a single offer
// GET /api/v1/offers/:id
func (h *OfferHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid offer ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer, err := h.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Offer not found")
		}
		return InternalServerErrorResponse(c, "Failed to get offer", err)
	}

	return SuccessResponse(c, offer)
}

// Toggle flips an offer's visibility. Only the owner or an admin may do it.
// PUT /api/offer/toggle/:id
func (h *OfferHandler) Toggle(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid offer ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer, err := h.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Offer not found")
		}
		return InternalServerErrorResponse(c, "Failed to get offer", err)
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if offer.UserID != userID && role != domain.RoleAdmin {
		return ForbiddenResponse(c, "You do not own this offer")
	}

	if err := h.offerRepo.SetActive(ctx, id, !offer.Active); err != nil {
		return InternalServerErrorResponse(c, "Failed to toggle offer", err)
	}

	return SuccessMessageResponse(c, "Offer updated", nil)
}

// Delete removes an offer. Only the owner or an admin may do it.
// DELETE /api/v1/offers/:id
func (h *OfferHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid offer ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	offer, err := h.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Offer not found")
		}
		return InternalServerErrorResponse(c, "Failed to get offer", err)
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)
	if offer.UserID != userID && role != domain.RoleAdmin {
		return ForbiddenResponse(c, "You do not own this offer")
	}

	if err := h.offerRepo.Delete(ctx, id); err != nil {
		return InternalServerErrorResponse(c, "Failed to delete offer", err)
	}

	return SuccessMessageResponse(c, "Offer deleted", nil)
}

// Quote previews the counter amount and limit check for an entered amount
// without creating a trade. The amount is passed as the raw input string so
// an unparseable entry quotes as zero rather than failing the request.
// POST /api/v1/offers/quote
func (h *OfferHandler) Quote(c echo.Context) error {
	var req dto.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		return BadRequestResponse(c, "Invalid offer ID")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NotFoundResponse(c, "Offer not found")
		}
		return InternalServerErrorResponse(c, "Failed to get offer", err)
	}

	quote := usecase.ComputeQuote(&detail.Offer, detail.Type, req.Amount)

	return SuccessResponse(c, quote)
}
