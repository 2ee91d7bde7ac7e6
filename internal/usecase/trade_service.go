package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"bricsbtc/internal/domain"
	"bricsbtc/pkg/logger"
)

// Trade creation errors surfaced to the API layer
var (
	ErrOfferInactive = errors.New("offer is not active")
	ErrInvalidAmount = errors.New("enter a valid amount")
)

// LimitError carries the human-facing limit message from quote validation
type LimitError struct {
	Message string
}

func (e *LimitError) Error() string { return e.Message }

// TradeService handles trade creation and lifecycle
type TradeService struct {
	offerRepo        domain.OfferRepository
	tradeRepo        domain.TradeRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	paymentWindow    int
}

// NewTradeService creates a new TradeService
func NewTradeService(
	offerRepo domain.OfferRepository,
	tradeRepo domain.TradeRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	paymentWindowMinutes int,
) *TradeService {
	return &TradeService{
		offerRepo:        offerRepo,
		tradeRepo:        tradeRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		paymentWindow:    paymentWindowMinutes,
	}
}

// CreateTrade re-runs the quote calculation server-side and, when valid,
// opens a trade in PENDING_PAYMENT. The client already validated on every
// keystroke; this is the authoritative check.
func (ts *TradeService) CreateTrade(ctx context.Context, offerID, buyerID uuid.UUID, amount float64) (*domain.Trade, error) {
	offer, err := ts.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if !offer.Active {
		return nil, ErrOfferInactive
	}

	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	quote := ComputeQuote(&offer.Offer, offer.Type, strconv.FormatFloat(amount, 'f', -1, 64))
	if !quote.Valid() {
		return nil, &LimitError{Message: quote.LimitError}
	}

	// Both sides of the trade in their own denomination
	amountUSD, amountCrypto := amount, quote.CounterAmount
	if offer.Type == domain.OfferTypeSell {
		amountUSD, amountCrypto = quote.CounterAmount, amount
	}

	trade := &domain.Trade{
		ID:                   uuid.New(),
		OfferID:              offerID,
		BuyerID:              buyerID,
		AmountUSD:            amountUSD,
		AmountCrypto:         amountCrypto,
		Status:               domain.TradePendingPayment,
		PaymentWindowMinutes: ts.paymentWindow,
		CreatedAt:            time.Now(),
	}

	if err := ts.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}

	ts.notify(ctx, offer.UserID, "New trade opened",
		fmt.Sprintf("A trade for $%.2f on your %s %s offer is awaiting payment.", amountUSD, offer.Type, offer.Crypto.Symbol))

	logger.Info().
		Str("trade_id", trade.ID.String()).
		Str("offer_id", offerID.String()).
		Float64("amount_usd", amountUSD).
		Msg("trade created")

	return trade, nil
}

// GetTrade retrieves a trade with its offer and payment instructions
func (ts *TradeService) GetTrade(ctx context.Context, id uuid.UUID) (*domain.TradeDetail, error) {
	return ts.tradeRepo.GetByID(ctx, id)
}

// UpdateStatus applies an admin verdict to a trade. Completing a trade
// notifies the buyer; cancelling notifies both sides.
func (ts *TradeService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case domain.TradePaid, domain.TradeCompleted, domain.TradeCancelled:
	default:
		return fmt.Errorf("unsupported trade status: %s", status)
	}

	trade, err := ts.tradeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := ts.tradeRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	switch status {
	case domain.TradeCompleted:
		ts.notify(ctx, trade.BuyerID, "Trade completed",
			fmt.Sprintf("Your trade of %.8f %s has been completed.", trade.AmountCrypto, trade.Offer.Crypto.Symbol))
	case domain.TradeCancelled:
		ts.notify(ctx, trade.BuyerID, "Trade cancelled",
			fmt.Sprintf("Your trade of $%.2f has been cancelled.", trade.AmountUSD))
		ts.notify(ctx, trade.Offer.UserID, "Trade cancelled",
			fmt.Sprintf("A trade of $%.2f on your offer has been cancelled.", trade.AmountUSD))
	}

	return nil
}

// ExpireStale marks overdue PENDING_PAYMENT trades as EXPIRED. Runs from
// the scheduler every minute.
func (ts *TradeService) ExpireStale(ctx context.Context) error {
	n, err := ts.tradeRepo.ExpirePastWindow(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info().Int64("expired", n).Msg("expired overdue trades")
	}
	return nil
}

func (ts *TradeService) notify(ctx context.Context, userID uuid.UUID, title, body string) {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := ts.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to create notification")
	}
}
