package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"bricsbtc/internal/domain"
)

func newTradeFixture() (*TradeService, *fakeOfferRepo, *fakeTradeRepo, *fakeNotificationRepo, *domain.OfferDetail) {
	offers := newFakeOfferRepo()
	trades := newFakeTradeRepo(offers)
	users := newFakeUserRepo()
	notifications := &fakeNotificationRepo{}

	owner := uuid.New()
	offer := &domain.OfferDetail{
		Offer: domain.Offer{
			ID:       uuid.New(),
			UserID:   owner,
			Type:     domain.OfferTypeBuy,
			Price:    100,
			MinLimit: 50,
			MaxLimit: 5000,
			Active:   true,
		},
		Crypto: &domain.Crypto{Symbol: "BTC", Name: "Bitcoin"},
	}
	offers.offers[offer.ID] = offer

	svc := NewTradeService(offers, trades, users, notifications, 60)
	return svc, offers, trades, notifications, offer
}

func TestCreateTradeBuy(t *testing.T) {
	svc, _, trades, notifications, offer := newTradeFixture()
	buyer := uuid.New()

	trade, err := svc.CreateTrade(context.Background(), offer.ID, buyer, 100)
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	if trade.AmountUSD != 100 {
		t.Errorf("AmountUSD = %v, want 100", trade.AmountUSD)
	}
	if math.Abs(trade.AmountCrypto-1.0) > 1e-9 {
		t.Errorf("AmountCrypto = %v, want 1.0", trade.AmountCrypto)
	}
	if trade.Status != domain.TradePendingPayment {
		t.Errorf("Status = %q, want %q", trade.Status, domain.TradePendingPayment)
	}
	if trade.PaymentWindowMinutes != 60 {
		t.Errorf("PaymentWindowMinutes = %d, want 60", trade.PaymentWindowMinutes)
	}
	if _, ok := trades.trades[trade.ID]; !ok {
		t.Error("trade not persisted")
	}

	// The offer owner gets notified
	got, _ := notifications.GetByUser(context.Background(), offer.UserID)
	if len(got) != 1 {
		t.Errorf("owner notifications = %d, want 1", len(got))
	}
}

func TestCreateTradeSellSwapsSides(t *testing.T) {
	svc, offers, _, _, offer := newTradeFixture()
	offer.Type = domain.OfferTypeSell
	offers.offers[offer.ID] = offer

	// SELL: the buyer enters crypto, USD side is amount * price
	trade, err := svc.CreateTrade(context.Background(), offer.ID, uuid.New(), 2)
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	if trade.AmountCrypto != 2 {
		t.Errorf("AmountCrypto = %v, want 2", trade.AmountCrypto)
	}
	if trade.AmountUSD != 200 {
		t.Errorf("AmountUSD = %v, want 200", trade.AmountUSD)
	}
}

func TestCreateTradeRejectsBelowMinimum(t *testing.T) {
	svc, _, _, _, offer := newTradeFixture()

	_, err := svc.CreateTrade(context.Background(), offer.ID, uuid.New(), 25)
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("err = %v, want LimitError", err)
	}
	if limitErr.Message != "Minimum trade amount is $50" {
		t.Errorf("Message = %q, want %q", limitErr.Message, "Minimum trade amount is $50")
	}
}

func TestCreateTradeRejectsAboveMaximum(t *testing.T) {
	svc, _, _, _, offer := newTradeFixture()

	_, err := svc.CreateTrade(context.Background(), offer.ID, uuid.New(), 6000)
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("err = %v, want LimitError", err)
	}
	if limitErr.Message != "Maximum trade amount is $5000" {
		t.Errorf("Message = %q, want %q", limitErr.Message, "Maximum trade amount is $5000")
	}
}

func TestCreateTradeRejectsInactiveOffer(t *testing.T) {
	svc, offers, _, _, offer := newTradeFixture()
	offer.Active = false
	offers.offers[offer.ID] = offer

	if _, err := svc.CreateTrade(context.Background(), offer.ID, uuid.New(), 100); !errors.Is(err, ErrOfferInactive) {
		t.Errorf("err = %v, want ErrOfferInactive", err)
	}
}

func TestCreateTradeRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _, _, offer := newTradeFixture()

	for _, amount := range []float64{0, -10} {
		if _, err := svc.CreateTrade(context.Background(), offer.ID, uuid.New(), amount); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("CreateTrade(%v) err = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, _, trades, notifications, offer := newTradeFixture()
	buyer := uuid.New()

	trade, err := svc.CreateTrade(context.Background(), offer.ID, buyer, 100)
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), trade.ID, domain.TradePaid); err != nil {
		t.Fatalf("UpdateStatus(PAID): %v", err)
	}
	if got := trades.trades[trade.ID].Status; got != domain.TradePaid {
		t.Errorf("Status = %q, want %q", got, domain.TradePaid)
	}

	if err := svc.UpdateStatus(context.Background(), trade.ID, domain.TradeCompleted); err != nil {
		t.Fatalf("UpdateStatus(COMPLETED): %v", err)
	}

	// Buyer is told about completion
	got, _ := notifications.GetByUser(context.Background(), buyer)
	if len(got) != 1 {
		t.Errorf("buyer notifications = %d, want 1", len(got))
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, offer := newTradeFixture()

	trade, err := svc.CreateTrade(context.Background(), offer.ID, uuid.New(), 100)
	if err != nil {
		t.Fatalf("CreateTrade: %v", err)
	}

	if err := svc.UpdateStatus(context.Background(), trade.ID, "SHIPPED"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := svc.UpdateStatus(context.Background(), trade.ID, domain.TradeExpired); err == nil {
		t.Error("EXPIRED is only set by the sweep, not the API")
	}
}
