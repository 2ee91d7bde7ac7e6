package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trade statuses. A trade starts in PENDING_PAYMENT and must be paid within
// its payment window or the expiry sweep marks it EXPIRED.
const (
	TradePendingPayment = "PENDING_PAYMENT"
	TradePaid           = "PAID"
	TradeCompleted      = "COMPLETED"
	TradeCancelled      = "CANCELLED"
	TradeExpired        = "EXPIRED"
)

// Trade is an accepted instance of an offer between a buyer and a seller
type Trade struct {
	ID                   uuid.UUID `json:"id"`
	OfferID              uuid.UUID `json:"offerId"`
	BuyerID              uuid.UUID `json:"buyerId"`
	AmountUSD            float64   `json:"amountUSD"`
	AmountCrypto         float64   `json:"amountCrypto"`
	Status               string    `json:"status"`
	PaymentWindowMinutes int       `json:"paymentWindowMinutes"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// TradeDetail is a trade joined with its offer for the payment screen
type TradeDetail struct {
	Trade
	Offer *OfferDetail `json:"offer"`
}

// PaymentDeadline returns the instant the payment window closes
func (t *Trade) PaymentDeadline() time.Time {
	return t.CreatedAt.Add(time.Duration(t.PaymentWindowMinutes) * time.Minute)
}
