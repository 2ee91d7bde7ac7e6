package domain

import (
	"time"

	"github.com/google/uuid"
)

// OfferType constants
const (
	OfferTypeBuy  = "BUY"
	OfferTypeSell = "SELL"
)

// Crypto is a currency listed on the platform
type Crypto struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// Network is a blockchain network a crypto can be moved over
type Network struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CryptoID  uuid.UUID `json:"cryptoId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentMethod is a fiat settlement channel attached to an offer
type PaymentMethod struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AccountNo string    `json:"accountNo"`
	CreatedAt time.Time `json:"createdAt"`
}

// Offer is a standing buy/sell listing, priced in USD per 1 unit of crypto.
// Invariants: MinLimit <= MaxLimit, Price > 0. Limits are USD-denominated
// for both BUY and SELL offers.
type Offer struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	CryptoID        uuid.UUID `json:"cryptoId"`
	PaymentMethodID uuid.UUID `json:"paymentMethodId"`
	Type            string    `json:"type"`
	Price           float64   `json:"price"`
	MinLimit        float64   `json:"minLimit"`
	MaxLimit        float64   `json:"maxLimit"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// OfferDetail is an offer joined with its crypto, owner and payment method,
// shaped the way listing and trade screens consume it.
type OfferDetail struct {
	Offer
	Crypto        *Crypto        `json:"crypto"`
	User          *OfferOwner    `json:"user"`
	PaymentMethod *PaymentMethod `json:"paymentMethod"`
}

// OfferOwner is the subset of the owner's profile shown on an offer
type OfferOwner struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Country  string    `json:"country"`
}
