package usecase

import (
	"math"
	"strconv"

	"bricsbtc/internal/domain"
)

// Quote is the result of converting a user-entered amount into the
// counter-currency amount, plus a validity verdict against the offer's
// USD-denominated trade limits. LimitError is empty when the amount is
// within limits (or nothing has been entered yet).
type Quote struct {
	CounterAmount float64 `json:"counterAmount"`
	LimitError    string  `json:"limitError,omitempty"`
}

// Valid reports whether the quote can be submitted as a trade
func (q Quote) Valid() bool {
	return q.LimitError == ""
}

// ComputeQuote converts entered (raw user input) into the counter amount for
// the given offer side and checks the USD side against the offer's limits.
//
// BUY: the user enters USD, counter is crypto (entered / price) and the
// entered USD amount itself is checked against the limits.
// SELL: the user enters crypto, counter is USD (entered * price) and the
// computed USD amount is checked against the limits.
//
// An unparseable or empty entered value yields {0, ""}: no error is shown
// before the user has typed a number. The function is pure and performs
// no I/O.
func ComputeQuote(offer *domain.Offer, side string, entered string) Quote {
	amount, err := strconv.ParseFloat(entered, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Quote{}
	}

	var counter, usdSide float64
	switch side {
	case domain.OfferTypeSell:
		counter = amount * offer.Price
		usdSide = counter
	default: // BUY
		counter = amount / offer.Price
		usdSide = amount
	}

	q := Quote{CounterAmount: counter}
	switch {
	case usdSide < offer.MinLimit:
		q.LimitError = "Minimum trade amount is $" + formatUSD(offer.MinLimit)
	case usdSide > offer.MaxLimit:
		q.LimitError = "Maximum trade amount is $" + formatUSD(offer.MaxLimit)
	}
	return q
}

// formatUSD renders a limit the way the screens show it: no trailing zeros,
// "50" not "50.00".
func formatUSD(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
