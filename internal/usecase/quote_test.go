package usecase

import (
	"math"
	"testing"

	"bricsbtc/internal/domain"
)

func testOffer() *domain.Offer {
	return &domain.Offer{Price: 100, MinLimit: 50, MaxLimit: 5000}
}

func TestComputeQuote_BuyBelowMinimum(t *testing.T) {
	q := ComputeQuote(testOffer(), domain.OfferTypeBuy, "25")

	if q.CounterAmount != 0.25 {
		t.Errorf("CounterAmount = %v, want 0.25", q.CounterAmount)
	}
	if q.LimitError != "Minimum trade amount is $50" {
		t.Errorf("LimitError = %q, want %q", q.LimitError, "Minimum trade amount is $50")
	}
	if q.Valid() {
		t.Error("quote below minimum should not be valid")
	}
}

func TestComputeQuote_SellWithinLimits(t *testing.T) {
	q := ComputeQuote(testOffer(), domain.OfferTypeSell, "10")

	if q.CounterAmount != 1000 {
		t.Errorf("CounterAmount = %v, want 1000", q.CounterAmount)
	}
	if q.LimitError != "" {
		t.Errorf("LimitError = %q, want empty", q.LimitError)
	}
	if !q.Valid() {
		t.Error("quote within limits should be valid")
	}
}

func TestComputeQuote_LimitMessages(t *testing.T) {
	tests := []struct {
		name    string
		side    string
		entered string
		wantErr string
	}{
		{"buy below min", domain.OfferTypeBuy, "49.99", "Minimum trade amount is $50"},
		{"buy at min", domain.OfferTypeBuy, "50", ""},
		{"buy at max", domain.OfferTypeBuy, "5000", ""},
		{"buy above max", domain.OfferTypeBuy, "5000.01", "Maximum trade amount is $5000"},
		{"sell usd side below min", domain.OfferTypeSell, "0.25", "Minimum trade amount is $50"},
		{"sell usd side at min", domain.OfferTypeSell, "0.5", ""},
		{"sell usd side above max", domain.OfferTypeSell, "51", "Maximum trade amount is $5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ComputeQuote(testOffer(), tt.side, tt.entered)
			if q.LimitError != tt.wantErr {
				t.Errorf("LimitError = %q, want %q", q.LimitError, tt.wantErr)
			}
		})
	}
}

func TestComputeQuote_FractionalLimitFormatting(t *testing.T) {
	offer := &domain.Offer{Price: 2, MinLimit: 10.5, MaxLimit: 99.9}

	q := ComputeQuote(offer, domain.OfferTypeBuy, "1")
	if q.LimitError != "Minimum trade amount is $10.5" {
		t.Errorf("LimitError = %q, want %q", q.LimitError, "Minimum trade amount is $10.5")
	}

	q = ComputeQuote(offer, domain.OfferTypeBuy, "100")
	if q.LimitError != "Maximum trade amount is $99.9" {
		t.Errorf("LimitError = %q, want %q", q.LimitError, "Maximum trade amount is $99.9")
	}
}

func TestComputeQuote_UnparseableInput(t *testing.T) {
	for _, entered := range []string{"", "abc", "12,5", "NaN", "Inf"} {
		q := ComputeQuote(testOffer(), domain.OfferTypeBuy, entered)
		if q.CounterAmount != 0 || q.LimitError != "" {
			t.Errorf("ComputeQuote(%q) = %+v, want zero quote with no error", entered, q)
		}
	}
}

func TestComputeQuote_RoundTrip(t *testing.T) {
	// Buying USD -> crypto and selling that crypto back at the same price
	// must return the original USD amount.
	prices := []float64{0.37, 1, 42.5, 100, 67234.12}
	amounts := []string{"50", "123.45", "4999.99"}

	for _, price := range prices {
		offer := &domain.Offer{Price: price, MinLimit: 0, MaxLimit: math.MaxFloat64}
		for _, amount := range amounts {
			usd := mustParse(t, amount)
			crypto := ComputeQuote(offer, domain.OfferTypeBuy, amount).CounterAmount
			back := crypto * offer.Price

			if math.Abs(back-usd) > 1e-9*usd {
				t.Errorf("round trip at price %v: %v USD -> %v crypto -> %v USD", price, usd, crypto, back)
			}
		}
	}
}

func mustParse(t *testing.T, s string) float64 {
	t.Helper()
	q := ComputeQuote(&domain.Offer{Price: 1, MinLimit: 0, MaxLimit: math.MaxFloat64}, domain.OfferTypeBuy, s)
	return q.CounterAmount
}
