package dto

// KYCDecisionRequest represents an admin KYC verdict
type KYCDecisionRequest struct {
	Status string `json:"status" validate:"required"` // APPROVED or REJECTED
}

// TradeStatusRequest represents an admin trade status change
type TradeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CryptoRequest represents create/update of a listed crypto
type CryptoRequest struct {
	Name   string  `json:"name" validate:"required"`
	Symbol string  `json:"symbol" validate:"required"`
	Price  float64 `json:"price"`
}

// NetworkRequest represents create/update of a network
type NetworkRequest struct {
	Name     string `json:"name" validate:"required"`
	CryptoID string `json:"cryptoId" validate:"required"`
}

// PaymentMethodRequest represents create/update of a payment method
type PaymentMethodRequest struct {
	Name      string `json:"name" validate:"required"`
	AccountNo string `json:"accountNo"`
}

// UpdateProfileRequest represents a settings-page profile update
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Country  string `json:"country"`
	Address  string `json:"address"`
}
