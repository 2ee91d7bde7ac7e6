package dto

// CreateTradeRequest represents the trade creation payload
type CreateTradeRequest struct {
	OfferID string  `json:"offerId" validate:"required"`
	BuyerID string  `json:"buyerId" validate:"required"`
	Amount  float64 `json:"amount" validate:"required"`
}

// CreateOfferRequest represents the offer creation payload
type CreateOfferRequest struct {
	CryptoID        string  `json:"cryptoId" validate:"required"`
	PaymentMethodID string  `json:"paymentMethodId" validate:"required"`
	Type            string  `json:"type" validate:"required"`
	Price           float64 `json:"price" validate:"required"`
	MinLimit        float64 `json:"minLimit"`
	MaxLimit        float64 `json:"maxLimit"`
}

// QuoteRequest represents a quote preview request
type QuoteRequest struct {
	OfferID string `json:"offerId" validate:"required"`
	Amount  string `json:"amount"`
}

// DepositRequest represents a deposit creation payload
type DepositRequest struct {
	Amount float64 `json:"amount" validate:"required"`
}

// TransferRequest represents a balance transfer payload
type TransferRequest struct {
	FromUserID string  `json:"fromUserId" validate:"required"`
	ToUserID   string  `json:"toUserId" validate:"required"`
	Amount     float64 `json:"amount" validate:"required"`
}

// ModifyBalanceRequest represents an admin balance adjustment payload
type ModifyBalanceRequest struct {
	UserID string  `json:"userId" validate:"required"`
	Amount float64 `json:"amount" validate:"required"`
	Action string  `json:"action" validate:"required"` // "add" or "remove"
}

// PurchasePackageRequest represents an investment purchase payload
type PurchasePackageRequest struct {
	UserID       string  `json:"userId" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Amount       float64 `json:"amount" validate:"required"`
	DailyROI     float64 `json:"dailyRoi"`
	DurationDays int     `json:"durationDays" validate:"required"`
}

// SendMessageRequest represents a chat message payload
type SendMessageRequest struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required"`
	Content    string `json:"content" validate:"required"`
}
