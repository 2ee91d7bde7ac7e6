package domain

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetAll retrieves all users
	GetAll(ctx context.Context) ([]*User, error)

	// GetAdmins retrieves all admin users
	GetAdmins(ctx context.Context) ([]*User, error)

	// UpdateProfile updates a user's editable profile fields
	UpdateProfile(ctx context.Context, user *User) error

	// UpdateKYCStatus sets the KYC verdict for a user
	UpdateKYCStatus(ctx context.Context, userID uuid.UUID, status string) error

	// AdjustBalance atomically adds delta to a user's balance. A negative
	// delta that would take the balance below zero returns an error.
	AdjustBalance(ctx context.Context, userID uuid.UUID, delta float64) error

	// Transfer atomically moves amount from one user's balance to another's
	Transfer(ctx context.Context, fromID, toID uuid.UUID, amount float64) error

	// Delete removes a user
	Delete(ctx context.Context, id uuid.UUID) error

	// SaveKYCDocument stores an uploaded KYC document URL for a user
	SaveKYCDocument(ctx context.Context, doc *KYCDocument) error

	// GetKYCDocuments retrieves a user's KYC documents
	GetKYCDocuments(ctx context.Context, userID uuid.UUID) ([]*KYCDocument, error)
}

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	// Create creates a new offer
	Create(ctx context.Context, offer *Offer) error

	// GetByID retrieves an offer with its crypto, owner and payment method
	GetByID(ctx context.Context, id uuid.UUID) (*OfferDetail, error)

	// GetAll retrieves all active offers with their joined detail
	GetAll(ctx context.Context) ([]*OfferDetail, error)

	// SetActive toggles an offer's visibility
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// Delete removes an offer
	Delete(ctx context.Context, id uuid.UUID) error
}

// TradeRepository defines the interface for trade data operations
type TradeRepository interface {
	// Create creates a new trade
	Create(ctx context.Context, trade *Trade) error

	// GetByID retrieves a trade with its offer detail
	GetByID(ctx context.Context, id uuid.UUID) (*TradeDetail, error)

	// GetByUser retrieves a user's trades, newest first
	GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Trade, error)

	// GetAll retrieves all trades, newest first
	GetAll(ctx context.Context) ([]*TradeDetail, error)

	// UpdateStatus updates the status of a trade
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// ExpirePastWindow marks PENDING_PAYMENT trades older than their payment
	// window as EXPIRED and returns how many were affected.
	ExpirePastWindow(ctx context.Context) (int64, error)

	// Delete removes a trade
	Delete(ctx context.Context, id uuid.UUID) error
}

// DepositRepository defines the interface for deposit data operations
type DepositRepository interface {
	// Create creates a new deposit request
	Create(ctx context.Context, deposit *Deposit) error

	// GetByID retrieves a deposit by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Deposit, error)

	// GetByUser retrieves a user's deposits, newest first
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*Deposit, error)

	// GetAll retrieves all deposits, newest first
	GetAll(ctx context.Context) ([]*Deposit, error)

	// UpdateStatus sets the admin verdict on a deposit
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// PackageRepository defines the interface for investment package operations
type PackageRepository interface {
	// Create creates a new investment package
	Create(ctx context.Context, pkg *InvestPackage) error

	// GetByID retrieves a package by ID
	GetByID(ctx context.Context, id uuid.UUID) (*InvestPackage, error)

	// GetByUser retrieves a user's packages, newest first
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*InvestPackage, error)

	// GetAll retrieves all packages, newest first
	GetAll(ctx context.Context) ([]*InvestPackage, error)

	// GetAccruable retrieves active packages whose last accrual is older
	// than one day.
	GetAccruable(ctx context.Context) ([]*InvestPackage, error)

	// MarkAccrued advances a package's accrual bookkeeping
	MarkAccrued(ctx context.Context, id uuid.UUID, accruedDays int, status string) error

	// Delete removes a package
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageRepository defines the interface for chat message operations
type MessageRepository interface {
	// Create stores a new message
	Create(ctx context.Context, msg *Message) error

	// GetConversation retrieves messages between two users, oldest first
	GetConversation(ctx context.Context, a, b uuid.UUID, limit int) ([]*Message, error)
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	// Create stores a new notification
	Create(ctx context.Context, n *Notification) error

	// GetByUser retrieves a user's notifications, newest first
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*Notification, error)

	// CountUnread counts a user's unread notifications
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)

	// MarkRead marks one of userID's notifications as read. A notification
	// belonging to someone else is not found.
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

// TransactionRepository defines the interface for balance ledger operations
type TransactionRepository interface {
	// Create stores a new ledger entry
	Create(ctx context.Context, tx *Transaction) error

	// GetByUser retrieves a user's ledger entries, newest first
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)
}

// CatalogRepository defines the interface for admin-managed reference data:
// cryptos, networks and payment methods.
type CatalogRepository interface {
	// CreateCrypto creates a listed crypto
	CreateCrypto(ctx context.Context, c *Crypto) error

	// GetCryptos retrieves all listed cryptos
	GetCryptos(ctx context.Context) ([]*Crypto, error)

	// UpdateCrypto updates a listed crypto
	UpdateCrypto(ctx context.Context, c *Crypto) error

	// UpdateCryptoPrice updates only the cached spot price for a symbol
	UpdateCryptoPrice(ctx context.Context, symbol string, price float64) error

	// DeleteCrypto removes a listed crypto
	DeleteCrypto(ctx context.Context, id uuid.UUID) error

	// CreateNetwork creates a network
	CreateNetwork(ctx context.Context, n *Network) error

	// GetNetworks retrieves all networks
	GetNetworks(ctx context.Context) ([]*Network, error)

	// UpdateNetwork updates a network
	UpdateNetwork(ctx context.Context, n *Network) error

	// DeleteNetwork removes a network
	DeleteNetwork(ctx context.Context, id uuid.UUID) error

	// CreatePaymentMethod creates a payment method
	CreatePaymentMethod(ctx context.Context, pm *PaymentMethod) error

	// GetPaymentMethods retrieves all payment methods
	GetPaymentMethods(ctx context.Context) ([]*PaymentMethod, error)

	// UpdatePaymentMethod updates a payment method
	UpdatePaymentMethod(ctx context.Context, pm *PaymentMethod) error

	// DeletePaymentMethod removes a payment method
	DeletePaymentMethod(ctx context.Context, id uuid.UUID) error
}
