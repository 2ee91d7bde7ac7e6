package domain

import (
	"time"

	"github.com/google/uuid"
)

// Deposit statuses
const (
	DepositPending  = "PENDING"
	DepositApproved = "APPROVED"
	DepositRejected = "REJECTED"
)

// Deposit is a user's request to credit fiat balance, settled by an admin
type Deposit struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
