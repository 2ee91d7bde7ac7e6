package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a one-way notice to a user (deposit settled, KYC decision,
// balance adjusted, trade updates)
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
