package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is a chat message between a user and an admin. Clients poll the
// conversation endpoint; there is no push channel.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
