package domain

import (
	"time"

	"github.com/google/uuid"
)

// Transaction types. Every balance mutation writes one row so the
// transactions screen can reconstruct the full history.
const (
	TxDeposit     = "DEPOSIT"
	TxTransferIn  = "TRANSFER_IN"
	TxTransferOut = "TRANSFER_OUT"
	TxAdminAdd    = "ADMIN_ADD"
	TxAdminRemove = "ADMIN_REMOVE"
	TxInvestment  = "INVESTMENT"
	TxRefund      = "REFUND"
	TxROI         = "ROI"
	TxTrade       = "TRADE"
)

// Transaction is a ledger entry for a user's balance
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Type      string    `json:"type"`
	Amount    float64   `json:"amount"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
