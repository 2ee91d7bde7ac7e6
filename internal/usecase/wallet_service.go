package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bricsbtc/internal/domain"
	"bricsbtc/pkg/logger"
)

// Wallet errors surfaced to the API layer
var (
	ErrDepositSettled = errors.New("deposit has already been settled")
	ErrSelfTransfer   = errors.New("cannot transfer to yourself")
)

// WalletService owns every balance mutation: deposits, transfers and admin
// adjustments. Each mutation writes a ledger entry and a notification.
type WalletService struct {
	userRepo         domain.UserRepository
	depositRepo      domain.DepositRepository
	transactionRepo  domain.TransactionRepository
	notificationRepo domain.NotificationRepository
}

// NewWalletService creates a new WalletService
func NewWalletService(
	userRepo domain.UserRepository,
	depositRepo domain.DepositRepository,
	transactionRepo domain.TransactionRepository,
	notificationRepo domain.NotificationRepository,
) *WalletService {
	return &WalletService{
		userRepo:         userRepo,
		depositRepo:      depositRepo,
		transactionRepo:  transactionRepo,
		notificationRepo: notificationRepo,
	}
}

// RequestDeposit opens a PENDING deposit for an admin to settle
func (ws *WalletService) RequestDeposit(ctx context.Context, userID uuid.UUID, amount float64) (*domain.Deposit, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	deposit := &domain.Deposit{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    amount,
		Status:    domain.DepositPending,
		CreatedAt: time.Now(),
	}

	if err := ws.depositRepo.Create(ctx, deposit); err != nil {
		return nil, err
	}

	return deposit, nil
}

// ApproveDeposit credits the user's balance and records the ledger entry.
// Approving a settled deposit is rejected so a double click cannot credit
// twice.
func (ws *WalletService) ApproveDeposit(ctx context.Context, depositID uuid.UUID) error {
	deposit, err := ws.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		return err
	}
	if deposit.Status != domain.DepositPending {
		return ErrDepositSettled
	}

	if err := ws.userRepo.AdjustBalance(ctx, deposit.UserID, deposit.Amount); err != nil {
		return err
	}
	if err := ws.depositRepo.UpdateStatus(ctx, depositID, domain.DepositApproved); err != nil {
		return err
	}

	ws.record(ctx, deposit.UserID, domain.TxDeposit, deposit.Amount, depositID.String())
	ws.notify(ctx, deposit.UserID, "Deposit approved",
		fmt.Sprintf("Your deposit of $%.2f has been approved and credited.", deposit.Amount))

	return nil
}

// RejectDeposit declines a pending deposit
func (ws *WalletService) RejectDeposit(ctx context.Context, depositID uuid.UUID) error {
	deposit, err := ws.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		return err
	}
	if deposit.Status != domain.DepositPending {
		return ErrDepositSettled
	}

	if err := ws.depositRepo.UpdateStatus(ctx, depositID, domain.DepositRejected); err != nil {
		return err
	}

	ws.notify(ctx, deposit.UserID, "Deposit rejected",
		fmt.Sprintf("Your deposit of $%.2f has been rejected.", deposit.Amount))

	return nil
}

// Transfer moves balance between users atomically
func (ws *WalletService) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if fromID == toID {
		return ErrSelfTransfer
	}

	if err := ws.userRepo.Transfer(ctx, fromID, toID, amount); err != nil {
		return err
	}

	ref := fmt.Sprintf("%s->%s", fromID, toID)
	ws.record(ctx, fromID, domain.TxTransferOut, -amount, ref)
	ws.record(ctx, toID, domain.TxTransferIn, amount, ref)
	ws.notify(ctx, toID, "Balance received",
		fmt.Sprintf("You received $%.2f from another user.", amount))

	return nil
}

// AdminModify adds or removes balance. action is "add" or "remove".
func (ws *WalletService) AdminModify(ctx context.Context, userID uuid.UUID, amount float64, action string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	delta := amount
	txType := domain.TxAdminAdd
	verb := "added to"
	if action == "remove" {
		delta = -amount
		txType = domain.TxAdminRemove
		verb = "removed from"
	} else if action != "add" {
		return fmt.Errorf("unsupported balance action: %s", action)
	}

	if err := ws.userRepo.AdjustBalance(ctx, userID, delta); err != nil {
		return err
	}

	ws.record(ctx, userID, txType, delta, "admin")
	ws.notify(ctx, userID, "Balance adjusted",
		fmt.Sprintf("$%.2f has been %s your balance by an administrator.", amount, verb))

	return nil
}

// NotifyKYC tells a user the outcome of their KYC review
func (ws *WalletService) NotifyKYC(ctx context.Context, userID uuid.UUID, status string) {
	switch status {
	case domain.KYCApproved:
		ws.notify(ctx, userID, "KYC approved",
			"Your identity verification has been approved. You now have full access to trading.")
	case domain.KYCRejected:
		ws.notify(ctx, userID, "KYC rejected",
			"Your identity verification was rejected. Please contact support.")
	}
}

func (ws *WalletService) record(ctx context.Context, userID uuid.UUID, txType string, amount float64, ref string) {
	tx := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      txType,
		Amount:    amount,
		Reference: ref,
		CreatedAt: time.Now(),
	}
	if err := ws.transactionRepo.Create(ctx, tx); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Str("type", txType).Msg("failed to record transaction")
	}
}

func (ws *WalletService) notify(ctx context.Context, userID uuid.UUID, title, body string) {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := ws.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to create notification")
	}
}
