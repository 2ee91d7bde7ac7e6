package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bricsbtc/internal/domain"
	"bricsbtc/pkg/logger"
)

// InvestService owns investment packages: purchase, deletion (with or
// without refund) and the daily ROI accrual job.
type InvestService struct {
	packageRepo      domain.PackageRepository
	userRepo         domain.UserRepository
	transactionRepo  domain.TransactionRepository
	notificationRepo domain.NotificationRepository
}

// NewInvestService creates a new InvestService
func NewInvestService(
	packageRepo domain.PackageRepository,
	userRepo domain.UserRepository,
	transactionRepo domain.TransactionRepository,
	notificationRepo domain.NotificationRepository,
) *InvestService {
	return &InvestService{
		packageRepo:      packageRepo,
		userRepo:         userRepo,
		transactionRepo:  transactionRepo,
		notificationRepo: notificationRepo,
	}
}

// Purchase deducts the principal from the user's balance and opens an
// active package.
func (is *InvestService) Purchase(ctx context.Context, userID uuid.UUID, name string, amount, dailyROI float64, durationDays int) (*domain.InvestPackage, error) {
	if amount <= 0 || durationDays <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := is.userRepo.AdjustBalance(ctx, userID, -amount); err != nil {
		return nil, err
	}

	pkg := &domain.InvestPackage{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Amount:        amount,
		DailyROI:      dailyROI,
		DurationDays:  durationDays,
		Status:        domain.PackageActive,
		CreatedAt:     time.Now(),
		LastAccruedAt: time.Now(),
	}

	if err := is.packageRepo.Create(ctx, pkg); err != nil {
		// Put the principal back; the package never existed
		if refundErr := is.userRepo.AdjustBalance(ctx, userID, amount); refundErr != nil {
			logger.Error().Err(refundErr).Str("user_id", userID.String()).Msg("failed to refund after package create failure")
		}
		return nil, err
	}

	is.record(ctx, userID, domain.TxInvestment, -amount, pkg.ID.String())

	return pkg, nil
}

// Delete removes a package. With refund, the principal is returned to the
// user's balance first.
func (is *InvestService) Delete(ctx context.Context, packageID uuid.UUID, refund bool) error {
	pkg, err := is.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return err
	}

	if refund {
		if err := is.userRepo.AdjustBalance(ctx, pkg.UserID, pkg.Amount); err != nil {
			return err
		}
		is.record(ctx, pkg.UserID, domain.TxRefund, pkg.Amount, packageID.String())
		is.notify(ctx, pkg.UserID, "Investment refunded",
			fmt.Sprintf("Your %s package was closed and $%.2f refunded.", pkg.Name, pkg.Amount))
	}

	return is.packageRepo.Delete(ctx, packageID)
}

// AccrueDaily credits one day of ROI to every package that is due. Runs
// from the scheduler once an hour; GetAccruable only returns packages at
// least a day past their last accrual, so restarts and missed runs do not
// double-credit.
func (is *InvestService) AccrueDaily(ctx context.Context) error {
	pkgs, err := is.packageRepo.GetAccruable(ctx)
	if err != nil {
		return err
	}

	for _, pkg := range pkgs {
		earning := pkg.DailyEarning()
		if err := is.userRepo.AdjustBalance(ctx, pkg.UserID, earning); err != nil {
			logger.Error().Err(err).Str("package_id", pkg.ID.String()).Msg("failed to credit ROI")
			continue
		}

		accrued := pkg.AccruedDays + 1
		status := pkg.Status
		if accrued >= pkg.DurationDays {
			status = domain.PackageMatured
		}

		if err := is.packageRepo.MarkAccrued(ctx, pkg.ID, accrued, status); err != nil {
			logger.Error().Err(err).Str("package_id", pkg.ID.String()).Msg("failed to mark package accrued")
			continue
		}

		is.record(ctx, pkg.UserID, domain.TxROI, earning, pkg.ID.String())

		if status == domain.PackageMatured {
			is.notify(ctx, pkg.UserID, "Investment matured",
				fmt.Sprintf("Your %s package has completed its %d-day term.", pkg.Name, pkg.DurationDays))
		}
	}

	return nil
}

func (is *InvestService) record(ctx context.Context, userID uuid.UUID, txType string, amount float64, ref string) {
	tx := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      txType,
		Amount:    amount,
		Reference: ref,
		CreatedAt: time.Now(),
	}
	if err := is.transactionRepo.Create(ctx, tx); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Str("type", txType).Msg("failed to record transaction")
	}
}

func (is *InvestService) notify(ctx context.Context, userID uuid.UUID, title, body string) {
	n := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := is.notificationRepo.Create(ctx, n); err != nil {
		logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to create notification")
	}
}
