package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricsbtc/internal/domain"
)

// DepositRepositoryImpl implements the DepositRepository interface
type DepositRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewDepositRepository creates a new DepositRepository
func NewDepositRepository(db *pgxpool.Pool) domain.DepositRepository {
	return &DepositRepositoryImpl{db: db}
}

// Create creates a new deposit request
func (r *DepositRepositoryImpl) Create(ctx context.Context, deposit *domain.Deposit) error {
	query := `
		INSERT INTO deposits (id, user_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		deposit.ID,
		deposit.UserID,
		deposit.Amount,
		deposit.Status,
		deposit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}

	return nil
}

// GetByID retrieves a deposit by ID
func (r *DepositRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deposit, error) {
	query := `
		SELECT id, user_id, amount, status, created_at, updated_at
		FROM deposits
		WHERE id = $1
	`

	deposit := &domain.Deposit{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&deposit.ID,
		&deposit.UserID,
		&deposit.Amount,
		&deposit.Status,
		&deposit.CreatedAt,
		&deposit.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deposit by ID: %w", err)
	}

	return deposit, nil
}

// GetByUser retrieves a user's deposits, newest first
func (r *DepositRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deposit, error) {
	query := `
		SELECT id, user_id, amount, status, created_at, updated_at
		FROM deposits
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.queryDeposits(ctx, query, userID)
}

// GetAll retrieves all deposits, newest first
func (r *DepositRepositoryImpl) GetAll(ctx context.Context) ([]*domain.Deposit, error) {
	query := `
		SELECT id, user_id, amount, status, created_at, updated_at
		FROM deposits
		ORDER BY created_at DESC
	`
	return r.queryDeposits(ctx, query)
}

// UpdateStatus sets the admin verdict on a deposit
func (r *DepositRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE deposits SET status = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update deposit status: %w", err)
	}
	return nil
}

func (r *DepositRepositoryImpl) queryDeposits(ctx context.Context, query string, args ...any) ([]*domain.Deposit, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits: %w", err)
	}
	defer rows.Close()

	var deposits []*domain.Deposit
	for rows.Next() {
		deposit := &domain.Deposit{}
		err := rows.Scan(
			&deposit.ID,
			&deposit.UserID,
			&deposit.Amount,
			&deposit.Status,
			&deposit.CreatedAt,
			&deposit.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit: %w", err)
		}
		deposits = append(deposits, deposit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposits: %w", err)
	}

	return deposits, nil
}
