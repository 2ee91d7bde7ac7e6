package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricsbtc/internal/domain"
)

const offerDetailColumns = `
	o.id, o.user_id, o.crypto_id, o.payment_method_id, o.type, o.price,
	o.min_limit, o.max_limit, o.active, o.created_at, o.updated_at,
	c.id, c.name, c.symbol, c.price, c.created_at,
	u.id, u.full_name, u.country,
	pm.id, pm.name, pm.account_no, pm.created_at`

const offerDetailJoins = `
	FROM offers o
	JOIN cryptos c ON c.id = o.crypto_id
	JOIN users u ON u.id = o.user_id
	JOIN payment_methods pm ON pm.id = o.payment_method_id`

// OfferRepositoryImpl implements the OfferRepository interface
type OfferRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(db *pgxpool.Pool) domain.OfferRepository {
	return &OfferRepositoryImpl{db: db}
}

// Create creates a new offer
func (r *OfferRepositoryImpl) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (
			id, user_id, crypto_id, payment_method_id, type, price,
			min_limit, max_limit, active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		offer.ID,
		offer.UserID,
		offer.CryptoID,
		offer.PaymentMethodID,
		offer.Type,
		offer.Price,
		offer.MinLimit,
		offer.MaxLimit,
		offer.Active,
		offer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetByID retrieves an offer with its crypto, owner and payment method
func (r *OfferRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.OfferDetail, error) {
	query := `SELECT` + offerDetailColumns + offerDetailJoins + ` WHERE o.id = $1`

	detail, err := scanOfferDetail(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer by ID: %w", err)
	}
	return detail, nil
}

// GetAll retrieves all active offers with their joined detail
func (r *OfferRepositoryImpl) GetAll(ctx context.Context) ([]*domain.OfferDetail, error) {
	query := `SELECT` + offerDetailColumns + offerDetailJoins + `
		WHERE o.active = TRUE
		ORDER BY o.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []*domain.OfferDetail
	for rows.Next() {
		detail, err := scanOfferDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating offers: %w", err)
	}

	return offers, nil
}

// SetActive toggles an offer's visibility
func (r *OfferRepositoryImpl) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE offers SET active = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("failed to toggle offer: %w", err)
	}
	return nil
}

// Delete removes an offer
func (r *OfferRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}

func scanOfferDetail(row pgx.Row) (*domain.OfferDetail, error) {
	detail := &domain.OfferDetail{
		Crypto:        &domain.Crypto{},
		User:          &domain.OfferOwner{},
		PaymentMethod: &domain.PaymentMethod{},
	}

	err := row.Scan(
		&detail.ID,
		&detail.UserID,
		&detail.CryptoID,
		&detail.PaymentMethodID,
		&detail.Type,
		&detail.Price,
		&detail.MinLimit,
		&detail.MaxLimit,
		&detail.Active,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.Crypto.ID,
		&detail.Crypto.Name,
		&detail.Crypto.Symbol,
		&detail.Crypto.Price,
		&detail.Crypto.CreatedAt,
		&detail.User.ID,
		&detail.User.FullName,
		&detail.User.Country,
		&detail.PaymentMethod.ID,
		&detail.PaymentMethod.Name,
		&detail.PaymentMethod.AccountNo,
		&detail.PaymentMethod.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return detail, nil
}
