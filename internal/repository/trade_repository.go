package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricsbtc/internal/domain"
)

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db     *pgxpool.Pool
	offers domain.OfferRepository
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool, offers domain.OfferRepository) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db, offers: offers}
}

// Create creates a new trade
func (r *TradeRepositoryImpl) Create(ctx context.Context, trade *domain.Trade) error {
	query := `
		INSERT INTO trades (
			id, offer_id, buyer_id, amount_usd, amount_crypto, status,
			payment_window_minutes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		trade.ID,
		trade.OfferID,
		trade.BuyerID,
		trade.AmountUSD,
		trade.AmountCrypto,
		trade.Status,
		trade.PaymentWindowMinutes,
		trade.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}

	return nil
}

// GetByID retrieves a trade with its offer detail
func (r *TradeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeDetail, error) {
	query := `
		SELECT id, offer_id, buyer_id, amount_usd, amount_crypto, status,
		       payment_window_minutes, created_at, updated_at
		FROM trades
		WHERE id = $1
	`

	trade := &domain.Trade{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trade.ID,
		&trade.OfferID,
		&trade.BuyerID,
		&trade.AmountUSD,
		&trade.AmountCrypto,
		&trade.Status,
		&trade.PaymentWindowMinutes,
		&trade.CreatedAt,
		&trade.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trade by ID: %w", err)
	}

	offer, err := r.offers.GetByID(ctx, trade.OfferID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade offer: %w", err)
	}

	return &domain.TradeDetail{Trade: *trade, Offer: offer}, nil
}

// GetByUser retrieves a user's trades, newest first
func (r *TradeRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Trade, error) {
	query := `
		SELECT id, offer_id, buyer_id, amount_usd, amount_crypto, status,
		       payment_window_minutes, created_at, updated_at
		FROM trades
		WHERE buyer_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*domain.Trade
	for rows.Next() {
		trade := &domain.Trade{}
		err := rows.Scan(
			&trade.ID,
			&trade.OfferID,
			&trade.BuyerID,
			&trade.AmountUSD,
			&trade.AmountCrypto,
			&trade.Status,
			&trade.PaymentWindowMinutes,
			&trade.CreatedAt,
			&trade.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}

// GetAll retrieves all trades, newest first
func (r *TradeRepositoryImpl) GetAll(ctx context.Context) ([]*domain.TradeDetail, error) {
	query := `
		SELECT id, offer_id, buyer_id, amount_usd, amount_crypto, status,
		       payment_window_minutes, created_at, updated_at
		FROM trades
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*domain.Trade
	for rows.Next() {
		trade := &domain.Trade{}
		err := rows.Scan(
			&trade.ID,
			&trade.OfferID,
			&trade.BuyerID,
			&trade.AmountUSD,
			&trade.AmountCrypto,
			&trade.Status,
			&trade.PaymentWindowMinutes,
			&trade.CreatedAt,
			&trade.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	// One lookup per distinct offer keeps the admin listing simple
	offerCache := make(map[uuid.UUID]*domain.OfferDetail)
	details := make([]*domain.TradeDetail, 0, len(trades))
	for _, trade := range trades {
		offer, ok := offerCache[trade.OfferID]
		if !ok {
			offer, err = r.offers.GetByID(ctx, trade.OfferID)
			if err != nil {
				return nil, fmt.Errorf("failed to load offer for trade %s: %w", trade.ID, err)
			}
			offerCache[trade.OfferID] = offer
		}
		details = append(details, &domain.TradeDetail{Trade: *trade, Offer: offer})
	}

	return details, nil
}

// UpdateStatus updates the status of a trade
func (r *TradeRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE trades SET status = $1, updated_at = NOW() WHERE id = $2`

	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update trade status: %w", err)
	}
	return nil
}

// ExpirePastWindow marks PENDING_PAYMENT trades older than their payment
// window as EXPIRED and returns how many were affected.
func (r *TradeRepositoryImpl) ExpirePastWindow(ctx context.Context) (int64, error) {
	query := `
		UPDATE trades
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE status = 'PENDING_PAYMENT'
		  AND created_at + (payment_window_minutes * INTERVAL '1 minute') < NOW()
	`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to expire trades: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes a trade
func (r *TradeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM trades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}
	return nil
}
