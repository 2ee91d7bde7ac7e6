package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricsbtc/internal/domain"
)

// CatalogRepositoryImpl implements the CatalogRepository interface for
// admin-managed reference data: cryptos, networks and payment methods.
type CatalogRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) domain.CatalogRepository {
	return &CatalogRepositoryImpl{db: db}
}

// CreateCrypto creates a listed crypto
func (r *CatalogRepositoryImpl) CreateCrypto(ctx context.Context, c *domain.Crypto) error {
	query := `INSERT INTO cryptos (id, name, symbol, price, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Symbol, c.Price, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create crypto: %w", err)
	}
	return nil
}

// GetCryptos retrieves all listed cryptos
func (r *CatalogRepositoryImpl) GetCryptos(ctx context.Context) ([]*domain.Crypto, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, symbol, price, created_at FROM cryptos ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cryptos: %w", err)
	}
	defer rows.Close()

	var cryptos []*domain.Crypto
	for rows.Next() {
		c := &domain.Crypto{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Symbol, &c.Price, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan crypto: %w", err)
		}
		cryptos = append(cryptos, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cryptos: %w", err)
	}

	return cryptos, nil
}

// UpdateCrypto updates a listed crypto
func (r *CatalogRepositoryImpl) UpdateCrypto(ctx context.Context, c *domain.Crypto) error {
	query := `UPDATE cryptos SET name = $1, symbol = $2, price = $3 WHERE id = $4`

	_, err := r.db.Exec(ctx, query, c.Name, c.Symbol, c.Price, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update crypto: %w", err)
	}
	return nil
}

// UpdateCryptoPrice updates only the cached spot price for a symbol
func (r *CatalogRepositoryImpl) UpdateCryptoPrice(ctx context.Context, symbol string, price float64) error {
	_, err := r.db.Exec(ctx, `UPDATE cryptos SET price = $1 WHERE symbol = $2`, price, symbol)
	if err != nil {
		return fmt.Errorf("failed to update crypto price: %w", err)
	}
	return nil
}

// DeleteCrypto removes a listed crypto
func (r *CatalogRepositoryImpl) DeleteCrypto(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cryptos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete crypto: %w", err)
	}
	return nil
}

// CreateNetwork creates a network
func (r *CatalogRepositoryImpl) CreateNetwork(ctx context.Context, n *domain.Network) error {
	query := `INSERT INTO networks (id, name, crypto_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, n.ID, n.Name, n.CryptoID, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create network: %w", err)
	}
	return nil
}

// GetNetworks retrieves all networks
func (r *CatalogRepositoryImpl) GetNetworks(ctx context.Context) ([]*domain.Network, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, crypto_id, created_at FROM networks ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query networks: %w", err)
	}
	defer rows.Close()

	var networks []*domain.Network
	for rows.Next() {
		n := &domain.Network{}
		if err := rows.Scan(&n.ID, &n.Name, &n.CryptoID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan network: %w", err)
		}
		networks = append(networks, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating networks: %w", err)
	}

	return networks, nil
}

// UpdateNetwork updates a network
func (r *CatalogRepositoryImpl) UpdateNetwork(ctx context.Context, n *domain.Network) error {
	query := `UPDATE networks SET name = $1, crypto_id = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, n.Name, n.CryptoID, n.ID)
	if err != nil {
		return fmt.Errorf("failed to update network: %w", err)
	}
	return nil
}

// DeleteNetwork removes a network
func (r *CatalogRepositoryImpl) DeleteNetwork(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM networks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete network: %w", err)
	}
	return nil
}

// CreatePaymentMethod creates a payment method
func (r *CatalogRepositoryImpl) CreatePaymentMethod(ctx context.Context, pm *domain.PaymentMethod) error {
	query := `INSERT INTO payment_methods (id, name, account_no, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, pm.ID, pm.Name, pm.AccountNo, pm.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

// GetPaymentMethods retrieves all payment methods
func (r *CatalogRepositoryImpl) GetPaymentMethods(ctx context.Context) ([]*domain.PaymentMethod, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, account_no, created_at FROM payment_methods ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment methods: %w", err)
	}
	defer rows.Close()

	var methods []*domain.PaymentMethod
	for rows.Next() {
		pm := &domain.PaymentMethod{}
		if err := rows.Scan(&pm.ID, &pm.Name, &pm.AccountNo, &pm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, pm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}

	return methods, nil
}

// UpdatePaymentMethod updates a payment method
func (r *CatalogRepositoryImpl) UpdatePaymentMethod(ctx context.Context, pm *domain.PaymentMethod) error {
	query := `UPDATE payment_methods SET name = $1, account_no = $2 WHERE id = $3`

	_, err := r.db.Exec(ctx, query, pm.Name, pm.AccountNo, pm.ID)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	return nil
}

// DeletePaymentMethod removes a payment method
func (r *CatalogRepositoryImpl) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return nil
}
