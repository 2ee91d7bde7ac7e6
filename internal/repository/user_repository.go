package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricsbtc/internal/domain"
)

// ErrInsufficientBalance is returned when a debit would take a balance
// below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrNotFound is returned when a row does not exist
var ErrNotFound = errors.New("not found")

const userColumns = `id, full_name, email, password_hash, role, country, address,
       avatar_url, kyc, kyc_status, document_type, balance, created_at, updated_at`

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, full_name, email, password_hash, role, country, address,
			avatar_url, kyc, kyc_status, document_type, balance, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Country,
		user.Address,
		user.AvatarURL,
		user.KYC,
		user.KYCStatus,
		user.DocumentType,
		user.Balance,
		user.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetAll retrieves all users
func (r *UserRepositoryImpl) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC`
	return r.queryUsers(ctx, query)
}

// GetAdmins retrieves all admin users
func (r *UserRepositoryImpl) GetAdmins(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'admin' ORDER BY created_at ASC`
	return r.queryUsers(ctx, query)
}

// UpdateProfile updates a user's editable profile fields
func (r *UserRepositoryImpl) UpdateProfile(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET full_name = $1, country = $2, address = $3, avatar_url = $4, updated_at = NOW()
		WHERE id = $5
	`

	_, err := r.db.Exec(ctx, query,
		user.FullName,
		user.Country,
		user.Address,
		user.AvatarURL,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}

	return nil
}

// UpdateKYCStatus sets the KYC verdict for a user
func (r *UserRepositoryImpl) UpdateKYCStatus(ctx context.Context, userID uuid.UUID, status string) error {
	query := `
		UPDATE users
		SET kyc_status = $1, kyc = ($1 = 'APPROVED'), updated_at = NOW()
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, status, userID)
	if err != nil {
		return fmt.Errorf("failed to update KYC status: %w", err)
	}

	return nil
}

// AdjustBalance atomically adds delta to a user's balance. The balance CHECK
// constraint rejects overdrafts; the WHERE clause keeps the error clean.
func (r *UserRepositoryImpl) AdjustBalance(ctx context.Context, userID uuid.UUID, delta float64) error {
	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2 AND balance + $1 >= 0
	`

	tag, err := r.db.Exec(ctx, query, delta, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientBalance
	}

	return nil
}

// Transfer atomically moves amount from one user's balance to another's
func (r *UserRepositoryImpl) Transfer(ctx context.Context, fromID, toID uuid.UUID, amount float64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`, amount, fromID)
	if err != nil {
		return fmt.Errorf("failed to debit sender: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientBalance
	}

	tag, err = tx.Exec(ctx, `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`, amount, toID)
	if err != nil {
		return fmt.Errorf("failed to credit recipient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	return nil
}

// Delete removes a user
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// SaveKYCDocument stores an uploaded KYC document URL for a user
func (r *UserRepositoryImpl) SaveKYCDocument(ctx context.Context, doc *domain.KYCDocument) error {
	query := `INSERT INTO kyc_documents (id, user_id, url, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query, doc.ID, doc.UserID, doc.URL, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save KYC document: %w", err)
	}
	return nil
}

// GetKYCDocuments retrieves a user's KYC documents
func (r *UserRepositoryImpl) GetKYCDocuments(ctx context.Context, userID uuid.UUID) ([]*domain.KYCDocument, error) {
	query := `SELECT id, user_id, url, created_at FROM kyc_documents WHERE user_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query KYC documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.KYCDocument
	for rows.Next() {
		doc := &domain.KYCDocument{}
		if err := rows.Scan(&doc.ID, &doc.UserID, &doc.URL, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan KYC document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating KYC documents: %w", err)
	}

	return docs, nil
}

func (r *UserRepositoryImpl) queryUsers(ctx context.Context, query string, args ...any) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func (r *UserRepositoryImpl) scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Country,
		&user.Address,
		&user.AvatarURL,
		&user.KYC,
		&user.KYCStatus,
		&user.DocumentType,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
