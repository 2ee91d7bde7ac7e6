package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bricsbtc/internal/domain"
)

const packageColumns = `id, user_id, name, amount, daily_roi, duration_days,
       accrued_days, status, created_at, last_accrued_at`

// PackageRepositoryImpl implements the PackageRepository interface
type PackageRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewPackageRepository creates a new PackageRepository
func NewPackageRepository(db *pgxpool.Pool) domain.PackageRepository {
	return &PackageRepositoryImpl{db: db}
}

// Create creates a new investment package
func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *domain.InvestPackage) error {
	query := `
		INSERT INTO invest_packages (
			id, user_id, name, amount, daily_roi, duration_days,
			accrued_days, status, created_at, last_accrued_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.UserID,
		pkg.Name,
		pkg.Amount,
		pkg.DailyROI,
		pkg.DurationDays,
		pkg.AccruedDays,
		pkg.Status,
		pkg.CreatedAt,
		pkg.LastAccruedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	return nil
}

// GetByID retrieves a package by ID
func (r *PackageRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.InvestPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM invest_packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get package by ID: %w", err)
	}
	return pkg, nil
}

// GetByUser retrieves a user's packages, newest first
func (r *PackageRepositoryImpl) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.InvestPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM invest_packages WHERE user_id = $1 ORDER BY created_at DESC`
	return r.queryPackages(ctx, query, userID)
}

// GetAll retrieves all packages, newest first
func (r *PackageRepositoryImpl) GetAll(ctx context.Context) ([]*domain.InvestPackage, error) {
	query := `SELECT ` + packageColumns + ` FROM invest_packages ORDER BY created_at DESC`
	return r.queryPackages(ctx, query)
}

// GetAccruable retrieves active packages whose last accrual is older than
// one day.
func (r *PackageRepositoryImpl) GetAccruable(ctx context.Context) ([]*domain.InvestPackage, error) {
	query := `SELECT ` + packageColumns + `
		FROM invest_packages
		WHERE status = 'ACTIVE' AND last_accrued_at < NOW() - INTERVAL '1 day'
		ORDER BY last_accrued_at ASC`
	return r.queryPackages(ctx, query)
}

// MarkAccrued advances a package's accrual bookkeeping
func (r *PackageRepositoryImpl) MarkAccrued(ctx context.Context, id uuid.UUID, accruedDays int, status string) error {
	query := `
		UPDATE invest_packages
		SET accrued_days = $1, status = $2, last_accrued_at = NOW()
		WHERE id = $3
	`

	_, err := r.db.Exec(ctx, query, accruedDays, status, id)
	if err != nil {
		return fmt.Errorf("failed to mark package accrued: %w", err)
	}
	return nil
}

// Delete removes a package
func (r *PackageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM invest_packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	return nil
}

func (r *PackageRepositoryImpl) queryPackages(ctx context.Context, query string, args ...any) ([]*domain.InvestPackage, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	var pkgs []*domain.InvestPackage
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		pkgs = append(pkgs, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packages: %w", err)
	}

	return pkgs, nil
}

func scanPackage(row pgx.Row) (*domain.InvestPackage, error) {
	pkg := &domain.InvestPackage{}
	err := row.Scan(
		&pkg.ID,
		&pkg.UserID,
		&pkg.Name,
		&pkg.Amount,
		&pkg.DailyROI,
		&pkg.DurationDays,
		&pkg.AccruedDays,
		&pkg.Status,
		&pkg.CreatedAt,
		&pkg.LastAccruedAt,
	)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}
