package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

type errorRow struct {
	err error
}

func (r errorRow) Scan(dest ...any) error { return r.err }

func TestScanUserMapsMissingRowToNotFound(t *testing.T) {
	repo := &UserRepositoryImpl{}

	_, err := repo.scanUser(errorRow{err: pgx.ErrNoRows})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("scanUser(ErrNoRows) err = %v, want ErrNotFound", err)
	}
}

func TestScanUserPassesThroughOtherErrors(t *testing.T) {
	repo := &UserRepositoryImpl{}
	scanErr := errors.New("column type mismatch")

	_, err := repo.scanUser(errorRow{err: scanErr})
	if !errors.Is(err, scanErr) {
		t.Errorf("scanUser err = %v, want %v", err, scanErr)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("unrelated scan error must not read as ErrNotFound")
	}
}
