package storage

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation  = "23505"
	pgLockNotAvailable = "55P03"
)

// IsUniqueViolation reports whether err is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgUniqueViolation
	}
	return false
}

// IsBusy reports whether err means the store stayed locked past the
// configured busy timeout.
func IsBusy(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code() & 0xff
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	}
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe.Code == pgLockNotAvailable
	}
	return false
}

// Wrap annotates a driver error. Busy errors are tagged with
// common.ErrStorageUnavailable.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if IsBusy(err) {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("db error: %w", err)
}
