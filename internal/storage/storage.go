// Package storage opens the shared relational store and classifies driver
// errors. SQLite (modernc.org/sqlite) is the default; DSNs starting with
// postgres:// or postgresql:// are served by pgx.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/postit/internal/common"
	"github.com/dmitrijs2005/postit/internal/dbx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DialectOf reports which dialect serves the given DSN.
func DialectOf(dsn string) dbx.Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return dbx.DialectPostgres
	}
	return dbx.DialectSQLite
}

// Open connects to the store behind dsn. Every connection waits up to
// busyTimeout for a competing writer before failing with a busy error.
func Open(ctx context.Context, dsn string, busyTimeout time.Duration) (*sql.DB, dbx.Dialect, error) {
	dialect := DialectOf(dsn)

	var (
		db  *sql.DB
		err error
	)
	switch dialect {
	case dbx.DialectPostgres:
		db, err = openPostgres(dsn, busyTimeout)
	default:
		db, err = openSQLite(dsn, busyTimeout)
	}
	if err != nil {
		return nil, "", fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	return db, dialect, nil
}

func openSQLite(dsn string, busyTimeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dsn, busyTimeout))
	if err != nil {
		return nil, err
	}
	// each connection to :memory: is its own database
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// sqliteDSN appends the per-connection pragmas understood by modernc.org/sqlite.
func sqliteDSN(dsn string, busyTimeout time.Duration) string {
	params := []string{"_pragma=busy_timeout(" + strconv.FormatInt(busyTimeout.Milliseconds(), 10) + ")"}
	if !isMemory(dsn) {
		params = append(params, "_pragma=journal_mode(WAL)")
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

func openPostgres(dsn string, busyTimeout time.Duration) (*sql.DB, error) {
	cfg, err := postgresConfig(dsn, busyTimeout)
	if err != nil {
		return nil, err
	}
	return stdlib.OpenDB(*cfg), nil
}

func postgresConfig(dsn string, busyTimeout time.Duration) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.RuntimeParams["lock_timeout"] = strconv.FormatInt(busyTimeout.Milliseconds(), 10)
	return cfg, nil
}
