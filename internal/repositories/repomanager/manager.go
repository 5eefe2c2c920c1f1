// Package repomanager vends repository implementations bound to a database
// handle and runs the embedded goose migrations for the active dialect.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/postit/internal/dbx"
	"github.com/dmitrijs2005/postit/internal/migrations"
	"github.com/dmitrijs2005/postit/internal/repositories/accounts"
	"github.com/dmitrijs2005/postit/internal/repositories/posts"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Posts(db dbx.DBTX) posts.Repository
}

// SQLRepositoryManager hands out SQL repositories whose placeholders are
// rebound for its dialect. Pass a *sql.DB or a *sql.Tx as db.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func New(dialect dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: dialect}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	var opts []accounts.Option
	if m.dialect == dbx.DialectPostgres {
		opts = append(opts, accounts.WithRowLocks())
	}
	return accounts.NewSQLRepository(dbx.Bind(db, m.dialect), opts...)
}

// Posts returns a posts.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Posts(db dbx.DBTX) posts.Repository {
	var opts []posts.Option
	if m.dialect == dbx.DialectPostgres {
		opts = append(opts, posts.WithRowLocks())
	}
	return posts.NewSQLRepository(dbx.Bind(db, m.dialect), opts...)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations brings the schema up to date. Already applied migrations are
// skipped, so running it on every start is safe.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(string(m.dialect)); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, migrations.Dir(m.dialect))
}

// SchemaVersion returns the latest applied migration version.
func (m *SQLRepositoryManager) SchemaVersion(ctx context.Context, db *sql.DB) (int64, error) {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(string(m.dialect)); err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, db)
}
