// Package app wires configuration, storage, services and logging into the
// postit and cleandb processes.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/postit/internal/config"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/repositories/repomanager"
	"github.com/dmitrijs2005/postit/internal/storage"
)

// OpenStore connects to the configured store and brings its schema up to
// date. Duplicate account names left by older releases are logged, not
// fatal.
func OpenStore(ctx context.Context, c *config.Config, logger logging.Logger) (*sql.DB, *repomanager.SQLRepositoryManager, error) {
	db, dialect, err := storage.Open(ctx, c.DatabaseDSN, c.BusyTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot access database: %w", err)
	}

	m := repomanager.New(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	dups, err := m.EnsureUniqueNames(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}
	if len(dups) > 0 {
		logger.Warn(ctx, "duplicate account names, unique name index not created", "names", dups)
	}

	return db, m, nil
}

// NewLogger builds the process logger. Logs go to w, normally stderr, so
// they never mix with interactive output.
func NewLogger(w io.Writer, c *config.Config) (logging.Logger, error) {
	l, err := logging.New(w, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// initSignalHandler cancels the context on SIGINT, SIGTERM or SIGQUIT until
// the returned stop func is called. stop waits for the handler to exit.
func initSignalHandler(cancelFunc context.CancelFunc) (stop func()) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		select {
		case <-sigs:
			cancelFunc()
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
		<-exited
	}
}
