package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/postit/internal/config"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/sweeper"
)

// Cleandb is the account sweeper process.
type Cleandb struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	sweeper *sweeper.Sweeper
	out     io.Writer
}

func NewCleandb(ctx context.Context, c *config.Config, logger logging.Logger, out io.Writer) (*Cleandb, error) {
	db, m, err := OpenStore(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	reporter, err := newReporter(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	s := sweeper.New(db, m, logger, sweeper.WithReporter(reporter), sweeper.WithDryRun(c.DryRun))
	return &Cleandb{config: c, logger: logger, db: db, sweeper: s, out: out}, nil
}

func newReporter(ctx context.Context, c *config.Config, logger logging.Logger) (sweeper.Reporter, error) {
	reporters := sweeper.MultiReporter{sweeper.NewLogReporter(logger)}
	if c.S3Bucket == "" {
		return reporters, nil
	}

	s3r, err := sweeper.NewS3Reporter(ctx, sweeper.S3Config{
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
	})
	if err != nil {
		return nil, err
	}
	return append(reporters, s3r), nil
}

// Run performs one sweep and prints a line per removed account.
func (c *Cleandb) Run(ctx context.Context) (*sweeper.Report, error) {
	defer c.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := initSignalHandler(cancel)
	defer stop()

	report, err := c.sweeper.Sweep(ctx, time.Now(), c.config.AccountTTL)
	if report != nil {
		for _, r := range report.Removed {
			fmt.Fprintf(c.out, "Removed user '%s'\n", r.Name)
		}
		for _, r := range report.Stale {
			fmt.Fprintf(c.out, "Would remove user '%s'\n", r.Name)
		}
	}
	return report, err
}
