// Package sweeper evicts accounts older than a TTL together with their posts.
// It runs as its own process against the same store the interactive service
// uses, so every eviction is a short transaction that tolerates concurrent
// logins and posts.
package sweeper

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/postit/internal/dbx"
	"github.com/dmitrijs2005/postit/internal/logging"
	"github.com/dmitrijs2005/postit/internal/models"
	"github.com/dmitrijs2005/postit/internal/repositories/repomanager"
	"github.com/google/uuid"
)

// Removed describes one evicted account, or in a dry run one that would be.
type Removed struct {
	AccountID int64  `json:"uid"`
	Name      string `json:"name"`
	AgeSecs   int64  `json:"age_secs"`
	Posts     int64  `json:"posts"`
}

// Failure is an account the sweep could not evict.
type Failure struct {
	AccountID int64  `json:"uid"`
	Name      string `json:"name"`
	Error     string `json:"error"`
}

// Report summarizes one sweep.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	TTLSecs    int64     `json:"ttl_secs"`
	DryRun     bool      `json:"dry_run"`
	Scanned    int       `json:"scanned"`
	Removed    []Removed `json:"removed"`
	Stale      []Removed `json:"stale,omitempty"`
	Failures   []Failure `json:"failures"`
}

// Count is the number of accounts removed by the run.
func (r *Report) Count() int {
	return len(r.Removed)
}

type Sweeper struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	reporter    Reporter
	dryRun      bool
	newRunID    func() string
}

type Option func(*Sweeper)

// WithReporter replaces the default LogReporter.
func WithReporter(r Reporter) Option {
	return func(s *Sweeper) { s.reporter = r }
}

// WithDryRun makes Sweep list stale accounts without deleting anything.
func WithDryRun(dryRun bool) Option {
	return func(s *Sweeper) { s.dryRun = dryRun }
}

func New(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger, opts ...Option) *Sweeper {
	s := &Sweeper{
		db:          db,
		repomanager: m,
		log:         log,
		newRunID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reporter == nil {
		s.reporter = NewLogReporter(log)
	}
	return s
}

// Sweep removes every account whose age at now is at least ttl. The account
// list is read once up front; each stale account then loses its posts and
// its row in one transaction, posts first. An account that cannot be
// removed is logged, recorded in the report and skipped. Only a failure to
// list accounts, or cancellation of ctx, aborts the run.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time, ttl time.Duration) (*Report, error) {
	report := &Report{
		RunID:     s.newRunID(),
		StartedAt: now,
		TTLSecs:   int64(ttl / time.Second),
		DryRun:    s.dryRun,
		Removed:   []Removed{},
		Failures:  []Failure{},
	}
	log := s.log.With("run_id", report.RunID)

	log.Info(ctx, "sweep started", "ttl", ttl.String(), "dry_run", s.dryRun)

	all, err := s.repomanager.Accounts(s.db).ListAll(ctx)
	if err != nil {
		log.Error(ctx, "listing accounts", "error", err)
		return nil, err
	}
	report.Scanned = len(all)

	for _, a := range all {
		if err := ctx.Err(); err != nil {
			report.FinishedAt = time.Now()
			return report, err
		}

		age := a.Age(now)
		if age < ttl {
			continue
		}

		if s.dryRun {
			report.Stale = append(report.Stale, Removed{AccountID: a.ID, Name: a.Name, AgeSecs: int64(age / time.Second)})
			continue
		}

		posts, err := s.evict(ctx, a)
		if err != nil {
			log.Error(ctx, "removing account", "uid", a.ID, "name", a.Name, "error", err)
			report.Failures = append(report.Failures, Failure{AccountID: a.ID, Name: a.Name, Error: err.Error()})
			continue
		}

		log.Info(ctx, "account removed", "uid", a.ID, "name", a.Name, "age", age.String(), "posts", posts)
		report.Removed = append(report.Removed, Removed{
			AccountID: a.ID,
			Name:      a.Name,
			AgeSecs:   int64(age / time.Second),
			Posts:     posts,
		})
	}
	report.FinishedAt = time.Now()

	if err := s.reporter.Report(ctx, report); err != nil {
		log.Warn(ctx, "publishing sweep report", "error", err)
	}

	return report, nil
}

func (s *Sweeper) evict(ctx context.Context, a models.Account) (int64, error) {
	var posts int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// posts added after the lock wait for us and then find no owner
		if err := s.repomanager.Accounts(tx).LockForDelete(ctx, a.ID); err != nil {
			return err
		}
		n, err := s.repomanager.Posts(tx).DeleteByOwner(ctx, a.ID)
		if err != nil {
			return err
		}
		posts = n
		return s.repomanager.Accounts(tx).Delete(ctx, a.ID)
	})
	return posts, err
}
