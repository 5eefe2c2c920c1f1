package sweeper

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/postit/internal/logging"
)

// Reporter publishes a finished sweep report.
type Reporter interface {
	Report(ctx context.Context, r *Report) error
}

// LogReporter writes a one-line summary to the logger.
type LogReporter struct {
	log logging.Logger
}

func NewLogReporter(log logging.Logger) *LogReporter {
	return &LogReporter{log: log}
}

func (l *LogReporter) Report(ctx context.Context, r *Report) error {
	l.log.Info(ctx, "sweep finished",
		"run_id", r.RunID,
		"scanned", r.Scanned,
		"removed", r.Count(),
		"stale", len(r.Stale),
		"failures", len(r.Failures),
		"dry_run", r.DryRun,
		"took", r.FinishedAt.Sub(r.StartedAt).String(),
	)
	return nil
}

// MultiReporter hands the report to every reporter in turn and joins
// their errors.
type MultiReporter []Reporter

func (m MultiReporter) Report(ctx context.Context, r *Report) error {
	var errs []error
	for _, rep := range m {
		if err := rep.Report(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
