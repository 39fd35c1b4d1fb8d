package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gammadia/reaper/namegen"
	"github.com/robfig/cron/v3"
)

// Job performs one retention run. The logger already carries the run id.
type Job func(ctx context.Context, run namegen.RunID, logger *slog.Logger) error

// Scheduler repeats a Job on a cron schedule, never running two at once.
type Scheduler struct {
	spec   string
	job    Job
	cron   *cron.Cron
	logger *slog.Logger
}

// New validates spec (standard five fields cron syntax, or descriptors such as
// "@daily" and "@every 1h").
func New(spec string, job Job, logger *slog.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scheduler{
		spec:   spec,
		job:    job,
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With("component", "schedule"),
	}, nil
}

// Run blocks until ctx is done, then waits for a run in progress to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", "schedule", s.spec)

	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	run := namegen.NewRunID()
	logger := s.logger.With("run", run)
	logger.Info("Cleanup started")
	if err := s.job(ctx, run, logger); err != nil {
		logger.Error("Cleanup failed", "error", err)
		return
	}
	logger.Info("Cleanup finished")
}
