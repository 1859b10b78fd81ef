package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Runner is one unit of scheduled work
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to Runner
type RunnerFunc func(ctx context.Context) error

// Run calls f
func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// JobRunner adapts a Job to Runner, discarding the summary
func JobRunner(j *Job) Runner {
	return RunnerFunc(func(ctx context.Context) error {
		_, err := j.Run(ctx)
		return err
	})
}

// Scheduler re-runs an import on a cron schedule.
// Overlapping ticks are skipped while a run is still in progress.
type Scheduler struct {
	spec   string
	runner Runner
	cron   *cron.Cron
}

// NewScheduler creates a scheduler for spec (standard 5-field cron or @descriptor)
func NewScheduler(spec string, runner Runner) *Scheduler {
	logger := cronLogger{logger: log.Logger}

	return &Scheduler{
		spec:   spec,
		runner: runner,
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Start registers the job and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	log.Info().Msg("Scheduler starting...")

	if _, err := s.cron.AddFunc(s.spec, func() {
		log.Info().Msg("Running scheduled import...")
		if err := s.runner.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Scheduled import failed")
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule import %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.Info().Str("schedule", s.spec).Msg("Import scheduled")

	return nil
}

// Stop stops the cron loop and waits for a running import to finish
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")
	<-s.cron.Stop().Done()
	log.Info().Msg("Scheduler stopped")
}

// cronLogger routes cron's own logging through zerolog
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
