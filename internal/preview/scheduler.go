package preview

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Scheduler runs periodic site refreshes.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a stopped scheduler.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "create scheduler").Build()
	}
	return &Scheduler{scheduler: s}, nil
}

// ScheduleRefresh runs fn every interval and returns the job ID. Overlapping
// runs are skipped.
func (s *Scheduler) ScheduleRefresh(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) (string, error) {
	if interval <= 0 {
		return "", errors.ValidationError("refresh interval must be positive").
			WithContext("interval", interval.String()).
			Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.run(ctx, name, fn) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRuntime, "schedule refresh").
			WithContext("job", name).
			Build()
	}
	slog.Info("Scheduled refresh", logfields.Job(name), slog.Duration("interval", interval))
	return job.ID().String(), nil
}

func (s *Scheduler) run(ctx context.Context, name string, fn func(context.Context) error) {
	start := time.Now()
	if err := fn(ctx); err != nil {
		slog.Warn("Scheduled refresh failed", logfields.Job(name), logfields.Error(err))
		return
	}
	slog.Debug("Scheduled refresh finished", logfields.Job(name), logfields.Duration(time.Since(start)))
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}
