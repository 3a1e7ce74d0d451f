// Package scheduler runs the periodic cleanup of finished scheduler bookkeeping rows.
//
// Cleanup is idempotent and safe to run at least once per tick: deleting already deleted
// rows, or running against a database without the bookkeeping tables, is a no-op.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegraph/internal/logfields"
	"git.home.luguber.info/inful/sitegraph/internal/metrics"
)

// Cleaner deletes finished actions of a bookkeeping group and reports how many went.
type Cleaner interface {
	CleanupScheduler(ctx context.Context, group string) (int64, error)
}

// Scheduler wraps a gocron scheduler running the cleanup job.
type Scheduler struct {
	scheduler gocron.Scheduler
	cleaner   Cleaner
	group     string
	recorder  metrics.Recorder
	logger    *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(s *Scheduler) { s.recorder = r } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Scheduler) { s.logger = l } }

// New creates a scheduler cleaning group through cleaner.
func New(cleaner Cleaner, group string, opts ...Option) (*Scheduler, error) {
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryScheduler, "failed to create gocron scheduler").Build()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		scheduler: gs,
		cleaner:   cleaner,
		group:     group,
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ScheduleCleanup registers the cleanup job: once right after Start, then every interval.
// Overlapping runs are skipped. Returns the job id.
func (s *Scheduler) ScheduleCleanup(interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", errors.SchedulerError("cleanup interval must be positive").
			WithContext("interval", interval.String()).
			Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.runScheduled),
		gocron.WithName("scheduler-cleanup"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryScheduler, "failed to create cleanup job").Build()
	}
	return job.ID().String(), nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler", slog.String("group", s.group))
	s.scheduler.Start()
}

// Stop cancels a running cleanup and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping scheduler")
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()
	if err := s.scheduler.Shutdown(); err != nil {
		return errors.WrapError(err, errors.CategoryScheduler, "failed to stop scheduler").Build()
	}
	return nil
}

func (s *Scheduler) runScheduled() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	_, _ = s.RunCleanup(ctx)
}

// RunCleanup performs one cleanup pass.
func (s *Scheduler) RunCleanup(ctx context.Context) (int64, error) {
	runID := uuid.NewString()
	start := time.Now()
	s.logger.DebugContext(ctx, "Running scheduler cleanup", logfields.JobID(runID), slog.String("group", s.group))

	deleted, err := s.cleaner.CleanupScheduler(ctx, s.group)
	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		s.recorder.IncCleanupRun(metrics.ResultError)
		s.logger.ErrorContext(ctx, "Scheduler cleanup failed",
			logfields.JobID(runID), logfields.DurationMS(elapsed), logfields.Error(err))
		return 0, err
	}

	result := metrics.ResultSuccess
	if deleted == 0 {
		result = metrics.ResultEmpty
	}
	s.recorder.IncCleanupRun(result)
	s.recorder.AddCleanupDeleted(deleted)
	s.logger.InfoContext(ctx, "Scheduler cleanup finished",
		logfields.JobID(runID), logfields.Count(int(deleted)), logfields.DurationMS(elapsed))
	return deleted, nil
}
