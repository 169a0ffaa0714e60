// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/aegis-support/aegis/internal/shared/biztime"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSweepJob registers the critical issue sweep. Singleton mode
// keeps a slow sweep from overlapping the next tick; a failed sweep is
// logged and retried at the next interval, never crashing the loop.
func (m *SchedulerManager) RegisterSweepJob(sweepJob BatchJob, interval time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			m.runSweep(ctx, sweepJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("monitor", "sweep"),
		gocron.WithName("critical-issue-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered critical issue sweep", "interval", interval)
	return nil
}

func (m *SchedulerManager) runSweep(ctx context.Context, sweepJob BatchJob) {
	startTime := biztime.NowUTC()

	alertCount, err := sweepJob.Execute(ctx)
	if err != nil {
		m.logger.Errorw("sweep iteration failed, will retry next interval",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if alertCount > 0 {
		m.logger.Infow("sweep raised alerts",
			"count", alertCount,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("sweep completed with no new alerts",
			"duration", time.Since(startTime),
		)
	}
}

// RegisterIndexWarmupJob registers a one-shot index rebuild shortly
// after startup so similarity queries work after a cold start.
func (m *SchedulerManager) RegisterIndexWarmupJob(warmupJob BatchJob) error {
	_, err := m.scheduler.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()

			count, err := warmupJob.Execute(ctx)
			if err != nil {
				m.logger.Errorw("index warmup failed", "error", err)
				return
			}
			m.logger.Infow("similarity index warmed", "issues", count)
		}),
		gocron.WithTags("analysis", "warmup"),
		gocron.WithName("index-warmup"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Start starts the scheduler. Safe to call more than once.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop shuts down the scheduler and waits for running jobs.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted reports whether Start has been called.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns the registered jobs.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
