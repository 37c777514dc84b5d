// Package scheduler drives periodic market data ticks on a robfig/cron loop.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/ndewijer/Market-Data-Simulator/internal/logging"
	"github.com/ndewijer/Market-Data-Simulator/internal/metrics"
	"github.com/ndewijer/Market-Data-Simulator/internal/validation"
)

// Scheduler states.
const (
	StateIdle     = "idle"
	StateArmed    = "armed"
	StateUpdating = "updating"
)

// DefaultInterval is the period between scheduled ticks unless configured otherwise.
const DefaultInterval = 30 * time.Second

// Refresher runs one tick of the market feed.
type Refresher interface {
	Tick(ctx context.Context) error
}

// every fires at a fixed period measured from the previous activation.
// cron.Every rounds to whole seconds, which is too coarse for short intervals.
type every time.Duration

func (e every) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

// Scheduler arms and disarms a single cron entry that calls Refresher.Tick.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	entry    cron.EntryID
	armed    bool
	enabled  bool
	interval time.Duration
	started  bool

	running atomic.Bool
}

// New creates a Scheduler. Auto-update starts enabled or disabled according to autoUpdate;
// nothing is armed until Start is called.
func New(refresher Refresher, interval time.Duration, autoUpdate bool, logger *zap.Logger, m *metrics.Metrics) (*Scheduler, error) {
	if _, err := validation.IntervalFromMillis(interval.Milliseconds()); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")

	cronLogger := skipCounter{Logger: logging.NewCronLogger(logger), onSkip: m.ObserveSkipped}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		refresher: refresher,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		enabled:   autoUpdate,
		interval:  interval,
	}, nil
}

// Start launches the cron loop and arms the tick entry if auto-update is enabled.
// A stopped Scheduler cannot be restarted.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.ctx.Err() != nil {
		return
	}
	s.started = true
	s.cron.Start()
	if s.enabled {
		s.armLocked()
	}
	s.logger.Info("scheduler started",
		zap.Bool("autoUpdate", s.enabled),
		zap.Duration("interval", s.interval),
	)
}

// Stop cancels any in-flight tick, stops the cron loop and waits for running jobs
// until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.disarmLocked()
	s.started = false
	s.mu.Unlock()

	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop: %w", ctx.Err())
	}
}

// SetAutoUpdate enables or disables scheduled ticks. Repeated calls with the same
// value have no effect.
func (s *Scheduler) SetAutoUpdate(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAutoUpdateLocked(enabled)
}

// ToggleAutoUpdate flips auto-update and returns the new value.
func (s *Scheduler) ToggleAutoUpdate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAutoUpdateLocked(!s.enabled)
	return s.enabled
}

func (s *Scheduler) setAutoUpdateLocked(enabled bool) {
	s.enabled = enabled
	if !s.started {
		return
	}
	if enabled {
		s.armLocked()
	} else {
		s.disarmLocked()
	}
}

// SetInterval changes the tick period. The running entry is replaced so the new
// period takes effect immediately.
func (s *Scheduler) SetInterval(interval time.Duration) error {
	if _, err := validation.IntervalFromMillis(interval.Milliseconds()); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if interval == s.interval {
		return nil
	}
	s.interval = interval
	if s.armed {
		s.disarmLocked()
		s.armLocked()
	}
	s.logger.Info("update interval changed", zap.Duration("interval", interval))
	return nil
}

// Interval returns the current tick period.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// AutoUpdateEnabled reports whether scheduled ticks are enabled.
func (s *Scheduler) AutoUpdateEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// State returns StateUpdating while a scheduled tick is running, StateArmed while a
// tick is scheduled and StateIdle otherwise. Manual refreshes do not change it.
func (s *Scheduler) State() string {
	if s.running.Load() {
		return StateUpdating
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armed {
		return StateArmed
	}
	return StateIdle
}

func (s *Scheduler) armLocked() {
	if s.armed {
		return
	}
	s.entry = s.cron.Schedule(every(s.interval), cron.FuncJob(s.run))
	s.armed = true
}

func (s *Scheduler) disarmLocked() {
	if !s.armed {
		return
	}
	s.cron.Remove(s.entry)
	s.entry = 0
	s.armed = false
}

func (s *Scheduler) run() {
	s.running.Store(true)
	defer s.running.Store(false)

	if err := s.refresher.Tick(s.ctx); err != nil {
		s.logger.Warn("scheduled tick failed", zap.Error(err))
	}
}

// skipCounter forwards cron log lines and counts the ticks SkipIfStillRunning drops.
type skipCounter struct {
	cron.Logger
	onSkip func()
}

func (l skipCounter) Info(msg string, keysAndValues ...interface{}) {
	if msg == "skip" {
		l.onSkip()
	}
	l.Logger.Info(msg, keysAndValues...)
}
