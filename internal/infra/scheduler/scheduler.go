package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher is the job the scheduler runs on every tick. It reports how many
// items it refreshed.
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Scheduler periodically runs a Refresher until stopped.
type Scheduler struct {
	interval  time.Duration
	timeout   time.Duration
	refresher Refresher
	log       *zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler constructs a scheduler that runs refresher.Refresh every
// interval. If interval <= 0 it defaults to 1 minute.
func NewScheduler(interval time.Duration, refresher Refresher, logger *zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	l := logger.With().Str("component", "scheduler").Logger()
	return &Scheduler{
		interval:  interval,
		timeout:   30 * time.Second,
		refresher: refresher,
		log:       &l,
		done:      make(chan struct{}),
	}
}

// Start begins the loop in a background goroutine. Calling Start twice has no
// effect.
func (s *Scheduler) Start(parentCtx context.Context) {
	if s.ctx != nil {
		return
	}
	s.ctx, s.cancel = context.WithCancel(parentCtx)
	go s.loop()
}

func (s *Scheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		close(s.done)
	}()

	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

// runOnce bounds each run by s.timeout; errors are logged and the loop keeps
// going.
func (s *Scheduler) runOnce() {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()
	n, err := s.refresher.Refresh(runCtx)
	if err != nil {
		s.log.Warn().Err(err).Msg("refresh failed")
		return
	}
	s.log.Debug().Int("items", n).Msg("refresh done")
}

// Stop cancels the loop and waits for it to finish. It is idempotent.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.ctx = nil
	s.cancel = nil
	s.done = make(chan struct{})
	s.log.Info().Msg("scheduler stopped")
}
