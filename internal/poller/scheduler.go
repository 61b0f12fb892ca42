package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the period between cycles.
const DefaultInterval = 5 * time.Second

const resultsBuffer = 16

// Scheduler runs a [Poller] once immediately and then on every tick.
//
// Each tick starts its own cycle; a slow cycle does not delay or suppress the
// next one, so cycles may overlap. Completed cycles are emitted on
// [Scheduler.Results].
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Scheduler struct {
	poller   *Poller
	interval time.Duration
	results  chan Result
	logger   *slog.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu        sync.Mutex
	started   bool
	stopped   bool
	closeOnce sync.Once
}

// NewScheduler creates a [Scheduler]. An interval of zero or less uses
// [DefaultInterval].
func NewScheduler(p *Poller, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		poller:   p,
		interval: interval,
		results:  make(chan Result, resultsBuffer),
		logger:   logger,
	}
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Results returns a channel that emits one [Result] per completed cycle.
// The channel is closed when the scheduler stops.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Start begins polling in a background goroutine and returns immediately.
//
// The first cycle starts right away, then one per interval until
// [Scheduler.Stop] is called or ctx is cancelled. Start is idempotent, and a
// no-op after Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		s.spawn(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.spawn(ctx)
			}
		}
	}()
}

// spawn starts one cycle. The loop goroutine holds a wg slot while calling
// this, so Add never races with Stop's Wait reaching zero.
func (s *Scheduler) spawn(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result := s.poller.Run(ctx)
		if result.Cancelled {
			return
		}

		select {
		case s.results <- result:
		case <-ctx.Done():
		}
	}()
}

// Stop cancels polling, waits for in-flight cycles, releases idle
// connections and closes the results channel.
//
// Stop is idempotent. Calling Stop before Start is a safe no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()

	s.poller.Close()

	s.closeOnce.Do(func() { close(s.results) })
	s.logger.Debug("scheduler stopped")
}
