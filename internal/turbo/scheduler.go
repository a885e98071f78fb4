// Package turbo runs the simulation in adaptively sized batches so raw
// throughput is decoupled from the display refresh rate.
package turbo

import (
	"math"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

const (
	// StepsPerBurst is the number of generations per unit of burst.
	StepsPerBurst = 6
	// MaxTickBudget is the wall time a single batch should stay under.
	MaxTickBudget = 100 * time.Millisecond
	// RenderInterval is the minimum spacing between render requests (~60 Hz).
	RenderInterval = time.Second / 60
	// MaxBurst bounds doubling when steps cost no measurable time.
	MaxBurst = 1 << 24
	// SpeedNotRunning is reported by Speed while the scheduler is stopped.
	SpeedNotRunning int64 = -1
)

// Scheduler sizes batches of simulation steps so that each batch fits the tick
// budget. The burst doubles while batches finish in under half the budget and
// halves when a batch overruns it.
type Scheduler struct {
	clock       clock.Clock
	log         *zap.Logger
	budget      time.Duration
	renderEvery time.Duration

	burst  int
	active bool

	startTime  time.Time
	startGen   uint64
	lastRender time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock sets the time source used for measuring batches.
func WithClock(c clock.Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// WithBudget overrides the per-batch time budget.
func WithBudget(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.budget = d
		}
	}
}

// WithRenderInterval overrides the minimum spacing between render requests.
func WithRenderInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d >= 0 {
			s.renderEvery = d
		}
	}
}

// New returns a stopped scheduler with a burst of 1.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:       clock.New(),
		log:         zap.NewNop(),
		budget:      MaxTickBudget,
		renderEvery: RenderInterval,
		burst:       1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start marks the scheduler active. Speed is measured from this call and
// generation gen.
func (s *Scheduler) Start(gen uint64) {
	now := s.clock.Now()
	s.active = true
	s.startTime = now
	s.startGen = gen
	s.lastRender = now
	s.log.Debug("turbo started", zap.Uint64("generation", gen), zap.Int("burst", s.burst))
}

// Stop marks the scheduler inactive. The burst is kept for the next Start.
func (s *Scheduler) Stop() {
	if !s.active {
		return
	}
	s.active = false
	s.log.Debug("turbo stopped", zap.Int("burst", s.burst))
}

// Active reports whether batches should be scheduled.
func (s *Scheduler) Active() bool { return s.active }

// Burst returns the current step multiplier.
func (s *Scheduler) Burst() int { return s.burst }

// BatchSize returns the number of steps the next Tick will run.
func (s *Scheduler) BatchSize() int { return StepsPerBurst * s.burst }

// Tick runs one full batch of step calls, adapts the burst to the measured
// batch duration and reports whether a render is due.
func (s *Scheduler) Tick(step func()) bool {
	start := s.clock.Now()
	for i, n := 0, s.BatchSize(); i < n; i++ {
		step()
	}
	now := s.clock.Now()
	s.adapt(now.Sub(start))

	if now.Sub(s.lastRender) > s.renderEvery {
		s.lastRender = now
		return true
	}
	return false
}

func (s *Scheduler) adapt(elapsed time.Duration) {
	switch {
	case elapsed > s.budget:
		if s.burst > 1 {
			s.burst >>= 1
		}
	case elapsed*2 < s.budget:
		if s.burst < MaxBurst {
			s.burst <<= 1
		}
	}
}

// Speed returns generations per second since Start, or SpeedNotRunning.
func (s *Scheduler) Speed(gen uint64) int64 {
	if !s.active {
		return SpeedNotRunning
	}
	elapsed := s.clock.Now().Sub(s.startTime)
	if elapsed <= 0 || gen < s.startGen {
		return 0
	}
	return int64(math.Round(float64(gen-s.startGen) / elapsed.Seconds()))
}
