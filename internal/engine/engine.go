// Package engine exposes the Wireworld simulation through one-way commands
// and outbound render events. A single goroutine (the one running Run) owns
// all simulation state; nothing is shared with the host.
package engine

import (
	"context"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"wireworld/internal/turbo"
	"wireworld/internal/wireworld"
)

const defaultQueueSize = 64

// Engine processes commands and emits render snapshots.
type Engine struct {
	log   *zap.Logger
	clock clock.Clock
	sink  Sink
	cmds  chan Command

	sim       *wireworld.Sim
	turbo     *turbo.Scheduler
	turboOpts []turbo.Option
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock sets the time source shared with the turbo scheduler.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithQueueSize sets the command buffer length.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.cmds = make(chan Command, n)
		}
	}
}

// WithTurboOptions passes extra options to the turbo scheduler.
func WithTurboOptions(opts ...turbo.Option) Option {
	return func(e *Engine) { e.turboOpts = append(e.turboOpts, opts...) }
}

// New returns an engine that reports to sink. Call Run to start processing.
func New(sink Sink, opts ...Option) *Engine {
	e := &Engine{
		log:   zap.NewNop(),
		clock: clock.New(),
		sink:  sink,
		cmds:  make(chan Command, defaultQueueSize),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.turbo = e.newScheduler()
	return e
}

func (e *Engine) newScheduler() *turbo.Scheduler {
	opts := append([]turbo.Option{
		turbo.WithClock(e.clock),
		turbo.WithLogger(e.log.Named("turbo")),
	}, e.turboOpts...)
	return turbo.New(opts...)
}

// Send queues cmd for the run loop. It blocks only while the queue is full.
func (e *Engine) Send(ctx context.Context, cmd Command) error {
	select {
	case e.cmds <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend queues cmd without blocking and reports whether it was accepted.
func (e *Engine) TrySend(cmd Command) bool {
	select {
	case e.cmds <- cmd:
		return true
	default:
		return false
	}
}

// Run processes commands until ctx is cancelled. While turbo is active it
// runs one batch per iteration and handles pending commands between batches,
// so a stop takes effect before the next batch and never interrupts one.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if e.turbo.Active() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case cmd := <-e.cmds:
				e.handle(cmd)
			default:
				e.tick()
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-e.cmds:
			e.handle(cmd)
		}
	}
}

func (e *Engine) handle(cmd Command) {
	switch cmd.Type {
	case TypeInitialize:
		e.initialize(cmd)
	case TypeAdvance:
		if !e.ready(cmd.Type) {
			return
		}
		e.sim.Step()
		e.emit()
	case TypeReset:
		if !e.ready(cmd.Type) {
			return
		}
		e.sim.Reset(cmd.Resume)
		if e.turbo.Active() {
			e.turbo.Start(e.sim.Generation())
		}
		e.emit()
	case TypeStartTurbo:
		if !e.ready(cmd.Type) || e.turbo.Active() {
			return
		}
		e.turbo.Start(e.sim.Generation())
		e.log.Info("turbo on", zap.Uint64("generation", e.sim.Generation()), zap.Int("burst", e.turbo.Burst()))
	case TypeStopTurbo:
		if !e.turbo.Active() {
			return
		}
		speed := e.turbo.Speed(e.sim.Generation())
		e.turbo.Stop()
		e.log.Info("turbo off", zap.Uint64("generation", e.sim.Generation()), zap.Int64("speed", speed), zap.Int("burst", e.turbo.Burst()))
		e.emit()
	default:
		e.log.Debug("ignoring unknown command", zap.String("type", string(cmd.Type)))
	}
}

func (e *Engine) ready(t Type) bool {
	if e.sim == nil {
		e.log.Debug("command before initialize", zap.String("type", string(t)))
		return false
	}
	return true
}

func (e *Engine) initialize(cmd Command) {
	e.turbo.Stop()
	e.turbo = e.newScheduler()
	e.sim = nil

	if cmd.invalid != nil {
		e.log.Warn("initialize failed", zap.Error(cmd.invalid))
		e.sink.Error(cmd.invalid)
		return
	}
	sim, err := wireworld.Build(cmd.Grid)
	if err != nil {
		e.log.Warn("initialize failed", zap.Error(err))
		e.sink.Error(err)
		return
	}
	if cmd.Resume != nil {
		sim.Reset(cmd.Resume)
	}
	e.sim = sim
	size := sim.Size()
	e.log.Info("initialized",
		zap.Int("width", size.W),
		zap.Int("height", size.H),
		zap.Int("cells", sim.NumCells()),
		zap.Uint64("generation", sim.Generation()),
	)
	e.emit()
}

func (e *Engine) tick() {
	if e.turbo.Tick(e.sim.Step) {
		e.emit()
	}
}

func (e *Engine) emit() {
	size := e.sim.Size()
	e.sink.Render(Render{
		Generation:      e.sim.Generation(),
		SimulationSpeed: e.turbo.Speed(e.sim.Generation()),
		Width:           size.W,
		Height:          size.H,
		HeadPositions:   e.sim.HeadPositions(),
		TailPositions:   e.sim.TailPositions(),
	})
}
