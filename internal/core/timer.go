package core

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Pacer helps issue simulation updates at a steady ticks-per-second rate.
type Pacer struct {
	clock       clock.Clock
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewPacer constructs a Pacer targeting the given TPS on the wall clock.
func NewPacer(tps int) *Pacer {
	return NewPacerWithClock(tps, clock.New())
}

// NewPacerWithClock constructs a Pacer reading time from clk.
func NewPacerWithClock(tps int, clk clock.Clock) *Pacer {
	p := &Pacer{clock: clk}
	p.SetTPS(tps)
	p.accumulator = p.step
	return p
}

// SetTPS changes the tick rate. Non-positive values fall back to 60.
func (p *Pacer) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	p.step = time.Second / time.Duration(tps)
}

// TPS reports the configured tick rate.
func (p *Pacer) TPS() int { return int(time.Second / p.step) }

// Due reports whether the simulation should advance by one tick.
func (p *Pacer) Due() bool {
	now := p.clock.Now()
	if p.last.IsZero() {
		p.last = now
	}
	p.accumulator += now.Sub(p.last)
	p.last = now
	if p.accumulator >= p.step {
		p.accumulator -= p.step
		if p.accumulator > p.step {
			// Backlog is capped at one tick.
			p.accumulator = p.step
		}
		return true
	}
	return false
}

// Restart discards accumulated time so the next tick is due immediately.
func (p *Pacer) Restart() {
	p.last = time.Time{}
	p.accumulator = p.step
}
