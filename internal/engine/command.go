package engine

import (
	"wireworld/internal/core"
	"wireworld/internal/wireworld"
)

// Type names an inbound command.
type Type string

const (
	TypeInitialize Type = "initialize"
	TypeAdvance    Type = "advance"
	TypeReset      Type = "reset"
	TypeStartTurbo Type = "startTurbo"
	TypeStopTurbo  Type = "stopTurbo"
)

// Command is a one-way request to the engine. Only the fields relevant to
// Type are read.
type Command struct {
	Type   Type
	Grid   *core.Grid
	Resume *wireworld.Resume

	// invalid holds the reason a decoded initialize carries no usable grid.
	// The engine fails the initialize with it.
	invalid error
}

// Initialize builds a new grid model, optionally resuming from a snapshot.
func Initialize(g *core.Grid, r *wireworld.Resume) Command {
	return Command{Type: TypeInitialize, Grid: g, Resume: r}
}

// Advance runs exactly one generation.
func Advance() Command { return Command{Type: TypeAdvance} }

// Reset reclassifies cells from the initial state or from r.
func Reset(r *wireworld.Resume) Command { return Command{Type: TypeReset, Resume: r} }

// StartTurbo begins the adaptive batch loop.
func StartTurbo() Command { return Command{Type: TypeStartTurbo} }

// StopTurbo cancels the batch loop after the current batch.
func StopTurbo() Command { return Command{Type: TypeStopTurbo} }
