package core

import (
	"fmt"

	"go.uber.org/multierr"
)

// Grid stores the load-time state of every position in row-major order.
// Positions that were never set are Dead.
type Grid struct {
	W, H int
	data []State
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Grid{W: w, H: h, data: make([]State, w*h)}, nil
}

// GridFromRows builds a grid from per-row state data. Rows may be shorter than
// the width or missing entirely (nil); absent entries are Dead. Every malformed
// entry is reported, not just the first.
func GridFromRows(w, h int, rows [][]State) (*Grid, error) {
	g, err := NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	if len(rows) > h {
		err = multierr.Append(err, fmt.Errorf("%w: %d rows for height %d", ErrRowOutOfRange, len(rows), h))
	}
	for y, row := range rows {
		if y >= h {
			break
		}
		if len(row) > w {
			err = multierr.Append(err, fmt.Errorf("%w: row %d has %d entries for width %d", ErrColumnOutOfRange, y, len(row), w))
		}
		for x, s := range row {
			if x >= w {
				break
			}
			if !s.Valid() {
				err = multierr.Append(err, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidState, s, x, y))
				continue
			}
			g.data[g.Index(x, y)] = s
		}
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so callers can read values directly.
func (g *Grid) Cells() []State { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the state at (x, y), or Dead outside the grid.
func (g *Grid) At(x, y int) State {
	if !g.InBounds(x, y) {
		return Dead
	}
	return g.data[g.Index(x, y)]
}

// Set stores s at (x, y).
func (g *Grid) Set(x, y int, s State) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrColumnOutOfRange, x, y, g.W, g.H)
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidState, s)
	}
	g.data[g.Index(x, y)] = s
	return nil
}

// Count returns the number of non-dead positions.
func (g *Grid) Count() int {
	n := 0
	for _, s := range g.data {
		if s != Dead {
			n++
		}
	}
	return n
}
