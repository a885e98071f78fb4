package wireworld

import (
	"fmt"

	"wireworld/internal/core"
)

const maxNeighbors = 8

// Cell is one non-dead grid position. Dead positions are never materialized.
type Cell struct {
	X, Y int
	// GridIndex is y*width+x, the position key shared with renderers.
	GridIndex int
	// Initial is the state held at generation 0.
	Initial core.State

	neighbors    [maxNeighbors]int32
	numNeighbors uint8
}

// Neighbors returns the arena indices of the adjacent non-dead cells in
// row-major scan order.
func (c *Cell) Neighbors() []int32 { return c.neighbors[:c.numNeighbors] }

// buildCells materializes one cell per non-dead position and links each to its
// 8-connected neighbours. Adjacency is computed once and never changes.
func buildCells(g *core.Grid) ([]Cell, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", core.ErrInvalidSize)
	}
	if g.W <= 0 || g.H <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", core.ErrInvalidSize, g.W, g.H)
	}
	states := g.Cells()
	if len(states) != g.W*g.H {
		return nil, fmt.Errorf("%w: %d states for %dx%d", core.ErrColumnOutOfRange, len(states), g.W, g.H)
	}

	// Position -> arena index, -1 for dead. Only lives for the build.
	lookup := make([]int32, len(states))
	cells := make([]Cell, 0, g.Count())
	for i, s := range states {
		if !s.Valid() {
			return nil, fmt.Errorf("%w: %d at index %d", core.ErrInvalidState, s, i)
		}
		if s == core.Dead {
			lookup[i] = -1
			continue
		}
		lookup[i] = int32(len(cells))
		cells = append(cells, Cell{X: i % g.W, Y: i / g.W, GridIndex: i, Initial: s})
	}

	for i := range cells {
		c := &cells[i]
		for dy := -1; dy <= 1; dy++ {
			ny := c.Y + dy
			if ny < 0 || ny >= g.H {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx := c.X + dx
				if nx < 0 || nx >= g.W {
					continue
				}
				if n := lookup[ny*g.W+nx]; n >= 0 {
					c.neighbors[c.numNeighbors] = n
					c.numNeighbors++
				}
			}
		}
	}
	return cells, nil
}
