package wireworld

import (
	"wireworld/internal/core"
)

// Sim owns the Grid Model and the per-generation classification. Cost per
// Step is proportional to the active set, not to the grid area.
type Sim struct {
	w, h  int
	cells []Cell

	// conducting is true exactly for cells in the conductor state.
	conducting []bool
	// pending counts head neighbours during a Step; zero between steps.
	pending []uint8

	heads   []int32
	tails   []int32
	scratch []int32

	generation uint64
}

// Build constructs a simulation from load data and resets it to generation 0.
// A failed build returns no Sim at all.
func Build(g *core.Grid) (*Sim, error) {
	cells, err := buildCells(g)
	if err != nil {
		return nil, err
	}
	s := &Sim{
		w:          g.W,
		h:          g.H,
		cells:      cells,
		conducting: make([]bool, len(cells)),
		pending:    make([]uint8, len(cells)),
	}
	s.Reset(nil)
	return s, nil
}

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.w, H: s.h} }

// NumCells returns the number of non-dead cells.
func (s *Sim) NumCells() int { return len(s.cells) }

// Cell returns the cell stored at arena index i.
func (s *Sim) Cell(i int) *Cell { return &s.cells[i] }

// Generation returns the current generation counter.
func (s *Sim) Generation() uint64 { return s.generation }

// Reset reclassifies every cell without rebuilding adjacency. With a nil
// resume snapshot cells return to their initial state at generation 0;
// otherwise cells named in the snapshot become heads or tails and every other
// cell becomes a conductor. A position listed as both is a head.
func (s *Sim) Reset(r *Resume) {
	s.heads = s.heads[:0]
	s.tails = s.tails[:0]
	s.generation = 0

	var heads, tails map[int]struct{}
	if r != nil {
		s.generation = r.Generation
		heads = positionSet(r.HeadPositions)
		tails = positionSet(r.TailPositions)
	}

	for i := range s.cells {
		c := &s.cells[i]
		state := c.Initial
		if r != nil {
			state = core.Conductor
			if _, ok := heads[c.GridIndex]; ok {
				state = core.Head
			} else if _, ok := tails[c.GridIndex]; ok {
				state = core.Tail
			}
		}

		s.pending[i] = 0
		s.conducting[i] = false
		switch state {
		case core.Head:
			s.heads = append(s.heads, int32(i))
		case core.Tail:
			s.tails = append(s.tails, int32(i))
		default:
			s.conducting[i] = true
		}
	}
}

// Step advances the automaton by exactly one generation.
func (s *Sim) Step() {
	// Count head neighbours of every conductor next to a head, collecting each
	// such conductor once.
	candidates := s.scratch[:0]
	for _, h := range s.heads {
		c := &s.cells[h]
		for _, n := range c.neighbors[:c.numNeighbors] {
			if !s.conducting[n] {
				continue
			}
			if s.pending[n] == 0 {
				candidates = append(candidates, n)
			}
			s.pending[n]++
		}
	}

	// Keep candidates with one or two head neighbours, filtering in place.
	next := candidates[:0]
	for _, n := range candidates {
		count := s.pending[n]
		s.pending[n] = 0
		if count <= 2 {
			next = append(next, n)
		}
	}

	for _, t := range s.tails {
		s.conducting[t] = true
	}
	for _, n := range next {
		s.conducting[n] = false
	}

	// Heads become tails wholesale; the old tail buffer is recycled.
	recycled := s.tails
	s.tails = s.heads
	s.heads = next
	s.scratch = recycled[:0]
	s.generation++
}

// Advance runs n generations.
func (s *Sim) Advance(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// HeadPositions returns the position keys of the current heads.
func (s *Sim) HeadPositions() []int { return s.positions(s.heads) }

// TailPositions returns the position keys of the current tails.
func (s *Sim) TailPositions() []int { return s.positions(s.tails) }

// NumHeads returns the number of current heads.
func (s *Sim) NumHeads() int { return len(s.heads) }

// NumTails returns the number of current tails.
func (s *Sim) NumTails() int { return len(s.tails) }

func (s *Sim) positions(list []int32) []int {
	out := make([]int, len(list))
	for i, idx := range list {
		out[i] = s.cells[idx].GridIndex
	}
	return out
}

// Classify returns the current state of every cell, indexed like the arena.
func (s *Sim) Classify() []core.State {
	out := make([]core.State, len(s.cells))
	for i := range out {
		if s.conducting[i] {
			out[i] = core.Conductor
		}
	}
	for _, h := range s.heads {
		out[h] = core.Head
	}
	for _, t := range s.tails {
		out[t] = core.Tail
	}
	return out
}

// Cells renders the current classification into a row-major grid buffer.
func (s *Sim) Cells() []core.State {
	out := make([]core.State, s.w*s.h)
	for i, st := range s.Classify() {
		out[s.cells[i].GridIndex] = st
	}
	return out
}
