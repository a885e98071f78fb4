package wireworld

import (
	"errors"
	"fmt"
)

// ErrInvariant marks an internal consistency failure of the update algorithm.
// It indicates a defect, never bad input.
var ErrInvariant = errors.New("wireworld invariant violated")

// CheckInvariants verifies that every cell is in exactly one of the conductor,
// head and tail classes, that the head and tail lists hold no duplicates and
// that no head-neighbour counter is left non-zero.
func (s *Sim) CheckInvariants() error {
	const (
		inHeads = 1 << iota
		inTails
	)
	seen := make([]uint8, len(s.cells))
	for _, h := range s.heads {
		if seen[h]&inHeads != 0 {
			return fmt.Errorf("%w: cell %d listed twice as head", ErrInvariant, h)
		}
		seen[h] |= inHeads
	}
	for _, t := range s.tails {
		if seen[t]&inTails != 0 {
			return fmt.Errorf("%w: cell %d listed twice as tail", ErrInvariant, t)
		}
		seen[t] |= inTails
	}
	for i := range s.cells {
		classes := 0
		if s.conducting[i] {
			classes++
		}
		if seen[i]&inHeads != 0 {
			classes++
		}
		if seen[i]&inTails != 0 {
			classes++
		}
		if classes != 1 {
			return fmt.Errorf("%w: cell %d at (%d,%d) is in %d classes", ErrInvariant, i, s.cells[i].X, s.cells[i].Y, classes)
		}
		if s.pending[i] != 0 {
			return fmt.Errorf("%w: cell %d has pending count %d", ErrInvariant, i, s.pending[i])
		}
	}
	return nil
}
