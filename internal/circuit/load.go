// Package circuit loads circuit descriptions into load-time grids.
package circuit

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"wireworld/internal/core"
)

// ErrUnknownFormat is returned for files with no registered decoder.
var ErrUnknownFormat = errors.New("unknown circuit format")

// Load decodes the circuit file at path, picking a decoder by extension.
func Load(path string) (*core.Grid, error) {
	decode, ok := core.DecoderFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s (known: %s)", ErrUnknownFormat, path, strings.Join(core.Decoders(), ", "))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Random generates a w×h circuit where each position is live with the given
// density. Live positions are mostly conductors with scattered heads and
// tails. The same seed always yields the same circuit.
func Random(w, h int, seed int64, density float64) (*core.Grid, error) {
	g, err := core.NewGrid(w, h)
	if err != nil {
		return nil, err
	}
	rng := core.NewRNG(seed)
	cells := g.Cells()
	for i := range cells {
		if rng.Chance(density) {
			cells[i] = rng.State()
		}
	}
	return g, nil
}
