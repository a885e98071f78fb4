package wireworld

import (
	"encoding/json"
	"fmt"
	"io"
)

// Resume is the minimal snapshot needed to reconstruct simulation state
// without the original load data. Positions are grid indices (y*width+x).
type Resume struct {
	Generation    uint64 `json:"generation"`
	HeadPositions []int  `json:"headPositions"`
	TailPositions []int  `json:"tailPositions"`
}

// Snapshot captures the current generation and signal positions.
func (s *Sim) Snapshot() Resume {
	return Resume{
		Generation:    s.generation,
		HeadPositions: s.HeadPositions(),
		TailPositions: s.TailPositions(),
	}
}

// ReadResume decodes a JSON resume snapshot.
func ReadResume(r io.Reader) (*Resume, error) {
	var res Resume
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode resume snapshot: %w", err)
	}
	return &res, nil
}

// WriteResume encodes r as JSON.
func WriteResume(w io.Writer, r Resume) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func positionSet(positions []int) map[int]struct{} {
	set := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		set[p] = struct{}{}
	}
	return set
}
