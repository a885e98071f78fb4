package app

import (
	"errors"
	"fmt"
	"os"

	"wireworld/internal/circuit"
	"wireworld/internal/core"
	"wireworld/internal/wireworld"
)

// ErrNoCircuit is returned when no circuit path was given.
var ErrNoCircuit = errors.New("no circuit given (use -circuit)")

// Load reads the circuit at path and, when resumePath is set, the resume
// snapshot to start from.
func Load(path, resumePath string) (*core.Grid, *wireworld.Resume, error) {
	if path == "" {
		return nil, nil, ErrNoCircuit
	}
	grid, err := circuit.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if resumePath == "" {
		return grid, nil, nil
	}
	f, err := os.Open(resumePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	resume, err := wireworld.ReadResume(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", resumePath, err)
	}
	return grid, resume, nil
}
