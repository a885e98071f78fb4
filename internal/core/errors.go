package core

import "errors"

var (
	// ErrInvalidSize is returned for non-positive grid dimensions.
	ErrInvalidSize = errors.New("grid dimensions must be positive")
	// ErrRowOutOfRange is returned when state data has more rows than the grid.
	ErrRowOutOfRange = errors.New("row out of range")
	// ErrColumnOutOfRange is returned when a row is wider than the grid.
	ErrColumnOutOfRange = errors.New("column out of range")
	// ErrInvalidState is returned for a state value outside the known set.
	ErrInvalidState = errors.New("invalid cell state")
)
