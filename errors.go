package pso

import "errors"

var (
	// ErrInvalidConfiguration is returned when a swarm cannot be built from
	// the given bounds or sizes.  No swarm is produced.
	ErrInvalidConfiguration = errors.New("invalid swarm configuration")
	// ErrDimensionMismatch is returned when a vector has the wrong length
	// for the operation, e.g. an empty objective input.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
