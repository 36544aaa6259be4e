package lua

import "errors"

// Errors for Lua evaluation.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoResult is returned when a spec chunk returns no value.
	ErrNoResult = errors.New("lua chunk returned no value")

	// ErrNotTable is returned when a spec chunk returns a non-table value.
	ErrNotTable = errors.New("lua chunk did not return a table")
)
