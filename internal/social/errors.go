package social

import (
	"errors"
)

// Error kinds surfaced by the core. Callers match with errors.Is; anything
// else is an infrastructure failure from the store.
var (
	// ErrNotFound indicates a referenced account or post does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation indicates malformed input or a forbidden
	// operation such as a self-follow
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConflict indicates a uniqueness collision on handle or email
	ErrConflict = errors.New("conflict")
)
