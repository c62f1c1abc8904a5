package align

import "errors"

var (
	// ErrInvalidAlignment reports an alignment that is zero or not a power
	// of two. Invalid alignments are rejected at every public entry point,
	// never rounded to the nearest valid value.
	ErrInvalidAlignment = errors.New("align: alignment must be a non-zero power of two")

	// ErrInsufficientSpace reports that a buffer has no window large enough
	// for the requested aligned allocation. The buffer is left unmodified.
	ErrInsufficientSpace = errors.New("align: buffer too small for aligned request")

	// ErrAllocationFailure reports that the platform or base allocator
	// could not satisfy the (possibly enlarged) byte request. Requests are
	// never retried internally.
	ErrAllocationFailure = errors.New("align: allocation failed")
)
