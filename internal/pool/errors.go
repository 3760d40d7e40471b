package pool

import (
	"errors"
)

var (
	// ErrEntropyUnavailable is returned when the entropy source fails or delivers fewer bytes than requested.
	// The pool never falls back to a weaker source.
	ErrEntropyUnavailable = errors.New("secure random source unavailable")

	// ErrNegativeSize is returned when a negative number of bytes is requested.
	ErrNegativeSize = errors.New("requested byte count can not be negative")

	// ErrSizeTooLarge is returned when a request times the multiplier overflows an int.
	ErrSizeTooLarge = errors.New("requested byte count is too large")

	// ErrInvalidMultiplier is returned when the pool multiplier is smaller than 1.
	ErrInvalidMultiplier = errors.New("pool multiplier must be at least 1")
)
