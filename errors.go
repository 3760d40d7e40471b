package amsid

import (
	"errors"

	"github.com/Scharfcsh/amsid/internal/pool"
)

var (
	// ErrInvalidSize is returned for negative sizes, or a non-positive default size.
	ErrInvalidSize = errors.New("invalid id size")

	// ErrEmptyAlphabet is returned when a custom generator is built without characters.
	ErrEmptyAlphabet = errors.New("alphabet can not be empty")

	// ErrAlphabetTooLong is returned when an alphabet has more characters than a byte can index.
	ErrAlphabetTooLong = errors.New("alphabet can not have more than 256 characters")

	// ErrNilRandom is returned when a custom generator is built without a byte source.
	ErrNilRandom = errors.New("random byte source can not be nil")

	// ErrShortRandom is returned when a byte source delivers fewer bytes than requested.
	ErrShortRandom = errors.New("random byte source returned too few bytes")

	// ErrInvalidOptions is returned when ComplexIDOptions fail validation.
	ErrInvalidOptions = errors.New("invalid complex id options")

	// ErrEntropyUnavailable is returned when the secure random source fails.
	ErrEntropyUnavailable = pool.ErrEntropyUnavailable
)
