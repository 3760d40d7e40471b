package amsid

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Scharfcsh/amsid/internal/pool"
)

// Option configures the process-wide random pool.
type Option = pool.Option

// Stats is a snapshot of the process-wide random pool.
type Stats = pool.Stats

var (
	poolMu      sync.RWMutex //nolint:gochecknoglobals
	defaultPool = mustPool() //nolint:gochecknoglobals
)

func mustPool(opts ...Option) *pool.Pool {
	p, err := pool.New(opts...)
	if err != nil {
		panic(err)
	}

	return p
}

func currentPool() *pool.Pool {
	poolMu.RLock()
	defer poolMu.RUnlock()

	return defaultPool
}

// WithReader makes the pool read from r instead of crypto/rand.
// Only use a non-cryptographic reader for tests and fixtures.
func WithReader(r io.Reader) Option {
	return pool.WithReader(r)
}

// WithMultiplier sets how many times a request the pool allocates at once (default 128).
func WithMultiplier(m int) Option {
	return pool.WithMultiplier(m)
}

// WithLogger sets the logger for pool and generator events. The default discards them.
func WithLogger(l zerolog.Logger) Option {
	return pool.WithLogger(l)
}

// Configure replaces the process-wide pool with a fresh one built from opts.
// Configure() without options restores the defaults.
func Configure(opts ...Option) error {
	p, err := pool.New(opts...)
	if err != nil {
		return err
	}

	poolMu.Lock()
	defaultPool = p
	poolMu.Unlock()

	return nil
}

// SetLogger replaces the logger of the process-wide pool, keeping its bytes and source.
func SetLogger(l zerolog.Logger) {
	currentPool().SetLogger(l)
}

// PoolStats returns a snapshot of the process-wide pool.
func PoolStats() Stats {
	return currentPool().Stats()
}

// RandomBytes returns size bytes from the secure random pool.
func RandomBytes(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "random bytes size %d", size)
	}

	return currentPool().Take(size)
}

// resolveSize picks the caller size over def and rejects negative values
// and more than one size.
func resolveSize(def int, size []int) (int, error) {
	switch len(size) {
	case 0:
		return def, nil
	case 1:
	default:
		return 0, errors.Wrapf(ErrInvalidSize, "expected at most one size, got %d", len(size))
	}

	if size[0] < 0 {
		return 0, errors.Wrapf(ErrInvalidSize, "size %d", size[0])
	}

	return size[0], nil
}
