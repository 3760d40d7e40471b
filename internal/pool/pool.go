package pool

import (
	"crypto/rand"
	"io"
	"math"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/Scharfcsh/amsid/internal/metrics"
)

// Multiplier is the default ratio between the pool size and the request that allocates it.
const Multiplier = 128

// Stats is a snapshot of the pool bookkeeping.
type Stats struct {
	Allocations      uint64 `json:"allocations"`      // buffer (re)allocations
	Rerandomizations uint64 `json:"rerandomizations"` // in place refills of an existing buffer
	BytesServed      uint64 `json:"bytesServed"`
	Capacity         int    `json:"capacity"`
	Offset           int    `json:"offset"`
}

// Pool amortizes reads from an entropy source across many small requests.
// A Pool is safe for concurrent use.
type Pool struct {
	mu         sync.Mutex
	buf        []byte
	offset     int
	multiplier int
	reader     io.Reader
	log        zerolog.Logger
	stats      Stats
}

// Option configures a Pool.
type Option func(*Pool)

// WithReader sets the entropy source. A nil reader keeps crypto/rand.
func WithReader(r io.Reader) Option {
	return func(p *Pool) {
		if r != nil {
			p.reader = r
		}
	}
}

// WithMultiplier sets the ratio between a newly allocated buffer and the request that caused it.
func WithMultiplier(m int) Option {
	return func(p *Pool) {
		p.multiplier = m
	}
}

// WithLogger sets the logger used for refill events. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pool) {
		p.log = l
	}
}

// New creates an empty pool. The buffer is allocated on the first Take.
func New(opts ...Option) (*Pool, error) {
	p := &Pool{
		multiplier: Multiplier,
		reader:     rand.Reader,
		log:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.multiplier < 1 {
		return nil, errors.Wrapf(ErrInvalidMultiplier, "got %d", p.multiplier)
	}

	return p, nil
}

// Take returns n fresh random bytes. The slice is a copy and stays valid across refills.
func (p *Pool) Take(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrNegativeSize, "take %d bytes", n)
	}

	if n > math.MaxInt/p.multiplier {
		return nil, errors.Wrapf(ErrSizeTooLarge, "take %d bytes", n)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.refill(n); err != nil {
		return nil, err
	}

	out := make([]byte, n)
	copy(out, p.buf[p.offset-n:p.offset])

	p.stats.BytesServed += uint64(n)
	metrics.PoolBytesServed(n)

	return out, nil
}

// refill makes room for n bytes behind the cursor and advances it.
// Must be called with p.mu held.
func (p *Pool) refill(n int) error {
	switch {
	case p.buf == nil || len(p.buf) < n:
		buf := make([]byte, n*p.multiplier)
		if err := p.fill(buf); err != nil {
			return err
		}

		p.buf = buf
		p.offset = 0
		p.stats.Allocations++
		metrics.PoolRefill(metrics.ReasonAllocate)

		p.log.Debug().Int("capacity", len(buf)).Int("request", n).Msg("random pool allocated")
	case p.offset+n > len(p.buf):
		if err := p.fill(p.buf); err != nil {
			// drop the partially overwritten buffer
			p.buf = nil
			p.offset = 0

			return err
		}

		p.offset = 0
		p.stats.Rerandomizations++
		metrics.PoolRefill(metrics.ReasonRerandomize)

		p.log.Trace().Int("capacity", len(p.buf)).Int("request", n).Msg("random pool re-randomized")
	}

	p.offset += n

	return nil
}

func (p *Pool) fill(buf []byte) error {
	if _, err := io.ReadFull(p.reader, buf); err != nil {
		p.log.Error().Err(err).Int("bytes", len(buf)).Msg("can't read from secure random source")

		return errors.Wrapf(ErrEntropyUnavailable, "read %d bytes: %v", len(buf), err)
	}

	return nil
}

// Stats returns a snapshot of the pool bookkeeping.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.stats
	s.Capacity = len(p.buf)
	s.Offset = p.offset

	return s
}

// Logger returns the logger the pool was configured with.
func (p *Pool) Logger() zerolog.Logger {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.log
}

// SetLogger replaces the logger used for refill events.
func (p *Pool) SetLogger(l zerolog.Logger) {
	p.mu.Lock()
	p.log = l
	p.mu.Unlock()
}
