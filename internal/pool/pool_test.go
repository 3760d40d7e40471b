package pool

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReader counts Read calls on top of crypto/rand.
type countingReader struct {
	mu    sync.Mutex
	reads int
	bytes int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	r.reads++
	r.bytes += len(p)
	r.mu.Unlock()

	return rand.Read(p)
}

// sequenceReader emits a stream of big endian uint32 counters 0, 1, 2, ...
type sequenceReader struct {
	pos uint64
}

func (r *sequenceReader) Read(p []byte) (int, error) {
	for i := range p {
		c := uint32(r.pos / 4)
		p[i] = byte(c >> (24 - 8*(r.pos%4)))
		r.pos++
	}

	return len(p), nil
}

// failingReader fails after `ok` successful reads.
type failingReader struct {
	ok int
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.ok <= 0 {
		return 0, errors.New("entropy device gone") //nolint:goerr113
	}

	r.ok--

	return rand.Read(p)
}

func TestTakeAllocatesAndReallocates(t *testing.T) {
	r := &countingReader{}
	p, err := New(WithReader(r))
	require.NoError(t, err)

	first, err := p.Take(21)
	require.NoError(t, err)
	assert.Len(t, first, 21)
	assert.Len(t, p.buf, 2688)
	assert.Equal(t, 21, p.offset)
	assert.Equal(t, p.buf[0:21], first)

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.Allocations)
	assert.Equal(t, 2688, stats.Capacity)
	assert.Equal(t, 1, r.reads)

	// 2700 does not fit into a 2688 byte buffer at all
	second, err := p.Take(2700)
	require.NoError(t, err)
	assert.Len(t, second, 2700)
	assert.Len(t, p.buf, 345600)
	assert.Equal(t, 2700, p.offset)

	stats = p.Stats()
	assert.Equal(t, uint64(2), stats.Allocations)
	assert.Equal(t, uint64(0), stats.Rerandomizations)
	assert.Equal(t, uint64(2721), stats.BytesServed)
	assert.Equal(t, 2, r.reads)
	assert.Equal(t, 2688+345600, r.bytes)
}

func TestTakeRerandomizesInPlace(t *testing.T) {
	r := &countingReader{}
	p, err := New(WithReader(r), WithMultiplier(2))
	require.NoError(t, err)

	_, err = p.Take(4)
	require.NoError(t, err)
	assert.Len(t, p.buf, 8)

	_, err = p.Take(4)
	require.NoError(t, err)
	assert.Equal(t, 8, p.offset)
	assert.Equal(t, 1, r.reads, "second take fits and must not refill")

	backing := &p.buf[0]

	_, err = p.Take(1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.offset)
	assert.Len(t, p.buf, 8)
	assert.Same(t, backing, &p.buf[0], "buffer must be reused")
	assert.Equal(t, 2, r.reads)

	stats := p.Stats()
	assert.Equal(t, uint64(1), stats.Allocations)
	assert.Equal(t, uint64(1), stats.Rerandomizations)
}

func TestTakeSequentialRangesDoNotOverlap(t *testing.T) {
	p, err := New(WithReader(&sequenceReader{}))
	require.NoError(t, err)

	a, err := p.Take(8)
	require.NoError(t, err)
	b, err := p.Take(8)
	require.NoError(t, err)

	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, a)
	assert.Equal(t, []byte{0, 0, 0, 2, 0, 0, 0, 3}, b)
}

func TestTakeReturnsCopy(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	out, err := p.Take(16)
	require.NoError(t, err)

	saved := bytes.Clone(p.buf[:16])
	for i := range out {
		out[i] = ^out[i]
	}

	assert.Equal(t, saved, p.buf[:16])
}

func TestTakeZero(t *testing.T) {
	r := &countingReader{}
	p, err := New(WithReader(r))
	require.NoError(t, err)

	out, err := p.Take(0)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 0, r.bytes)
}

func TestTakeErrors(t *testing.T) {
	testCases := []struct {
		name    string
		reader  io.Reader
		sizes   []int
		wantErr error
	}{
		{
			name:    "negative size",
			reader:  rand.Reader,
			sizes:   []int{-1},
			wantErr: ErrNegativeSize,
		},
		{
			name:    "overflowing size",
			reader:  rand.Reader,
			sizes:   []int{math.MaxInt / 2},
			wantErr: ErrSizeTooLarge,
		},
		{
			name:    "source fails on allocation",
			reader:  &failingReader{},
			sizes:   []int{21},
			wantErr: ErrEntropyUnavailable,
		},
		{
			name:    "source fails on rerandomize",
			reader:  &failingReader{ok: 1},
			sizes:   []int{21, 2688},
			wantErr: ErrEntropyUnavailable,
		},
		{
			name:    "short source",
			reader:  io.LimitReader(rand.Reader, 10),
			sizes:   []int{21},
			wantErr: ErrEntropyUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(WithReader(tc.reader))
			require.NoError(t, err)

			var lastErr error
			for _, n := range tc.sizes {
				_, lastErr = p.Take(n)
			}

			require.Error(t, lastErr)
			require.ErrorIs(t, lastErr, tc.wantErr)
			assert.Equal(t, 0, p.Stats().Capacity, "a failed refill must not leave bytes behind")
		})
	}
}

func TestNewInvalidMultiplier(t *testing.T) {
	_, err := New(WithMultiplier(0))
	require.ErrorIs(t, err, ErrInvalidMultiplier)
}

func TestTakeConcurrent(t *testing.T) {
	const (
		workers = 32
		takes   = 500
	)

	p, err := New(WithReader(&sequenceReader{}), WithMultiplier(16))
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[uint32]struct{}, workers*takes)
	)

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range takes {
				b, err := p.Take(4)
				if !assert.NoError(t, err) {
					return
				}

				mu.Lock()
				seen[binary.BigEndian.Uint32(b)] = struct{}{}
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// every 4 byte take is one counter of the sequence; any overlap would collapse two into one
	assert.Len(t, seen, workers*takes)
}
