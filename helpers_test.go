package amsid

import (
	"crypto/rand"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// countingReader records how many bytes were drawn from crypto/rand.
type countingReader struct {
	mu    sync.Mutex
	bytes int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	r.bytes += len(p)
	r.mu.Unlock()

	return rand.Read(p)
}

func (r *countingReader) Bytes() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bytes
}

// byteSequence emits 0, 1, 2, ... 255, 0, 1, ...
type byteSequence struct {
	next byte
}

func (r *byteSequence) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.next
		r.next++
	}

	return len(p), nil
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) {
	return 0, errors.New("no entropy device") //nolint:goerr113
}

// useReader swaps the process-wide pool for one reading r until the test ends.
func useReader(t *testing.T, r io.Reader) {
	t.Helper()

	require.NoError(t, Configure(WithReader(r)))
	t.Cleanup(func() {
		require.NoError(t, Configure())
	})
}

// chiSquare returns the chi-square statistic of counts against a uniform distribution.
func chiSquare(counts map[rune]int, categories int) float64 {
	var total int
	for _, c := range counts {
		total += c
	}

	expected := float64(total) / float64(categories)

	var sum float64
	for _, c := range counts {
		d := float64(c) - expected
		sum += d * d / expected
	}

	// categories that never appeared
	sum += float64(categories-len(counts)) * expected

	return sum
}
