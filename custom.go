package amsid

import (
	"math"
	"math/bits"

	"github.com/pkg/errors"

	"github.com/Scharfcsh/amsid/internal/metrics"
)

// RandomFunc returns size random bytes.
type RandomFunc func(size int) ([]byte, error)

// Generator returns an identifier of its default size, or of size characters when given.
// More than one size is rejected with ErrInvalidSize.
type Generator func(size ...int) (string, error)

// oversampling makes one batch of step bytes enough for defaultSize characters
// in almost every call, despite rejected bytes.
const oversampling = 1.6

// coder maps random bytes onto an alphabet without modulo bias.
type coder struct {
	chars []rune
	mask  byte
	step  int
}

func newCoder(alphabet string, defaultSize int) (*coder, error) {
	chars := []rune(alphabet)

	switch {
	case len(chars) == 0:
		return nil, ErrEmptyAlphabet
	case len(chars) > MaxAlphabetLen:
		return nil, errors.Wrapf(ErrAlphabetTooLong, "got %d characters", len(chars))
	case defaultSize <= 0:
		return nil, errors.Wrapf(ErrInvalidSize, "default size %d", defaultSize)
	}

	mask := alphabetMask(len(chars))

	return &coder{
		chars: chars,
		mask:  mask,
		step:  batchStep(mask, defaultSize, len(chars)),
	}, nil
}

// alphabetMask returns the smallest 2^k-1 that is >= n-1.
func alphabetMask(n int) byte {
	return byte((1 << bits.Len(uint(n-1)|1)) - 1)
}

// batchStep is the number of bytes drawn per batch.
func batchStep(mask byte, defaultSize, n int) int {
	return int(math.Ceil(oversampling * float64(mask) * float64(defaultSize) / float64(n)))
}

// accept returns the character for b, or false when the masked value falls outside the alphabet.
func (c *coder) accept(b byte) (rune, bool) {
	i := int(b & c.mask)
	if i >= len(c.chars) {
		return 0, false
	}

	return c.chars[i], true
}

// expectedBatches is the number of batches a call of size characters needs on average.
func (c *coder) expectedBatches(size int) int {
	perBatch := float64(c.step) * float64(len(c.chars)) / float64(int(c.mask)+1)

	return int(math.Ceil(float64(size) / perBatch))
}

// CustomRandom returns a generator of IDs over alphabet, drawing bytes from random.
//
// Bytes are masked to the smallest power of two covering the alphabet and
// values past its end are rejected. Batches are drawn until size characters
// are accepted; there is no retry limit.
func CustomRandom(alphabet string, defaultSize int, random RandomFunc) (Generator, error) {
	c, err := newCoder(alphabet, defaultSize)
	if err != nil {
		return nil, err
	}

	if random == nil {
		return nil, ErrNilRandom
	}

	return func(size ...int) (string, error) {
		n, err := resolveSize(defaultSize, size)
		if err != nil {
			return "", err
		}

		if n == 0 {
			return "", nil
		}

		id := make([]rune, 0, n)
		warnAfter := 8*c.expectedBatches(n) + 8

		for batch := 1; ; batch++ {
			b, err := random(c.step)
			if err != nil {
				return "", errors.Wrap(err, "read random batch")
			}

			if len(b) < c.step {
				return "", errors.Wrapf(ErrShortRandom, "got %d of %d bytes", len(b), c.step)
			}

			metrics.CustomBatch()

			for i := c.step - 1; i >= 0; i-- {
				r, ok := c.accept(b[i])
				if !ok {
					continue
				}

				id = append(id, r)
				if len(id) == n {
					metrics.IDGenerated(metrics.PathCustom)

					return string(id), nil
				}
			}

			if batch == warnAfter {
				log := currentPool().Logger()
				log.Warn().
					Int("batches", batch).
					Int("size", n).
					Int("step", c.step).
					Int("alphabet", len(c.chars)).
					Msg("rejection sampling needs unusually many batches, check the random source")
			}
		}
	}, nil
}

// CustomAlphabet returns a generator of IDs over alphabet backed by the secure random pool.
func CustomAlphabet(alphabet string, defaultSize int) (Generator, error) {
	return CustomRandom(alphabet, defaultSize, RandomBytes)
}
