package amsid

import (
	"github.com/Scharfcsh/amsid/internal/metrics"
)

// Nanoid returns a secure URL-safe identifier of DefaultSize characters, or
// of size characters when given. Nanoid(0) returns "" without drawing randomness.
// More than one size is rejected with ErrInvalidSize.
func Nanoid(size ...int) (string, error) {
	n, err := resolveSize(DefaultSize, size)
	if err != nil {
		return "", err
	}

	if n == 0 {
		return "", nil
	}

	b, err := currentPool().Take(n)
	if err != nil {
		return "", err
	}

	// 64 characters: the 6 bit mask is exact, no rejection needed
	id := make([]byte, n)
	for i := range id {
		id[i] = URLAlphabet[b[i]&urlMask]
	}

	metrics.IDGenerated(metrics.PathFast)

	return string(id), nil
}

// MustNanoid is like Nanoid but panics if the random source fails.
func MustNanoid(size ...int) string {
	id, err := Nanoid(size...)
	if err != nil {
		panic(err)
	}

	return id
}
