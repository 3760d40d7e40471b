// Package entropy provides the byte sources the random pool reads from.
package entropy

import (
	"crypto/rand"
	"errors"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// ErrEmptySeed is returned when a seeded source is requested without a seed.
var ErrEmptySeed = errors.New("seed can not be empty")

// Secure returns the operating system CSPRNG.
func Secure() io.Reader {
	return rand.Reader
}

// Seeded returns a reproducible ChaCha20 keystream keyed by BLAKE2b-256(seed).
// Two sources built from the same seed produce the same bytes, so it is only
// meant for fixtures and tests, never for identifiers that must stay secret.
func Seeded(seed []byte) (io.Reader, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}

	key := blake2b.Sum256(seed)
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &keystream{cipher: c}, nil
}

type keystream struct {
	mu     sync.Mutex
	cipher *chacha20.Cipher
}

func (k *keystream) Read(p []byte) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	clear(p)
	k.cipher.XORKeyStream(p, p)

	return len(p), nil
}
