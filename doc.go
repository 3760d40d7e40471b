// Package amsid generates compact, URL-safe unique identifiers from a
// cryptographically secure random source.
//
// Random bytes come from a process-wide pool that reads the operating system
// CSPRNG in batches. Nanoid maps each byte onto the 64 character URLAlphabet
// with a 6 bit mask. CustomRandom builds generators for arbitrary alphabets:
// bytes are masked to the smallest power of two covering the alphabet and
// out of range values are rejected, so every character is equally likely.
//
//	id, err := amsid.Nanoid()        // 21 characters
//	gen, err := amsid.CustomAlphabet("0123456789abcdef", 16)
//	hex, err := gen()
//	c, err := amsid.GenerateComplexID(&amsid.ComplexIDOptions{Prefix: "usr"})
//	// c.ID == "usr_" + 12 characters + "." + 32 characters
package amsid
