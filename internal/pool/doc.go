// Package pool keeps a buffer of cryptographically random bytes and hands out
// non-overlapping slices of it, so that many small ID requests share one read
// from the entropy source.
//
// The buffer is sized to Multiplier times the request that created it. When a
// request does not fit behind the cursor the whole buffer is re-randomized and
// the cursor starts over; when a request is larger than the buffer a new one
// is allocated. Bytes are copied out, so callers may keep them.
package pool
