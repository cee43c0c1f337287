// Package rng implements the deterministic randomness underneath a draw: a
// keyed byte stream, a bias-free integer sampler on top of it, and the
// Fisher-Yates shuffle both the server and any verifier run.
package rng

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strconv"
)

// BlockSize is the number of bytes each stream block yields (SHA-256 output).
const BlockSize = sha256.Size

// ErrInvalidKey is returned when a stream is constructed without key material.
var ErrInvalidKey = errors.New("rng: stream key must not be empty")

// Stream is a deterministic keyed byte generator. Block i is
// HMAC-SHA256(key, "shuffle:"+i), so the same key always reproduces the same
// byte sequence — the property third-party verification rests on. The only
// state is the counter: it starts at 0, advances by one per block, and is
// never reset.
type Stream struct {
	key     []byte
	counter uint64
}

// NewStream returns a stream keyed with the given secret.
func NewStream(key []byte) (*Stream, error) {
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Stream{key: k}, nil
}

// Block returns the next 32-byte block and advances the counter.
func (s *Stream) Block() []byte {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte("shuffle:" + strconv.FormatUint(s.counter, 10)))
	s.counter++
	return mac.Sum(nil)
}

// Counter returns how many blocks have been produced so far.
func (s *Stream) Counter() uint64 {
	return s.counter
}
