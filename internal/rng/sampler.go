package rng

import (
	"errors"
	"math/bits"
)

// ErrMaxOutOfRange is returned when a bound cannot be sampled without
// overflowing the stream's integer range.
var ErrMaxOutOfRange = errors.New("rng: max exceeds sampler integer range")

// maxSampleBytes caps the big-endian value read per draw at 7 bytes so it
// always fits in a uint64 (256^7 < 2^63).
const maxSampleBytes = 7

// Sampler draws uniform integers from a Stream using rejection sampling, so
// results carry no modulo bias. Every draw, accepted or rejected, consumes
// exactly one stream block; a verifier replaying the stream must replay
// rejections too, in order.
type Sampler struct {
	stream *Stream
}

// NewSampler wraps a keyed stream.
func NewSampler(stream *Stream) *Sampler {
	return &Sampler{stream: stream}
}

// NextInt returns a uniform integer in [0, max). For max <= 1 it returns 0
// without consuming any entropy.
//
// The construction mirrors the deployed verifier exactly: read the minimum
// b = ceil(log2(max)/8) bytes of a block as a big-endian value v, accept iff
// v < floor(256^b/max)*max, otherwise discard the whole block and try the
// next one.
func (s *Sampler) NextInt(max int) (int, error) {
	if max <= 1 {
		if max < 1 {
			return 0, errors.New("rng: max must be a positive integer")
		}
		return 0, nil
	}

	bytesNeeded := (bits.Len(uint(max-1)) + 7) / 8
	if bytesNeeded > maxSampleBytes {
		return 0, ErrMaxOutOfRange
	}
	maxValue := uint64(1) << (8 * uint(bytesNeeded))
	threshold := maxValue - maxValue%uint64(max)

	for {
		block := s.stream.Block()
		var v uint64
		for i := 0; i < bytesNeeded; i++ {
			v = v<<8 | uint64(block[i])
		}
		if v < threshold {
			return int(v % uint64(max)), nil
		}
	}
}

// NextBool returns a uniform boolean, consuming one NextInt(2) draw.
func (s *Sampler) NextBool() (bool, error) {
	n, err := s.NextInt(2)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
