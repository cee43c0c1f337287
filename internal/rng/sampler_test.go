package rng

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSampler(t *testing.T, key string) *Sampler {
	t.Helper()
	stream, err := NewStream([]byte(key))
	require.NoError(t, err)
	return NewSampler(stream)
}

func TestNextIntStaysInRange(t *testing.T) {
	s := newTestSampler(t, "range test key")
	for _, max := range []int{2, 3, 7, 78, 100, 256, 257, 1000} {
		for i := 0; i < 200; i++ {
			n, err := s.NextInt(max)
			require.NoError(t, err)
			require.GreaterOrEqual(t, n, 0)
			require.Less(t, n, max)
		}
	}
}

func TestNextIntTrivialBoundsConsumeNoEntropy(t *testing.T) {
	stream, err := NewStream([]byte("trivial"))
	require.NoError(t, err)
	s := NewSampler(stream)

	n, err := s.NextInt(1)
	require.NoError(t, err)
	require.Zero(t, n)
	require.EqualValues(t, 0, stream.Counter(), "max=1 must not advance the stream")

	_, err = s.NextInt(0)
	require.Error(t, err)
	_, err = s.NextInt(-5)
	require.Error(t, err)
	require.EqualValues(t, 0, stream.Counter())
}

func TestNextIntAdvancesCounterEveryDraw(t *testing.T) {
	stream, err := NewStream([]byte("counter"))
	require.NoError(t, err)
	s := NewSampler(stream)

	for i := 0; i < 500; i++ {
		before := stream.Counter()
		_, err := s.NextInt(78)
		require.NoError(t, err)
		require.Greater(t, stream.Counter(), before, "every draw must consume at least one block")
	}
}

func TestNextIntIsDeterministic(t *testing.T) {
	a := newTestSampler(t, "determinism key")
	b := newTestSampler(t, "determinism key")

	for i := 0; i < 1000; i++ {
		x, err := a.NextInt(78)
		require.NoError(t, err)
		y, err := b.NextInt(78)
		require.NoError(t, err)
		require.Equal(t, x, y, "draw %d diverged", i)
	}
}

func TestNextIntRejectsOversizedBounds(t *testing.T) {
	s := newTestSampler(t, "oversized")
	_, err := s.NextInt(1 << 60)
	require.ErrorIs(t, err, ErrMaxOutOfRange)
}

func TestNextBoolIsBalanced(t *testing.T) {
	seed := make([]byte, 32)
	_, err := rand.Read(seed)
	require.NoError(t, err)

	stream, err := NewStream(seed)
	require.NoError(t, err)
	s := NewSampler(stream)

	const draws = 10000
	ones := 0
	for i := 0; i < draws; i++ {
		b, err := s.NextBool()
		require.NoError(t, err)
		if b {
			ones++
		}
	}
	// 10k fair coin flips stay within 5 sigma (~250) of 5000.
	require.InDelta(t, draws/2, ones, 250)
}

// TestNextIntIsUniform runs a chi-square test over [0,78) to catch modulo
// bias: the naive "value % 78" construction fails this with a large margin.
func TestNextIntIsUniform(t *testing.T) {
	seed := make([]byte, 32)
	_, err := rand.Read(seed)
	require.NoError(t, err)

	stream, err := NewStream(seed)
	require.NoError(t, err)
	s := NewSampler(stream)

	const max = 78
	const draws = 78000
	counts := make([]int, max)
	for i := 0; i < draws; i++ {
		n, err := s.NextInt(max)
		require.NoError(t, err)
		counts[n]++
	}

	expected := float64(draws) / float64(max)
	chi2 := 0.0
	for _, c := range counts {
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	// 77 degrees of freedom: mean 77, stddev ~12.4. 160 is far beyond any
	// plausible statistical fluctuation for an unbiased sampler.
	require.Less(t, chi2, 160.0, "distribution over [0,78) is biased")
}
