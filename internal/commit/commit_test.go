package commit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/moonveil/tarot-backend/internal/models"
)

func TestMintProducesVerifiableCommitment(t *testing.T) {
	seed, hash, err := Mint("session-1", 1690000000000)
	require.NoError(t, err)
	require.Len(t, seed, models.SeedSize)
	require.Len(t, hash, 64) // hex SHA-256

	require.True(t, Verify("session-1", 1690000000000, seed, hash))
}

func TestMintNeverReusesSeeds(t *testing.T) {
	a, _, err := Mint("s", 1)
	require.NoError(t, err)
	b, _, err := Mint("s", 1)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyRejectsTampering(t *testing.T) {
	const (
		sessionID = "8e7a6a40-1db5-4a9c-9f5e-2b8f3a1c0d9e"
		timestamp = int64(1690000000000)
	)
	seed, hash, err := Mint(sessionID, timestamp)
	require.NoError(t, err)

	// Flip one byte of the seed.
	bad := make([]byte, len(seed))
	copy(bad, seed)
	bad[0] ^= 0x01
	require.False(t, Verify(sessionID, timestamp, bad, hash))

	// Wrong session id.
	require.False(t, Verify(sessionID+"x", timestamp, seed, hash))

	// Wrong timestamp.
	require.False(t, Verify(sessionID, timestamp+1, seed, hash))

	// Wrong hash.
	require.False(t, Verify(sessionID, timestamp, seed, hash[:63]+"0"))
	require.True(t, Verify(sessionID, timestamp, seed, hash))
}

func TestHashIsStableForFixedInputs(t *testing.T) {
	seed := make([]byte, models.SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	first := Hash("fixed-session", 1234567890123, seed)
	second := Hash("fixed-session", 1234567890123, seed)
	require.Equal(t, first, second)
	require.NotEqual(t, first, Hash("fixed-session", 1234567890124, seed))
}
