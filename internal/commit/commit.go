// Package commit implements the commitment half of the commit-reveal
// protocol: the server publishes a hash binding it to a secret seed before
// the client makes any choice, and anyone can later check the revealed seed
// against that hash.
package commit

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/moonveil/tarot-backend/internal/models"
)

// Mint generates a fresh 32-byte secret seed from the OS entropy source and
// returns it with its commitment hash. The seed must come from crypto/rand,
// never from the replayable keyed stream, or the commitment would leak.
func Mint(sessionID string, timestamp int64) (seed []byte, commitHash string, err error) {
	seed = make([]byte, models.SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, "", fmt.Errorf("commit: failed to read seed from crypto/rand: %w", err)
	}
	return seed, Hash(sessionID, timestamp, seed), nil
}

// Hash computes the commitment digest:
// hex(SHA-256(sessionId || "||" || timestamp || "||" || base64(seed))).
// The preimage layout is fixed; deployed verifiers recompute it byte for
// byte.
func Hash(sessionID string, timestamp int64, seed []byte) string {
	preimage := sessionID + "||" + strconv.FormatInt(timestamp, 10) + "||" +
		base64.StdEncoding.EncodeToString(seed)
	sum := sha256.Sum256([]byte(preimage))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the commitment from the revealed seed and compares it
// against the published hash in constant time.
func Verify(sessionID string, timestamp int64, seed []byte, expectedHash string) bool {
	actual := Hash(sessionID, timestamp, seed)
	if len(actual) != len(expectedHash) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(actual), []byte(expectedHash)) == 1
}
