package draw

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/moonveil/tarot-backend/internal/models"
	"github.com/moonveil/tarot-backend/internal/session"
)

func revealedDraw(t *testing.T, spread models.Spread, positions []int) (models.Session, models.DrawResult, []byte) {
	t.Helper()
	st := session.NewMemoryStore(time.Minute)
	t.Cleanup(st.Close)
	o := NewOrchestrator(st)

	s, err := o.CreateSession(spread)
	require.NoError(t, err)
	result, err := o.Draw(s.ID, positions)
	require.NoError(t, err)
	seed, err := base64.StdEncoding.DecodeString(result.RevealedSeed)
	require.NoError(t, err)
	return s, result, seed
}

func TestVerifyReproducesDraw(t *testing.T) {
	s, result, seed := revealedDraw(t, models.SpreadThree, []int{12, 43, 7})

	cards, err := Verify(s.ID, result.Timestamp, seed, result.CommitHash,
		models.SpreadThree, []int{12, 43, 7})
	require.NoError(t, err)
	require.Equal(t, result.Cards, cards)
}

func TestVerifyRejectsTamperedSeed(t *testing.T) {
	s, result, seed := revealedDraw(t, models.SpreadSingle, []int{0})

	seed[5] ^= 0x40
	cards, err := Verify(s.ID, result.Timestamp, seed, result.CommitHash,
		models.SpreadSingle, []int{0})
	require.ErrorIs(t, err, ErrCommitmentMismatch)
	require.Nil(t, cards, "no cards may accompany a failed commitment")
}

func TestVerifyRejectsTamperedTimestamp(t *testing.T) {
	s, result, seed := revealedDraw(t, models.SpreadSingle, []int{33})

	_, err := Verify(s.ID, result.Timestamp+1, seed, result.CommitHash,
		models.SpreadSingle, []int{33})
	require.ErrorIs(t, err, ErrCommitmentMismatch)
}

func TestVerifyRejectsForeignSession(t *testing.T) {
	_, result, seed := revealedDraw(t, models.SpreadSingle, []int{33})

	_, err := Verify("4c3e89f2-93d1-41f0-8d8f-98e1a7b4a2c3", result.Timestamp, seed,
		result.CommitHash, models.SpreadSingle, []int{33})
	require.ErrorIs(t, err, ErrCommitmentMismatch)
}

func TestVerifyValidatesInput(t *testing.T) {
	s, result, seed := revealedDraw(t, models.SpreadThree, []int{1, 2, 3})

	_, err := Verify(s.ID, result.Timestamp, seed, result.CommitHash,
		models.Spread("bogus"), []int{1, 2, 3})
	require.ErrorIs(t, err, ErrInvalidSpread)

	_, err = Verify(s.ID, result.Timestamp, seed, result.CommitHash,
		models.SpreadThree, []int{1, 2})
	require.ErrorIs(t, err, ErrInvalidSelection)

	_, err = Verify(s.ID, result.Timestamp, seed, result.CommitHash,
		models.SpreadThree, []int{1, 1, 2})
	require.ErrorIs(t, err, ErrInvalidSelection)
}
