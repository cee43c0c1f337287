package draw

import (
	"fmt"

	"github.com/moonveil/tarot-backend/internal/commit"
	"github.com/moonveil/tarot-backend/internal/models"
)

// Verify replays a revealed draw from its public fields alone. It is pure:
// no store, no clock, no side effects, so any third party can run it. On
// success it returns the reproduced cards, which must match the original
// result bit for bit. A commitment mismatch returns ErrCommitmentMismatch
// and no cards.
func Verify(sessionID string, timestamp int64, revealedSeed []byte, commitHash string, spread models.Spread, positions []int) ([]models.DrawnCard, error) {
	if !spread.Valid() {
		return nil, ErrInvalidSpread
	}
	if err := checkPositions(positions); err != nil {
		return nil, err
	}
	if len(positions) != spread.CardCount() {
		return nil, fmt.Errorf("%w: spread %q requires %d positions, got %d",
			ErrInvalidSelection, spread, spread.CardCount(), len(positions))
	}
	if !commit.Verify(sessionID, timestamp, revealedSeed, commitHash) {
		return nil, ErrCommitmentMismatch
	}
	return replay(revealedSeed, spread, positions)
}
