// Package draw composes the commitment ledger, session store and keyed
// shuffle into the two boundary operations: create-session and draw.
package draw

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moonveil/tarot-backend/internal/commit"
	"github.com/moonveil/tarot-backend/internal/models"
	"github.com/moonveil/tarot-backend/internal/rng"
	"github.com/moonveil/tarot-backend/internal/session"
)

// AlgorithmID names the exact construction a verifier must reproduce. The
// string is published with every result and must not change while old
// commitments are still being checked.
const AlgorithmID = "Fisher-Yates + HMAC_DRBG(SHA-256)"

var (
	// ErrInvalidSpread is returned for an unknown spread kind.
	ErrInvalidSpread = errors.New("draw: unknown spread kind")
	// ErrInvalidSelection is returned when chosen positions are out of
	// range, duplicated, or the wrong count for the spread.
	ErrInvalidSelection = errors.New("draw: invalid card selection")
	// ErrSessionNotFound is returned when a session is missing, expired, or
	// already consumed.
	ErrSessionNotFound = errors.New("draw: session not found")
	// ErrCommitmentMismatch is returned when a stored or revealed seed does
	// not re-hash to the published commitment. It signals tampering or
	// corruption and no cards are ever returned alongside it.
	ErrCommitmentMismatch = errors.New("draw: commitment hash mismatch")
)

// Orchestrator runs draws against an explicit session store.
type Orchestrator struct {
	store session.Store
}

// NewOrchestrator returns an orchestrator backed by the given store.
func NewOrchestrator(store session.Store) *Orchestrator {
	return &Orchestrator{store: store}
}

// CreateSession mints a seed and its commitment and persists the session.
// The commitment is stored before any client choice is accepted; the caller
// only ever sees the public fields until a draw reveals the seed.
func (o *Orchestrator) CreateSession(spread models.Spread) (models.Session, error) {
	if !spread.Valid() {
		return models.Session{}, ErrInvalidSpread
	}
	id := uuid.New().String()
	now := time.Now().UnixMilli()

	seed, hash, err := commit.Mint(id, now)
	if err != nil {
		return models.Session{}, err
	}
	s := models.Session{
		ID:         id,
		Seed:       seed,
		CommitHash: hash,
		CreatedAt:  now,
		Spread:     spread,
	}
	if err := o.store.Put(s); err != nil {
		return models.Session{}, fmt.Errorf("draw: failed to persist session: %w", err)
	}
	return s, nil
}

// Draw consumes the session and reveals its result. The session is removed
// atomically before the result is assembled, so two concurrent draws on one
// id cannot both succeed. Selection errors leave the session untouched for
// a retry; failures after consumption leave it deleted, never re-drawable.
func (o *Orchestrator) Draw(sessionID string, positions []int) (models.DrawResult, error) {
	if err := checkPositions(positions); err != nil {
		return models.DrawResult{}, err
	}

	// Count validation needs the spread, but must not consume the session.
	s, ok := o.store.Get(sessionID)
	if !ok {
		return models.DrawResult{}, ErrSessionNotFound
	}
	if len(positions) != s.Spread.CardCount() {
		return models.DrawResult{}, fmt.Errorf("%w: spread %q requires %d positions, got %d",
			ErrInvalidSelection, s.Spread, s.Spread.CardCount(), len(positions))
	}

	s, ok = o.store.Take(sessionID)
	if !ok {
		return models.DrawResult{}, ErrSessionNotFound
	}

	// The commitment must still re-verify at reveal time.
	if !commit.Verify(s.ID, s.CreatedAt, s.Seed, s.CommitHash) {
		return models.DrawResult{}, ErrCommitmentMismatch
	}

	cards, err := replay(s.Seed, s.Spread, positions)
	if err != nil {
		return models.DrawResult{}, err
	}
	return models.DrawResult{
		Cards:        cards,
		RevealedSeed: base64.StdEncoding.EncodeToString(s.Seed),
		CommitHash:   s.CommitHash,
		Timestamp:    s.CreatedAt,
		AlgorithmID:  AlgorithmID,
	}, nil
}

// SessionCount reports live sessions for the operator stats endpoint.
func (o *Orchestrator) SessionCount() int {
	return o.store.Len()
}

// checkPositions enforces the spread-independent selection rules: at least
// one position, all within the deck, no duplicates.
func checkPositions(positions []int) error {
	if len(positions) == 0 {
		return fmt.Errorf("%w: no positions chosen", ErrInvalidSelection)
	}
	seen := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p < 0 || p >= models.DeckSize {
			return fmt.Errorf("%w: position %d out of range", ErrInvalidSelection, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate position %d", ErrInvalidSelection, p)
		}
		seen[p] = true
	}
	return nil
}

// replay performs the deterministic part of a draw: shuffle the canonical
// deck with a sampler keyed by the seed, then walk the chosen positions in
// caller order, drawing exactly one orientation boolean per position,
// interleaved with the lookups. The entropy schedule is load-bearing:
// reordering the orientation draws would change results for deployed
// commitments.
func replay(seed []byte, spread models.Spread, positions []int) ([]models.DrawnCard, error) {
	stream, err := rng.NewStream(seed)
	if err != nil {
		return nil, err
	}
	sampler := rng.NewSampler(stream)

	shuffled, err := rng.ShuffleCards(models.FullDeck(), sampler)
	if err != nil {
		return nil, err
	}

	slots := spread.Slots()
	cards := make([]models.DrawnCard, 0, len(positions))
	for i, pos := range positions {
		card := shuffled[pos]
		upright, err := sampler.NextBool()
		if err != nil {
			return nil, err
		}
		orientation := models.OrientationReversed
		if upright {
			orientation = models.OrientationUpright
		}
		cards = append(cards, models.DrawnCard{
			Card:        card,
			Orientation: orientation,
			Position:    pos,
			Slot:        slots[i],
		})
	}
	return cards, nil
}
