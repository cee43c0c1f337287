package rng

import "github.com/moonveil/tarot-backend/internal/models"

// ShuffleCards returns an unbiased Fisher-Yates permutation of deck, driven
// by the sampler. The input is never mutated.
//
// The iteration direction and swap order are part of the wire contract: for
// i from n-1 down to 1, draw j = NextInt(i+1) and swap positions i and j.
// Changing either would change the permutation a given seed produces and
// break verification of past draws.
func ShuffleCards(deck []models.Card, sampler *Sampler) ([]models.Card, error) {
	shuffled := make([]models.Card, len(deck))
	copy(shuffled, deck)

	for i := len(shuffled) - 1; i >= 1; i-- {
		j, err := sampler.NextInt(i + 1)
		if err != nil {
			return nil, err
		}
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled, nil
}
