package game

import (
	"math/rand/v2"

	"github.com/mcdev12/flashcard/go/internal/models"
)

// Shuffler produces a random ordering of the catalog for a new round.
type Shuffler interface {
	Shuffle(pairs []models.CardPair) []models.CardPair
}

// RandomShuffler is a Fisher–Yates shuffler. A nil rng draws from the global source.
type RandomShuffler struct {
	rng *rand.Rand
}

func NewRandomShuffler(rng *rand.Rand) *RandomShuffler {
	return &RandomShuffler{rng: rng}
}

func (s *RandomShuffler) Shuffle(pairs []models.CardPair) []models.CardPair {
	return Shuffle(pairs, s.rng)
}

// Shuffle returns a uniformly random permutation of items. The input is never
// modified; nil stays nil.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	copy(out, items)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
