package game

import "github.com/mcdev12/flashcard/go/internal/models"

// RoundSize is the number of cards dealt per round.
const RoundSize = 4

// BeginRound shuffles the full catalog and deals the first RoundSize pairs as
// hidden, unflipped cards. The catalog must hold at least RoundSize pairs.
func BeginRound(pairs []models.CardPair, sh Shuffler) []models.CardView {
	shuffled := sh.Shuffle(pairs)

	cards := make([]models.CardView, 0, RoundSize)
	for _, p := range shuffled[:RoundSize] {
		cards = append(cards, models.NewCardView(p))
	}
	return cards
}
