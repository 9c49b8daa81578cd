package deck

import rand "math/rand/v2"

// Size is the number of cards in a standard deck
const Size = 52

// Source is the randomness a shuffle draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests pass a seeded one from randutil.
type Source interface {
	IntN(n int) int
}

// Standard returns the 52 cards in suit-major order, all face-down
func Standard() []Card {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewDeck creates a new standard 52-card deck in uniformly random order.
// A nil rng uses the process-wide generator.
func NewDeck(rng Source) []Card {
	cards := Standard()
	Shuffle(cards, rng)
	return cards
}

// Shuffle permutes cards in place using Fisher-Yates, swapping each index i
// (last to first) with a uniform index in [0, i].
func Shuffle(cards []Card, rng Source) {
	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// IsComplete reports whether cards holds each of the 52 cards exactly once
func IsComplete(cards []Card) bool {
	if len(cards) != Size {
		return false
	}
	var seen [Size]bool
	for _, c := range cards {
		if !c.Valid() || seen[c.Index()] {
			return false
		}
		seen[c.Index()] = true
	}
	return true
}
