package klondike

import (
	"slices"

	"github.com/lox/klondike/internal/deck"
)

// Deal lays out a new game from a 52-card deck. Cards are popped from the
// end of cards: pile i receives i+1 of them with only the last one face-up,
// and the remaining 24 become the face-down stock in their existing order.
// cards itself is not modified.
func Deal(cards []deck.Card, drawCount int) (State, error) {
	if !deck.IsComplete(cards) {
		return State{}, invariantf("deal needs each of the %d cards exactly once, got %d cards", deck.Size, len(cards))
	}
	if !ValidDrawCount(drawCount) {
		return State{}, invariantf("draw count %d not in {1,3}", drawCount)
	}

	stack := slices.Clone(cards)
	pop := func() deck.Card {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return c
	}

	s := State{DrawCount: drawCount}
	for i := range NumTableau {
		pile := make([]deck.Card, 0, i+1)
		for j := 0; j <= i; j++ {
			c := pop()
			c.FaceUp = j == i
			pile = append(pile, c)
		}
		s.Tableau[i] = pile
	}

	for i := range stack {
		stack[i].FaceUp = false
	}
	s.Stock = stack
	return s, nil
}
