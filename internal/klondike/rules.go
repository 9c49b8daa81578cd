package klondike

import "github.com/lox/klondike/internal/deck"

// CanAddToFoundation reports whether card may be placed on pile: an ace on
// an empty pile, otherwise the next rank of the top card's suit.
func CanAddToFoundation(card deck.Card, pile []deck.Card) bool {
	t := top(pile)
	if t == nil {
		return card.Rank == deck.Ace
	}
	return card.Suit == t.Suit && card.Rank == t.Rank+1
}

// CanAddToTableau reports whether card may be placed on target: a king on
// an empty pile (nil target), otherwise one rank lower and opposite colour.
func CanAddToTableau(card deck.Card, target *deck.Card) bool {
	if target == nil {
		return card.Rank == deck.King
	}
	return target.Rank == card.Rank+1 && target.Color() != card.Color()
}

// CanMoveToAnyFoundation returns the lowest foundation slot that accepts card
func CanMoveToAnyFoundation(card deck.Card, foundations [NumFoundations][]deck.Card) (int, bool) {
	for i, pile := range foundations {
		if CanAddToFoundation(card, pile) {
			return i, true
		}
	}
	return 0, false
}

// FoundationSuit returns the suit a foundation pile has committed to.
// Empty piles have no suit yet.
func FoundationSuit(pile []deck.Card) (deck.Suit, bool) {
	if len(pile) == 0 {
		return 0, false
	}
	return pile[0].Suit, true
}

// IsValidTail reports whether pile[position:] is a non-empty face-up run in
// which every card is one rank below and opposite in colour to the card it
// rests on.
func IsValidTail(pile []deck.Card, position int) bool {
	if position < 0 || position >= len(pile) {
		return false
	}
	for i := position; i < len(pile); i++ {
		if !pile[i].FaceUp {
			return false
		}
		if i > position && !CanAddToTableau(pile[i], &pile[i-1]) {
			return false
		}
	}
	return true
}

// CanMoveTail reports whether pile[position:] may move as a unit onto a
// pile whose top card is target (nil for an empty pile).
func CanMoveTail(pile []deck.Card, position int, target *deck.Card) bool {
	return IsValidTail(pile, position) && CanAddToTableau(pile[position], target)
}
