package klondike

import "github.com/lox/klondike/internal/deck"

// IsWon reports whether every foundation holds all 13 ranks of its suit
func IsWon(s State) bool {
	for _, f := range s.Foundations {
		if len(f) != int(deck.King) {
			return false
		}
	}
	return true
}

// IsWon reports whether the game is complete
func (s State) IsWon() bool {
	return IsWon(s)
}
