package klondike

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/klondike/internal/deck"
)

const (
	NumTableau     = 7
	NumFoundations = 4

	// DefaultDrawCount is used when no draw count is configured
	DefaultDrawCount = 3
)

// State is one snapshot of a game. The top of every pile is the last
// element of its slice.
type State struct {
	Stock       []deck.Card
	Waste       []deck.Card
	Foundations [NumFoundations][]deck.Card
	Tableau     [NumTableau][]deck.Card
	DrawCount   int
}

// Clone returns a deep copy that shares no backing arrays with s
func (s State) Clone() State {
	c := State{
		Stock:     slices.Clone(s.Stock),
		Waste:     slices.Clone(s.Waste),
		DrawCount: s.DrawCount,
	}
	for i := range s.Foundations {
		c.Foundations[i] = slices.Clone(s.Foundations[i])
	}
	for i := range s.Tableau {
		c.Tableau[i] = slices.Clone(s.Tableau[i])
	}
	return c
}

// ValidDrawCount reports whether n is a supported draw count (1 or 3)
func ValidDrawCount(n int) bool {
	return n == 1 || n == 3
}

// WithDrawCount returns a copy of s that draws n cards at a time. This is
// the settings-change boundary; nothing else alters the draw count.
func (s State) WithDrawCount(n int) (State, error) {
	if !ValidDrawCount(n) {
		return State{}, invariantf("draw count %d not in {1,3}", n)
	}
	next := s.Clone()
	next.DrawCount = n
	return next, nil
}

// VisibleWaste returns the active part of the waste: its last DrawCount
// cards, oldest first. Only the final one may be played.
func (s State) VisibleWaste() []deck.Card {
	n := min(s.drawCount(), len(s.Waste))
	return slices.Clone(s.Waste[len(s.Waste)-n:])
}

// CardCount returns the number of cards across every pile
func (s State) CardCount() int {
	n := len(s.Stock) + len(s.Waste)
	for _, f := range s.Foundations {
		n += len(f)
	}
	for _, t := range s.Tableau {
		n += len(t)
	}
	return n
}

// FoundationCount returns the number of cards on the foundations
func (s State) FoundationCount() int {
	n := 0
	for _, f := range s.Foundations {
		n += len(f)
	}
	return n
}

// FaceDownCount returns the number of hidden tableau cards
func (s State) FaceDownCount() int {
	n := 0
	for _, pile := range s.Tableau {
		for _, c := range pile {
			if !c.FaceUp {
				n++
			}
		}
	}
	return n
}

func (s State) drawCount() int {
	if s.DrawCount < 1 {
		return 1
	}
	return s.DrawCount
}

// Validate re-checks the data-model invariants: the full deck is present
// exactly once, foundations are same-suit runs from the ace, tableau tops
// are face-up with a valid face-up run above any hidden cards, the waste is
// face-up and the stock face-down.
func (s State) Validate() error {
	if !ValidDrawCount(s.DrawCount) {
		return invariantf("draw count %d not in {1,3}", s.DrawCount)
	}

	all := make([]deck.Card, 0, deck.Size)
	all = append(all, s.Stock...)
	all = append(all, s.Waste...)
	for _, f := range s.Foundations {
		all = append(all, f...)
	}
	for _, t := range s.Tableau {
		all = append(all, t...)
	}
	if !deck.IsComplete(all) {
		return invariantf("state holds %d cards, want each of the %d exactly once", len(all), deck.Size)
	}

	for i, c := range s.Stock {
		if c.FaceUp {
			return invariantf("stock card %d (%v) is face-up", i, c)
		}
	}
	for i, c := range s.Waste {
		if !c.FaceUp {
			return invariantf("waste card %d (%v) is face-down", i, c)
		}
	}

	for slot, pile := range s.Foundations {
		for i, c := range pile {
			if c.Rank != deck.Rank(i+1) || c.Suit != pile[0].Suit || !c.FaceUp {
				return invariantf("foundation %d position %d holds %v", slot, i, c)
			}
		}
	}

	for p, pile := range s.Tableau {
		if len(pile) == 0 {
			continue
		}
		if !pile[len(pile)-1].FaceUp {
			return invariantf("tableau %d top card is face-down", p)
		}
		first := faceUpStart(pile)
		for i := 0; i < first; i++ {
			if pile[i].FaceUp {
				return invariantf("tableau %d has face-up %v beneath hidden cards", p, pile[i])
			}
		}
		if !IsValidTail(pile, first) {
			return invariantf("tableau %d face-up run is out of sequence", p)
		}
	}
	return nil
}

// faceUpStart returns the index of the lowest card in the face-up run at
// the open end of pile, or len(pile) when none is face-up.
func faceUpStart(pile []deck.Card) int {
	i := len(pile)
	for i > 0 && pile[i-1].FaceUp {
		i--
	}
	return i
}

func top(pile []deck.Card) *deck.Card {
	if len(pile) == 0 {
		return nil
	}
	c := pile[len(pile)-1]
	return &c
}

// flipTop turns the last card of pile face-up in place
func flipTop(pile []deck.Card) {
	if len(pile) > 0 {
		pile[len(pile)-1].FaceUp = true
	}
}

// String renders the state as plain text, one pile per line
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stock: %d  waste: %s  draw: %d\n", len(s.Stock), formatPile(s.VisibleWaste()), s.DrawCount)
	for i, f := range s.Foundations {
		fmt.Fprintf(&b, "F%d: %s\n", i+1, formatPile(f))
	}
	for i, t := range s.Tableau {
		fmt.Fprintf(&b, "T%d: %s\n", i+1, formatPile(t))
	}
	return b.String()
}

func formatPile(pile []deck.Card) string {
	if len(pile) == 0 {
		return "--"
	}
	parts := make([]string, len(pile))
	for i, c := range pile {
		if c.FaceUp {
			parts[i] = c.String()
		} else {
			parts[i] = "##"
		}
	}
	return strings.Join(parts, " ")
}
