package klondike

import (
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/randutil"
)

// up parses cards and turns them face-up
func up(s string) []deck.Card {
	cs := deck.MustParseCards(s)
	for i := range cs {
		cs[i].FaceUp = true
	}
	return cs
}

// down parses cards face-down
func down(s string) []deck.Card {
	return deck.MustParseCards(s)
}

func card(s string) deck.Card {
	return deck.MustParseCard(s).Up()
}

func join(parts ...[]deck.Card) []deck.Card {
	var out []deck.Card
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func dealSeed(seed int64, drawCount int) State {
	s, err := Deal(deck.NewDeck(randutil.New(seed)), drawCount)
	if err != nil {
		panic(err)
	}
	return s
}
