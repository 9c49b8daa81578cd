// Package autoplay plays Klondike games without a human, one legal move
// at a time, for simulations and for checking the rules engine under load.
package autoplay

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/klondike/internal/klondike"
)

// Policy chooses the next move for a state. It reports false when it has
// nothing worth playing.
type Policy interface {
	Name() string
	Next(s klondike.State) (klondike.Move, bool)
}

// Greedy always plays the move klondike.Hint ranks highest
type Greedy struct{}

// NewGreedy returns a greedy policy
func NewGreedy() *Greedy { return &Greedy{} }

func (*Greedy) Name() string { return "greedy" }

func (*Greedy) Next(s klondike.State) (klondike.Move, bool) {
	return klondike.Hint(s)
}

// Random picks uniformly among the legal moves that make progress
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (*Random) Name() string { return "random" }

func (r *Random) Next(s klondike.State) (klondike.Move, bool) {
	var useful []klondike.Move
	for _, m := range klondike.LegalMoves(s) {
		if klondike.HintScore(s, m) > 0 {
			useful = append(useful, m)
		}
	}
	if len(useful) == 0 {
		return klondike.Move{}, false
	}
	return useful[r.rng.IntN(len(useful))], true
}

// Policies lists the policy names NewPolicy accepts
var Policies = []string{"greedy", "random"}

// NewPolicy creates a policy by name. rng is only used by policies that
// need randomness.
func NewPolicy(name string, rng *rand.Rand) (Policy, error) {
	switch name {
	case "greedy", "":
		return NewGreedy(), nil
	case "random":
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (available: %v)", name, Policies)
	}
}
