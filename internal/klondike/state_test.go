package klondike

import (
	"strings"
	"testing"

	"github.com/lox/klondike/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDetectsBrokenStates(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*State)
	}{
		{"missing card", func(s *State) { s.Stock = s.Stock[1:] }},
		{"duplicate card", func(s *State) { s.Stock[0] = s.Stock[1] }},
		{"face-up stock", func(s *State) { s.Stock[0].FaceUp = true }},
		{"face-down waste", func(s *State) {
			s.Waste = []deck.Card{s.Stock[len(s.Stock)-1]}
			s.Stock = s.Stock[:len(s.Stock)-1]
		}},
		{"face-down tableau top", func(s *State) { s.Tableau[3][3].FaceUp = false }},
		{"face-up under face-down", func(s *State) { s.Tableau[3][1].FaceUp = true }},
		{"foundation not from ace", func(s *State) {
			c := s.Tableau[0][0]
			s.Tableau[0] = nil
			s.Foundations[0] = []deck.Card{c}
			if c.Rank == deck.Ace {
				s.Foundations[0][0].FaceUp = false
			}
		}},
		{"bad draw count", func(s *State) { s.DrawCount = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := dealSeed(21, 3)
			require.NoError(t, s.Validate())
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvariant)
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := dealSeed(4, 1)
	c := s.Clone()
	c.Tableau[6][0].FaceUp = true
	c.Stock[0] = deck.Card{}
	assert.False(t, s.Tableau[6][0].FaceUp)
	assert.False(t, s.Stock[0].IsZero())
}

func TestStateString(t *testing.T) {
	s := dealSeed(8, 3)
	out := s.String()
	assert.Contains(t, out, "stock: 24")
	assert.Contains(t, out, "F1: --")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+NumFoundations+NumTableau)
	assert.Equal(t, 6, strings.Count(lines[len(lines)-1], "##"), "T7 hides six cards")
}
