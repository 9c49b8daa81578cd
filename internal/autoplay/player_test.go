package autoplay

import (
	"context"
	"testing"

	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deal(t *testing.T, seed int64, drawCount int) klondike.State {
	t.Helper()
	s, err := klondike.Deal(deck.NewDeck(randutil.New(seed)), drawCount)
	require.NoError(t, err)
	return s
}

func suitRun(suit string, n int) []deck.Card {
	cards := make([]deck.Card, 0, n)
	for _, r := range "A23456789TJQK"[:n] {
		cards = append(cards, deck.MustParseCard(string(r)+suit).Up())
	}
	return cards
}

// oneMoveFromWin has every card home except the king of hearts
func oneMoveFromWin() klondike.State {
	var s klondike.State
	s.DrawCount = 3
	s.Foundations[0] = suitRun("h", 12)
	s.Foundations[1] = suitRun("d", 13)
	s.Foundations[2] = suitRun("c", 13)
	s.Foundations[3] = suitRun("s", 13)
	s.Tableau[4] = []deck.Card{deck.MustParseCard("Kh").Up()}
	return s
}

type drawOnly struct{}

func (drawOnly) Name() string { return "draw-only" }

func (drawOnly) Next(klondike.State) (klondike.Move, bool) { return klondike.DrawMove(), true }

type giveUp struct{}

func (giveUp) Name() string { return "give-up" }

func (giveUp) Next(klondike.State) (klondike.Move, bool) { return klondike.Move{}, false }

type illegal struct{}

func (illegal) Name() string { return "illegal" }

func (illegal) Next(klondike.State) (klondike.Move, bool) {
	return klondike.WasteToFoundationMove(0), true
}

func TestGreedyFinishesWinningPosition(t *testing.T) {
	s := oneMoveFromWin()
	require.NoError(t, s.Validate())

	res, err := Play(context.Background(), s, NewGreedy(), Options{Validate: true})
	require.NoError(t, err)
	assert.True(t, res.Won())
	assert.Equal(t, 1, res.Moves)
	assert.Equal(t, 52, res.Foundation)
	assert.True(t, res.Final.IsWon())
}

func TestPlayAlreadyWon(t *testing.T) {
	s := oneMoveFromWin()
	s, err := s.TableauToFoundation(4, 0)
	require.NoError(t, err)

	res, err := Play(context.Background(), s, giveUp{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, Won, res.Reason)
	assert.Zero(t, res.Moves)
}

func TestPlayStopsWhenPolicyGivesUp(t *testing.T) {
	res, err := Play(context.Background(), deal(t, 1, 3), giveUp{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, Stuck, res.Reason)
	assert.Zero(t, res.Moves)
}

func TestPlayDetectsDrawCycle(t *testing.T) {
	s := deal(t, 2, 3)
	res, err := Play(context.Background(), s, drawOnly{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, DrawCycle, res.Reason)
	// 24 cards in stock and waste: the cycle is declared after 26 idle draws
	assert.Equal(t, 26, res.Moves)
	assert.Equal(t, 26, res.Draws)
	assert.Equal(t, 52, res.Final.CardCount())
}

func TestPlayMoveLimit(t *testing.T) {
	res, err := Play(context.Background(), deal(t, 3, 1), drawOnly{}, Options{MaxMoves: 5})
	require.NoError(t, err)
	assert.Equal(t, MoveLimit, res.Reason)
	assert.Equal(t, 5, res.Moves)
}

func TestPlayReportsRejectedMoves(t *testing.T) {
	// a fresh deal has an empty waste, so the move is malformed
	_, err := Play(context.Background(), deal(t, 4, 3), illegal{}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, klondike.ErrInvariant)
	assert.Contains(t, err.Error(), "illegal played")
}

func TestPlayHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Play(ctx, deal(t, 5, 3), NewGreedy(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPoliciesKeepInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		for _, drawCount := range []int{1, 3} {
			policies := []Policy{NewGreedy(), NewRandom(randutil.New(seed))}
			for _, p := range policies {
				res, err := Play(context.Background(), deal(t, seed, drawCount), p, Options{Validate: true})
				require.NoError(t, err, "seed %d draw %d policy %s", seed, drawCount, p.Name())
				assert.Equal(t, res.Won(), res.Foundation == 52)
				assert.LessOrEqual(t, res.Moves, DefaultMaxMoves)
			}
		}
	}
}

func TestPlayIsReproducible(t *testing.T) {
	a, err := Play(context.Background(), deal(t, 42, 3), NewRandom(randutil.New(7)), Options{})
	require.NoError(t, err)
	b, err := Play(context.Background(), deal(t, 42, 3), NewRandom(randutil.New(7)), Options{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("", nil)
	require.NoError(t, err)
	assert.Equal(t, "greedy", p.Name())

	p, err = NewPolicy("random", randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, "random", p.Name())

	_, err = NewPolicy("psychic", nil)
	assert.ErrorContains(t, err, "unknown policy")
}

func TestStopReasonString(t *testing.T) {
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "draw-cycle", DrawCycle.String())
	assert.Equal(t, "StopReason(9)", StopReason(9).String())
}
