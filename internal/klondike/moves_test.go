package klondike

import (
	"testing"

	"github.com/lox/klondike/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawMovesUpToDrawCount(t *testing.T) {
	s := State{Stock: down("9c 2h 3h 4h"), DrawCount: 3}

	next := s.Draw()
	require.Len(t, next.Stock, 1)
	require.Len(t, next.Waste, 3)
	// 4h was on top so it is taken first and lands deepest.
	assert.Equal(t, up("4h 3h 2h"), next.Waste)
	assert.Equal(t, down("9c"), next.Stock)
}

func TestDrawShortStock(t *testing.T) {
	s := State{Stock: down("2h 3h"), Waste: up("Kc"), DrawCount: 3}

	next := s.Draw()
	assert.Empty(t, next.Stock)
	assert.Equal(t, up("Kc 3h 2h"), next.Waste)
}

func TestDrawOne(t *testing.T) {
	s := State{Stock: down("2h 3h"), DrawCount: 1}
	next := s.Draw()
	assert.Equal(t, down("2h"), next.Stock)
	assert.Equal(t, up("3h"), next.Waste)
}

func TestDrawRecyclesWaste(t *testing.T) {
	s := State{Waste: up("4c 5c 6c"), DrawCount: 3}

	next := s.Draw()
	assert.Empty(t, next.Waste)
	assert.Equal(t, down("6c 5c 4c"), next.Stock)
	for _, c := range next.Stock {
		assert.False(t, c.FaceUp)
	}

	// Recycling does not draw; the next draw takes the oldest waste card first.
	again := next.Draw()
	assert.Equal(t, up("4c 5c 6c"), again.Waste)
}

func TestDrawBothEmptyIsNoop(t *testing.T) {
	s := State{DrawCount: 1}
	next := s.Draw()
	assert.Empty(t, next.Stock)
	assert.Empty(t, next.Waste)
}

func TestDrawLeavesInputUntouched(t *testing.T) {
	s := dealSeed(3, 3)
	before := s.Clone()
	_ = s.Draw()
	assert.Equal(t, before, s)
}

func TestVisibleWaste(t *testing.T) {
	s := State{Waste: up("2c 3c 4c 5c"), DrawCount: 3}
	assert.Equal(t, up("3c 4c 5c"), s.VisibleWaste())

	s.DrawCount = 1
	assert.Equal(t, up("5c"), s.VisibleWaste())

	s.Waste = nil
	assert.Empty(t, s.VisibleWaste())
}

func TestWasteToFoundation(t *testing.T) {
	s := State{Waste: up("5d Ac"), DrawCount: 1}

	next, err := s.WasteToFoundation(2)
	require.NoError(t, err)
	assert.Equal(t, up("5d"), next.Waste)
	assert.Equal(t, up("Ac"), next.Foundations[2])

	_, err = next.WasteToFoundation(2)
	assert.True(t, IsRejected(err), "5d on Ac")
	assert.ErrorIs(t, err, ErrRejected)
	assert.NotErrorIs(t, err, ErrInvariant)

	_, err = s.WasteToFoundation(4)
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = (State{DrawCount: 1}).WasteToFoundation(0)
	assert.ErrorIs(t, err, ErrInvariant, "empty waste")
}

func TestTableauToFoundationFlipsNewTop(t *testing.T) {
	var s State
	s.DrawCount = 3
	s.Tableau[4] = join(down("9d Qs"), up("Ah"))
	s.Foundations[1] = nil

	next, err := s.TableauToFoundation(4, 1)
	require.NoError(t, err)
	assert.Equal(t, up("Ah"), next.Foundations[1])
	require.Len(t, next.Tableau[4], 2)
	assert.True(t, next.Tableau[4][1].FaceUp, "uncovered card turns face-up")
	assert.False(t, next.Tableau[4][0].FaceUp)

	// Original is untouched.
	assert.False(t, s.Tableau[4][1].FaceUp)
	assert.Len(t, s.Tableau[4], 3)
}

func TestTableauToFoundationEmptiesPile(t *testing.T) {
	var s State
	s.Tableau[0] = up("2s")
	s.Foundations[3] = up("As")

	next, err := s.TableauToFoundation(0, 3)
	require.NoError(t, err)
	assert.Empty(t, next.Tableau[0])
	assert.Equal(t, up("As 2s"), next.Foundations[3])
}

func TestTableauToFoundationErrors(t *testing.T) {
	var s State
	s.Tableau[0] = up("2s")
	s.Tableau[1] = down("Ah")

	_, err := s.TableauToFoundation(0, 0)
	assert.True(t, IsRejected(err))

	_, err = s.TableauToFoundation(2, 0)
	assert.ErrorIs(t, err, ErrInvariant, "empty pile")

	_, err = s.TableauToFoundation(1, 0)
	assert.ErrorIs(t, err, ErrInvariant, "face-down top")

	_, err = s.TableauToFoundation(7, 0)
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = s.TableauToFoundation(-1, 0)
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = s.TableauToFoundation(0, -1)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestMoveWasteToTableau(t *testing.T) {
	var s State
	s.Waste = up("3c 5h")
	s.Tableau[2] = join(down("2d"), up("6s"))
	s.Tableau[3] = up("6d")

	next, err := s.MoveToTableau(WasteSource(), 2)
	require.NoError(t, err)
	assert.Equal(t, up("3c"), next.Waste)
	assert.Equal(t, join(down("2d"), up("6s 5h")), next.Tableau[2])

	_, err = s.MoveToTableau(WasteSource(), 3)
	assert.True(t, IsRejected(err), "5h on 6d is same colour")

	_, err = s.MoveToTableau(WasteSource(), 0)
	assert.True(t, IsRejected(err), "5h on an empty pile")
}

func TestMoveTailToTableau(t *testing.T) {
	var s State
	s.Tableau[0] = join(down("Kd 2c"), up("9s 8h 7c"))
	s.Tableau[1] = up("Th")

	next, err := s.MoveToTableau(TableauSource(0, 2), 1)
	require.NoError(t, err)

	assert.Equal(t, up("Th 9s 8h 7c"), next.Tableau[1], "tail keeps its order")
	assert.Equal(t, join(down("Kd"), up("2c")), next.Tableau[0], "prefix stays with new top face-up")

	// Partial tails move too.
	var s2 State
	s2.Tableau[0] = up("9s 8h 7c")
	s2.Tableau[5] = up("9c")
	next, err = s2.MoveToTableau(TableauSource(0, 1), 5)
	require.NoError(t, err)
	assert.Equal(t, up("9s"), next.Tableau[0])
	assert.Equal(t, []deck.Card{card("9c"), card("8h"), card("7c")}, next.Tableau[5])
}

func TestMoveKingToEmptyPile(t *testing.T) {
	var s State
	s.Tableau[6] = join(down("3h"), up("Kc Qh"))

	next, err := s.MoveToTableau(TableauSource(6, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, up("Kc Qh"), next.Tableau[0])
	assert.Equal(t, up("3h"), next.Tableau[6])

	_, err = s.MoveToTableau(TableauSource(6, 2), 0)
	assert.True(t, IsRejected(err), "queen cannot fill an empty pile")
}

func TestMoveToTableauErrors(t *testing.T) {
	var s State
	s.Tableau[0] = join(down("Kd"), up("9s 8h"))
	s.Tableau[1] = up("Th")
	s.Tableau[2] = up("9c 8c")

	tests := []struct {
		name     string
		src      Source
		dest     int
		rejected bool
	}{
		{"destination out of range", TableauSource(0, 1), 7, false},
		{"source pile out of range", TableauSource(9, 0), 1, false},
		{"position past the end", TableauSource(0, 3), 1, false},
		{"negative position", TableauSource(0, -2), 1, false},
		{"face-down position", TableauSource(0, 0), 1, false},
		{"empty source pile", TableauSource(3, 0), 1, false},
		{"empty waste", WasteSource(), 1, false},
		{"broken run", TableauSource(2, 0), 1, false},
		{"card mismatch", TableauSource(0, 1).WithCard(card("9c")), 1, false},
		{"onto itself", TableauSource(0, 2), 0, true},
		{"rank gap", TableauSource(2, 1), 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Clone()
			_, err := s.MoveToTableau(tt.src, tt.dest)
			require.Error(t, err)
			if tt.rejected {
				assert.ErrorIs(t, err, ErrRejected)
			} else {
				assert.ErrorIs(t, err, ErrInvariant)
			}
			assert.Equal(t, before, s)
		})
	}
}

func TestMoveCardCheck(t *testing.T) {
	var s State
	s.Tableau[0] = up("9s")
	s.Tableau[1] = up("Th")

	_, err := s.MoveToTableau(TableauTop(0).WithCard(card("9s")), 1)
	require.NoError(t, err)

	s.Waste = up("Ah")
	before := s.Clone()

	_, err = s.Apply(Move{Kind: KindWasteToFoundation, From: WasteSource().WithCard(card("Ks")), To: 0})
	assert.ErrorIs(t, err, ErrInvariant, "stale waste card")
	_, err = s.Apply(Move{Kind: KindWasteToFoundation, From: TableauTop(0), To: 0})
	assert.ErrorIs(t, err, ErrInvariant, "wrong source kind")
	assert.Equal(t, before, s)

	next, err := s.Apply(Move{Kind: KindWasteToFoundation, From: WasteSource().WithCard(card("Ah")), To: 0})
	require.NoError(t, err)
	assert.Equal(t, up("Ah"), next.Foundations[0])
}

func TestAutoMove(t *testing.T) {
	var s State
	s.DrawCount = 1
	s.Waste = up("Ad")
	s.Tableau[3] = join(down("Jc"), up("2d"))
	s.Foundations[1] = up("Ah")

	next, slot, err := s.AutoMove(WasteSource())
	require.NoError(t, err)
	assert.Equal(t, 0, slot, "lowest empty slot")
	assert.Equal(t, up("Ad"), next.Foundations[0])

	next, slot, err = next.AutoMove(TableauTop(3))
	require.NoError(t, err)
	assert.Equal(t, 0, slot)
	assert.Equal(t, up("Ad 2d"), next.Foundations[0])
	assert.True(t, next.Tableau[3][0].FaceUp)

	_, _, err = next.AutoMove(TableauTop(3))
	assert.True(t, IsRejected(err), "Jc has nowhere to go")

	var tail State
	tail.Tableau[0] = up("3s 2h")
	tail.Foundations[0] = up("As 2s")
	_, _, err = tail.AutoMove(TableauSource(0, 0))
	assert.True(t, IsRejected(err), "two cards cannot go to a foundation")
}

func TestWithDrawCount(t *testing.T) {
	s := dealSeed(11, 3)
	next, err := s.WithDrawCount(1)
	require.NoError(t, err)
	assert.Equal(t, 1, next.DrawCount)
	assert.Equal(t, 3, s.DrawCount)

	_, err = s.WithDrawCount(2)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestTransitionsDoNotAliasSnapshots(t *testing.T) {
	var s State
	s.DrawCount = 1
	s.Waste = make([]deck.Card, 0, 8)
	s.Waste = append(s.Waste, up("Kh Ac")...)
	s.Tableau[0] = make([]deck.Card, 0, 8)
	s.Tableau[0] = append(s.Tableau[0], up("Qs")...)

	next, err := s.WasteToFoundation(0)
	require.NoError(t, err)
	// Appending to the successor must not show through the spare capacity
	// of the original.
	next.Waste = append(next.Waste, card("2c"))
	assert.Equal(t, up("Kh Ac"), s.Waste)

	_, err = next.MoveToTableau(WasteSource(), 1)
	assert.True(t, IsRejected(err))

	recycled := s.Draw()
	assert.Equal(t, down("Ac Kh"), recycled.Stock)
	assert.Equal(t, up("Kh Ac"), s.Waste)
}
