// Package klondike implements the rules of Klondike solitaire.
//
// The main type is State, a value holding the stock, waste, four foundations
// and seven tableau piles. Every transition is a method that returns a new
// State and leaves its receiver untouched, so callers keep history simply by
// holding on to earlier values.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	s, err := klondike.Deal(deck.NewDeck(rng), klondike.DefaultDrawCount)
//	if err != nil {
//	    return err
//	}
//	s = s.Draw()
//	next, err := s.WasteToFoundation(0)
//	switch {
//	case klondike.IsRejected(err):
//	    // illegal move, s is unchanged
//	case err != nil:
//	    // malformed input (bad index, empty source)
//	default:
//	    s = next
//	}
//	if s.IsWon() {
//	    // all four foundations hold 13 cards
//	}
//
// # Errors
//
// Transitions fail in exactly two ways. ErrRejected means the rules forbid the
// move; it is an ordinary outcome of play. ErrInvariant means the request
// itself was malformed, such as a pile index outside 0-6 or a move out of an
// empty pile. Both are checked before anything is copied, so a failed call
// never yields a partially applied state.
//
// # Moves
//
// Move is a tagged description of one transition and State.Apply dispatches
// it. LegalMoves enumerates every move the rules currently allow and Hint
// picks one of them.
package klondike
