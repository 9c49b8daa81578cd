package klondike

import (
	"fmt"

	"github.com/lox/klondike/internal/deck"
)

// SourceKind identifies where a moving card comes from
type SourceKind int

const (
	FromWaste SourceKind = iota
	FromTableau
)

func (k SourceKind) String() string {
	switch k {
	case FromWaste:
		return "waste"
	case FromTableau:
		return "tableau"
	default:
		return "unknown"
	}
}

// TopPosition names the top card of a tableau pile, whatever its height
const TopPosition = -1

// Source locates the card (or tail) a move takes. For tableau sources
// Position is the index within the pile where the moving tail begins, or
// TopPosition. Card, when non-zero, must match the card found there.
type Source struct {
	Kind     SourceKind
	Pile     int
	Position int
	Card     deck.Card
}

// WasteSource names the top card of the waste
func WasteSource() Source {
	return Source{Kind: FromWaste}
}

// TableauSource names the tail of pile starting at position
func TableauSource(pile, position int) Source {
	return Source{Kind: FromTableau, Pile: pile, Position: position}
}

// TableauTop names the top card of pile
func TableauTop(pile int) Source {
	return Source{Kind: FromTableau, Pile: pile, Position: TopPosition}
}

// WithCard returns a copy of src that also asserts which card it names
func (src Source) WithCard(c deck.Card) Source {
	src.Card = c
	return src
}

func (src Source) String() string {
	if src.Kind == FromWaste {
		return "waste"
	}
	if src.Position == TopPosition {
		return fmt.Sprintf("T%d", src.Pile+1)
	}
	return fmt.Sprintf("T%d[%d]", src.Pile+1, src.Position)
}

// Draw moves up to DrawCount cards from the stock to the waste, turning
// each face-up. The first card taken ends up deepest. With an empty stock
// it instead turns the waste over to form a new face-down stock and leaves
// the waste empty; no card is drawn in that case. Draw never fails.
func (s State) Draw() State {
	next := s.Clone()
	if len(next.Stock) == 0 {
		stock := make([]deck.Card, 0, len(next.Waste))
		for i := len(next.Waste) - 1; i >= 0; i-- {
			stock = append(stock, next.Waste[i].Down())
		}
		next.Stock = stock
		next.Waste = next.Waste[:0]
		return next
	}

	n := min(next.drawCount(), len(next.Stock))
	for range n {
		c := next.Stock[len(next.Stock)-1]
		next.Stock = next.Stock[:len(next.Stock)-1]
		next.Waste = append(next.Waste, c.Up())
	}
	return next
}

// WasteToFoundation moves the top waste card onto foundation slot
func (s State) WasteToFoundation(slot int) (State, error) {
	if err := checkSlot(slot); err != nil {
		return State{}, err
	}
	card := top(s.Waste)
	if card == nil {
		return State{}, invariantf("waste is empty")
	}
	if !CanAddToFoundation(*card, s.Foundations[slot]) {
		return State{}, rejectf("%v cannot go on foundation %d", *card, slot+1)
	}

	next := s.Clone()
	next.Waste = next.Waste[:len(next.Waste)-1]
	next.Foundations[slot] = append(next.Foundations[slot], card.Up())
	return next, nil
}

// TableauToFoundation moves the top card of a tableau pile onto foundation
// slot and turns up the card it uncovers.
func (s State) TableauToFoundation(pile, slot int) (State, error) {
	if err := checkPile(pile); err != nil {
		return State{}, err
	}
	if err := checkSlot(slot); err != nil {
		return State{}, err
	}
	card := top(s.Tableau[pile])
	if card == nil {
		return State{}, invariantf("tableau %d is empty", pile+1)
	}
	if !card.FaceUp {
		return State{}, invariantf("tableau %d top card is face-down", pile+1)
	}
	if !CanAddToFoundation(*card, s.Foundations[slot]) {
		return State{}, rejectf("%v cannot go on foundation %d", *card, slot+1)
	}

	next := s.Clone()
	src := next.Tableau[pile][:len(next.Tableau[pile])-1]
	flipTop(src)
	next.Tableau[pile] = src
	next.Foundations[slot] = append(next.Foundations[slot], card.Up())
	return next, nil
}

// MoveToTableau moves the top waste card, or a face-up tail of a tableau
// pile, onto tableau pile dest. The tail keeps its order, every moved card
// is face-up afterwards, and a tableau source turns up its new top card.
func (s State) MoveToTableau(src Source, dest int) (State, error) {
	if err := checkPile(dest); err != nil {
		return State{}, err
	}
	moving, err := s.resolve(src)
	if err != nil {
		return State{}, err
	}
	if src.Kind == FromTableau && src.Pile == dest {
		return State{}, rejectf("cannot move tableau %d onto itself", dest+1)
	}
	target := top(s.Tableau[dest])
	if !CanAddToTableau(moving[0], target) {
		if target == nil {
			return State{}, rejectf("only a king may fill empty tableau %d, not %v", dest+1, moving[0])
		}
		return State{}, rejectf("%v cannot go on %v", moving[0], *target)
	}

	next := s.Clone()
	switch src.Kind {
	case FromWaste:
		next.Waste = next.Waste[:len(next.Waste)-1]
	case FromTableau:
		rest := next.Tableau[src.Pile][:len(next.Tableau[src.Pile])-len(moving)]
		flipTop(rest)
		next.Tableau[src.Pile] = rest
	}
	for _, c := range moving {
		next.Tableau[dest] = append(next.Tableau[dest], c.Up())
	}
	return next, nil
}

// AutoMove sends the single card named by src to the lowest foundation that
// accepts it, as a double-click would. It returns the slot used.
func (s State) AutoMove(src Source) (State, int, error) {
	moving, err := s.resolve(src)
	if err != nil {
		return State{}, 0, err
	}
	if len(moving) != 1 {
		return State{}, 0, rejectf("only a single card can go to a foundation, %s holds %d", src, len(moving))
	}
	slot, ok := CanMoveToAnyFoundation(moving[0], s.Foundations)
	if !ok {
		return State{}, 0, rejectf("no foundation accepts %v", moving[0])
	}

	var next State
	if src.Kind == FromWaste {
		next, err = s.WasteToFoundation(slot)
	} else {
		next, err = s.TableauToFoundation(src.Pile, slot)
	}
	if err != nil {
		return State{}, 0, err
	}
	return next, slot, nil
}

// resolve returns the cards src names without copying them. For the waste
// that is its top card; for a tableau pile, the tail from src.Position.
func (s State) resolve(src Source) ([]deck.Card, error) {
	var moving []deck.Card
	switch src.Kind {
	case FromWaste:
		if len(s.Waste) == 0 {
			return nil, invariantf("waste is empty")
		}
		moving = s.Waste[len(s.Waste)-1:]
	case FromTableau:
		if err := checkPile(src.Pile); err != nil {
			return nil, err
		}
		pile := s.Tableau[src.Pile]
		if len(pile) == 0 {
			return nil, invariantf("tableau %d is empty", src.Pile+1)
		}
		pos := src.Position
		if pos == TopPosition {
			pos = len(pile) - 1
		}
		if pos < 0 || pos >= len(pile) {
			return nil, invariantf("position %d outside tableau %d (height %d)", pos, src.Pile+1, len(pile))
		}
		if !pile[pos].FaceUp {
			return nil, invariantf("%v at tableau %d position %d is face-down", pile[pos], src.Pile+1, pos)
		}
		if !IsValidTail(pile, pos) {
			return nil, invariantf("tableau %d tail from %d is not a descending alternating run", src.Pile+1, pos)
		}
		moving = pile[pos:]
	default:
		return nil, invariantf("unknown source kind %d", src.Kind)
	}

	if !src.Card.IsZero() && !src.Card.Same(moving[0]) {
		return nil, invariantf("%s holds %v, not %v", src, moving[0], src.Card)
	}
	return moving, nil
}

func checkPile(pile int) error {
	if pile < 0 || pile >= NumTableau {
		return invariantf("tableau index %d outside 0-%d", pile, NumTableau-1)
	}
	return nil
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= NumFoundations {
		return invariantf("foundation index %d outside 0-%d", slot, NumFoundations-1)
	}
	return nil
}
