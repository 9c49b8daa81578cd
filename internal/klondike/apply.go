package klondike

import "fmt"

// MoveKind enumerates the transitions a Move can describe
type MoveKind int

const (
	KindDraw MoveKind = iota
	KindWasteToFoundation
	KindTableauToFoundation
	KindToTableau
	KindAuto
)

func (k MoveKind) String() string {
	switch k {
	case KindDraw:
		return "draw"
	case KindWasteToFoundation:
		return "waste-to-foundation"
	case KindTableauToFoundation:
		return "tableau-to-foundation"
	case KindToTableau:
		return "to-tableau"
	case KindAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Move describes one transition. From is used by every kind except
// KindDraw and KindWasteToFoundation; To is a foundation slot for the
// foundation kinds and a tableau pile for KindToTableau.
type Move struct {
	Kind MoveKind
	From Source
	To   int
}

// DrawMove returns the move that draws from (or recycles) the stock
func DrawMove() Move {
	return Move{Kind: KindDraw}
}

// WasteToFoundationMove moves the top waste card to foundation slot
func WasteToFoundationMove(slot int) Move {
	return Move{Kind: KindWasteToFoundation, From: WasteSource(), To: slot}
}

// TableauToFoundationMove moves the top card of pile to foundation slot
func TableauToFoundationMove(pile, slot int) Move {
	return Move{Kind: KindTableauToFoundation, From: TableauTop(pile), To: slot}
}

// ToTableauMove moves the card or tail at from onto tableau pile dest
func ToTableauMove(from Source, dest int) Move {
	return Move{Kind: KindToTableau, From: from, To: dest}
}

// AutoMoveFrom sends the card at from to whichever foundation takes it
func AutoMoveFrom(from Source) Move {
	return Move{Kind: KindAuto, From: from}
}

func (m Move) String() string {
	switch m.Kind {
	case KindDraw:
		return "draw"
	case KindWasteToFoundation:
		return fmt.Sprintf("waste→F%d", m.To+1)
	case KindTableauToFoundation:
		return fmt.Sprintf("T%d→F%d", m.From.Pile+1, m.To+1)
	case KindToTableau:
		return fmt.Sprintf("%s→T%d", m.From, m.To+1)
	case KindAuto:
		return fmt.Sprintf("auto %s", m.From)
	default:
		return fmt.Sprintf("move(%d)", int(m.Kind))
	}
}

// IsFoundationMove reports whether m ends on a foundation
func (m Move) IsFoundationMove() bool {
	return m.Kind == KindWasteToFoundation || m.Kind == KindTableauToFoundation || m.Kind == KindAuto
}

// Apply performs m on s and returns the resulting state
func (s State) Apply(m Move) (State, error) {
	switch m.Kind {
	case KindDraw:
		return s.Draw(), nil
	case KindWasteToFoundation:
		if m.From.Kind != FromWaste {
			return State{}, invariantf("waste-to-foundation needs a waste source, got %s", m.From.Kind)
		}
		if _, err := s.resolve(m.From); err != nil {
			return State{}, err
		}
		return s.WasteToFoundation(m.To)
	case KindTableauToFoundation:
		if m.From.Kind != FromTableau {
			return State{}, invariantf("tableau-to-foundation needs a tableau source, got %s", m.From.Kind)
		}
		moving, err := s.resolve(m.From)
		if err != nil {
			return State{}, err
		}
		if len(moving) != 1 {
			return State{}, rejectf("only a single card can go to a foundation, %s holds %d", m.From, len(moving))
		}
		return s.TableauToFoundation(m.From.Pile, m.To)
	case KindToTableau:
		return s.MoveToTableau(m.From, m.To)
	case KindAuto:
		next, _, err := s.AutoMove(m.From)
		return next, err
	default:
		return State{}, invariantf("unknown move kind %d", int(m.Kind))
	}
}
