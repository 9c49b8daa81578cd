package klondike

// LegalMoves lists every move the rules allow from s: foundation moves
// first (one per card, to its lowest accepting slot), then tableau moves
// from the tableau, then waste to tableau, and finally a draw when the
// stock or waste holds any card.
func LegalMoves(s State) []Move {
	var moves []Move

	if t := top(s.Waste); t != nil {
		if slot, ok := CanMoveToAnyFoundation(*t, s.Foundations); ok {
			moves = append(moves, WasteToFoundationMove(slot))
		}
	}
	for p, pile := range s.Tableau {
		if t := top(pile); t != nil && t.FaceUp {
			if slot, ok := CanMoveToAnyFoundation(*t, s.Foundations); ok {
				moves = append(moves, TableauToFoundationMove(p, slot))
			}
		}
	}

	for p, pile := range s.Tableau {
		for pos := len(pile) - 1; pos >= 0 && IsValidTail(pile, pos); pos-- {
			for dest := range NumTableau {
				if dest != p && CanAddToTableau(pile[pos], top(s.Tableau[dest])) {
					moves = append(moves, ToTableauMove(TableauSource(p, pos), dest))
				}
			}
		}
	}

	if t := top(s.Waste); t != nil {
		for dest := range NumTableau {
			if CanAddToTableau(*t, top(s.Tableau[dest])) {
				moves = append(moves, ToTableauMove(WasteSource(), dest))
			}
		}
	}

	if len(s.Stock) > 0 || len(s.Waste) > 0 {
		moves = append(moves, DrawMove())
	}
	return moves
}

// Hint picks the most useful legal move from s. Moves that only shuffle
// cards between piles without uncovering anything are never suggested.
// It reports false when nothing but pointless moves remain.
func Hint(s State) (Move, bool) {
	best, bestScore := Move{}, 0
	for _, m := range LegalMoves(s) {
		if score := HintScore(s, m); score > bestScore {
			best, bestScore = m, score
		}
	}
	return best, bestScore > 0
}

// HintScore ranks a legal move for Hint. Zero means the move makes no
// progress, and moves that point outside the layout also score zero.
func HintScore(s State, m Move) int {
	switch m.Kind {
	case KindWasteToFoundation, KindTableauToFoundation, KindAuto:
		return 100
	case KindDraw:
		return 1
	case KindToTableau:
		if m.From.Kind == FromWaste {
			return 50
		}
		if checkPile(m.From.Pile) != nil || checkPile(m.To) != nil {
			return 0
		}
		pile := s.Tableau[m.From.Pile]
		pos := m.From.Position
		if pos == TopPosition {
			pos = len(pile) - 1
		}
		if pos < 0 || pos >= len(pile) {
			return 0
		}
		switch {
		case pos > 0 && pos == faceUpStart(pile):
			// uncovers a hidden card
			return 80
		case pos == 0 && len(s.Tableau[m.To]) == 0:
			// a whole pile onto an empty pile
			return 0
		case pos == 0:
			// empties a pile for a king
			return 40
		}
		// A partial tail is only worth moving to free a foundation card.
		if _, ok := CanMoveToAnyFoundation(pile[pos-1], s.Foundations); ok {
			return 60
		}
		return 0
	}
	return 0
}
