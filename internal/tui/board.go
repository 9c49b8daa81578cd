package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/klondike"
)

const cellWidth = 5

// renderBoard draws the stock, waste and foundations on one row and the
// tableau below, one column per pile with row numbers for "t" commands.
func renderBoard(s klondike.State, st Styles) string {
	var b strings.Builder

	b.WriteString(cell(st.Label, "Stock"))
	b.WriteString(cell(st.Label, "Waste"))
	b.WriteString(strings.Repeat(" ", cellWidth*2))
	for i := range klondike.NumFoundations {
		b.WriteString(cell(st.Label, fmt.Sprintf("F%d", i+1)))
	}
	b.WriteString("\n")

	if len(s.Stock) > 0 {
		b.WriteString(cell(st.CardBack, "##"))
	} else {
		b.WriteString(cell(st.Empty, "--"))
	}
	fan := s.VisibleWaste()
	for i := range 3 {
		if i < len(fan) {
			b.WriteString(cardCell(fan[i], st))
		} else if i == 0 {
			b.WriteString(cell(st.Empty, "--"))
		} else {
			b.WriteString(strings.Repeat(" ", cellWidth))
		}
	}
	for _, f := range s.Foundations {
		if len(f) == 0 {
			b.WriteString(cell(st.Empty, "--"))
			continue
		}
		b.WriteString(cardCell(f[len(f)-1], st))
	}
	b.WriteString("\n")
	b.WriteString(st.Info.Render(fmt.Sprintf("%d in stock, %d in waste", len(s.Stock), len(s.Waste))))
	b.WriteString("\n\n")

	b.WriteString("   ")
	for i := range klondike.NumTableau {
		b.WriteString(cell(st.Label, fmt.Sprintf("T%d", i+1)))
	}
	b.WriteString("\n")

	rows := 1
	for _, pile := range s.Tableau {
		rows = max(rows, len(pile))
	}
	for r := range rows {
		b.WriteString(st.Info.Render(fmt.Sprintf("%2d ", r+1)))
		for _, pile := range s.Tableau {
			switch {
			case r < len(pile):
				b.WriteString(cardCell(pile[r], st))
			case r == 0:
				b.WriteString(cell(st.Empty, "--"))
			default:
				b.WriteString(strings.Repeat(" ", cellWidth))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func cardCell(c deck.Card, st Styles) string {
	switch {
	case !c.FaceUp:
		return cell(st.CardBack, "##")
	case c.IsRed():
		return cell(st.RedCard, c.String())
	default:
		return cell(st.Black, c.String())
	}
}

// cell renders text in style, padded to the column width
func cell(style lipgloss.Style, text string) string {
	pad := max(cellWidth-lipgloss.Width(text), 1)
	return style.Render(text) + strings.Repeat(" ", pad)
}

// formatMove describes m with the 1-based numbers shown on screen
func formatMove(m klondike.Move) string {
	src := "waste"
	if m.From.Kind == klondike.FromTableau {
		src = fmt.Sprintf("T%d", m.From.Pile+1)
		if m.From.Position != klondike.TopPosition {
			src = fmt.Sprintf("T%d from card %d", m.From.Pile+1, m.From.Position+1)
		}
	}

	switch m.Kind {
	case klondike.KindDraw:
		return "draw"
	case klondike.KindWasteToFoundation:
		return fmt.Sprintf("waste to F%d", m.To+1)
	case klondike.KindTableauToFoundation:
		return fmt.Sprintf("%s to F%d", src, m.To+1)
	case klondike.KindToTableau:
		return fmt.Sprintf("%s to T%d", src, m.To+1)
	case klondike.KindAuto:
		return fmt.Sprintf("%s to a foundation", src)
	}
	return m.String()
}

// commandFor is the input that performs m, shown alongside hints
func commandFor(m klondike.Move) string {
	switch m.Kind {
	case klondike.KindDraw:
		return "d"
	case klondike.KindWasteToFoundation:
		return fmt.Sprintf("wf %d", m.To+1)
	case klondike.KindTableauToFoundation:
		return fmt.Sprintf("tf %d %d", m.From.Pile+1, m.To+1)
	case klondike.KindToTableau:
		if m.From.Kind == klondike.FromWaste {
			return fmt.Sprintf("w %d", m.To+1)
		}
		if m.From.Position == klondike.TopPosition {
			return fmt.Sprintf("t %d %d", m.From.Pile+1, m.To+1)
		}
		return fmt.Sprintf("t %d %d %d", m.From.Pile+1, m.From.Position+1, m.To+1)
	case klondike.KindAuto:
		if m.From.Kind == klondike.FromWaste {
			return "a w"
		}
		return fmt.Sprintf("a %d", m.From.Pile+1)
	}
	return ""
}
