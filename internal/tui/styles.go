package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles is a colour theme for the board and the panes around it
type Styles struct {
	Header   lipgloss.Style
	RedCard  lipgloss.Style
	Black    lipgloss.Style
	CardBack lipgloss.Style
	Empty    lipgloss.Style
	Label    lipgloss.Style
	Log      lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Border   lipgloss.Color
	Focus    lipgloss.Color
}

// Theme returns the named theme
func Theme(name string) (Styles, error) {
	switch name {
	case "ruby", "":
		return ruby(), nil
	case "classic":
		return classic(), nil
	case "mono":
		return mono(), nil
	default:
		return Styles{}, fmt.Errorf("unknown theme %q", name)
	}
}

func ruby() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#9B1B30")).
			Bold(true),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Black: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		CardBack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9B1B30")),
		Empty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Log: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Border: lipgloss.Color("#626262"),
		Focus:  lipgloss.Color("#04B575"),
	}
}

func classic() Styles {
	s := ruby()
	s.Header = s.Header.Background(lipgloss.Color("#1B5E20"))
	s.CardBack = lipgloss.NewStyle().Foreground(lipgloss.Color("#1565C0"))
	s.RedCard = s.RedCard.Foreground(lipgloss.Color("#E53935"))
	s.Label = s.Label.Foreground(lipgloss.Color("#FFD700"))
	s.Focus = lipgloss.Color("#FFD700")
	return s
}

// mono keeps emphasis but drops every colour
func mono() Styles {
	plain := lipgloss.NewStyle()
	bold := plain.Bold(true)
	return Styles{
		Header:   bold.Reverse(true),
		RedCard:  bold,
		Black:    plain,
		CardBack: plain.Faint(true),
		Empty:    plain.Faint(true),
		Label:    bold,
		Log:      plain,
		Success:  bold,
		Error:    bold.Underline(true),
		Warning:  bold,
		Info:     plain.Faint(true),
		Border:   lipgloss.Color(""),
		Focus:    lipgloss.Color(""),
	}
}
