package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/klondike/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, opts Options) (*Model, *session.Session) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests
	s, err := session.New(session.Config{Seed: 42, DrawCount: 3}, logger, quartz.NewMock(t))
	require.NoError(t, err)

	m, err := NewTestModel(s, logger, opts)
	require.NoError(t, err)
	return m, s
}

// enter types input and presses enter
func enter(m *Model, input string) tea.Cmd {
	m.input.SetValue(input)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func lastLog(m *Model) string {
	entries := m.GetCapturedLog()
	if len(entries) == 0 {
		return ""
	}
	return entries[len(entries)-1]
}

func TestTUITestMode(t *testing.T) {
	t.Run("logs the deal", func(t *testing.T) {
		m, s := newTestModel(t, Options{})
		assert.True(t, m.IsTestMode())
		require.Len(t, m.GetCapturedLog(), 1)
		assert.Contains(t, m.GetCapturedLog()[0], "seed 42")
		assert.Contains(t, m.GetCapturedLog()[0], s.ID())
	})

	t.Run("production mode does not capture logs", func(t *testing.T) {
		s, err := session.New(session.Config{Seed: 42}, nil, quartz.NewMock(t))
		require.NoError(t, err)
		m, err := New(s, nil, Options{NoColor: true})
		require.NoError(t, err)

		assert.False(t, m.IsTestMode())
		m.AddLogEntry("Some log entry")
		assert.Nil(t, m.GetCapturedLog())
	})

	t.Run("unknown theme", func(t *testing.T) {
		s, err := session.New(session.Config{Seed: 42}, nil, quartz.NewMock(t))
		require.NoError(t, err)
		_, err = NewTestModel(s, nil, Options{Theme: "neon"})
		assert.ErrorContains(t, err, "unknown theme")
	})
}

func TestDrawAndUndo(t *testing.T) {
	m, s := newTestModel(t, Options{})
	before := s.State()

	enter(m, "d")
	assert.Equal(t, 1, s.Moves())
	assert.Len(t, s.State().Waste, 3)
	assert.Contains(t, lastLog(m), "1. draw")
	assert.Empty(t, m.input.Value())

	enter(m, "u")
	assert.Equal(t, 0, s.Moves())
	assert.Equal(t, before, s.State())
	assert.Contains(t, lastLog(m), "Undo")
	assert.Equal(t, "Undone", m.Status())

	enter(m, "u")
	assert.Equal(t, "Nothing to undo", m.Status())
}

func TestRefusedCommands(t *testing.T) {
	m, s := newTestModel(t, Options{})

	enter(m, "w 9")
	assert.Contains(t, m.Status(), "1 to 7")

	enter(m, "t 3 3")
	assert.Contains(t, m.Status(), "move rejected")

	// the waste is empty before the first draw
	enter(m, "w 1")
	assert.Contains(t, m.Status(), "waste is empty")

	assert.Equal(t, 0, s.Moves())
	require.Len(t, m.GetCapturedLog(), 1)
}

func TestHintNewGameAndSettings(t *testing.T) {
	m, s := newTestModel(t, Options{})

	enter(m, "h")
	assert.True(t, strings.HasPrefix(m.Status(), "Try ") || m.Status() == "No useful moves left", m.Status())

	enter(m, "s 1")
	assert.Equal(t, 1, s.DrawCount())
	assert.Equal(t, 1, s.State().DrawCount)
	assert.Contains(t, lastLog(m), "Now drawing 1")

	enter(m, "d")
	assert.Len(t, s.State().Waste, 1)

	enter(m, "n 7")
	assert.Equal(t, int64(7), s.Seed())
	assert.Equal(t, 0, s.Moves())
	assert.Contains(t, lastLog(m), "seed 7")

	enter(m, "?")
	assert.Contains(t, strings.Join(m.GetCapturedLog(), "\n"), "auto-move")
}

func TestWinRingsBell(t *testing.T) {
	m, _ := newTestModel(t, Options{Bell: true})
	m.OnEvent(session.Event{Type: session.EventTypeWin, Moves: 120})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 1, m.Bells())
	assert.Contains(t, lastLog(m), "Won in 120 moves")

	quiet, _ := newTestModel(t, Options{})
	quiet.OnEvent(session.Event{Type: session.EventTypeWin, Moves: 120})
	quiet.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Zero(t, quiet.Bells())
}

func TestView(t *testing.T) {
	m, s := newTestModel(t, Options{Theme: "classic"})
	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Klondike")
	assert.Contains(t, view, "seed 42")
	assert.Contains(t, view, "Stock")
	assert.Contains(t, view, "T7")
	assert.Contains(t, view, "##")

	top := s.State().Tableau[6]
	assert.Contains(t, view, top[len(top)-1].String())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	cmd := enter(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestFocusSwitch(t *testing.T) {
	m, s := newTestModel(t, Options{})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.focusedPane)

	// enter is ignored while the log has focus
	m.input.SetValue("d")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, s.Moves())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focusedPane)
}

func TestCloseStopsLogging(t *testing.T) {
	m, s := newTestModel(t, Options{})

	require.NoError(t, s.Draw())
	logged := len(m.GetCapturedLog())

	m.Close()
	require.NoError(t, s.Draw())
	assert.Len(t, m.GetCapturedLog(), logged)
}
