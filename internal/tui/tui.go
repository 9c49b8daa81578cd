package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/session"
	"github.com/muesli/termenv"
)

// Options configures the terminal front-end
type Options struct {
	Theme   string
	Bell    bool
	NoColor bool
	// BellOut receives the bell character on a win; defaults to stderr
	BellOut io.Writer
}

// Model is the Bubble Tea model for a game of Klondike. It drives the
// session directly from Update, so every session call happens on the
// program's event loop.
type Model struct {
	session     *session.Session
	unsubscribe func()
	logger      *log.Logger
	styles      Styles
	opts        Options

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	gameLog     []string
	status      string
	statusStyle lipgloss.Style
	quitting    bool
	focusedPane int // 0 = log, 1 = input
	bellPending bool

	// Dimensions
	width  int
	height int

	// Test mode
	testMode    bool
	capturedLog []string
	bells       int
}

type tickMsg time.Time

// New creates a model for s. Styles fall back to plain text when colour is
// disabled in the options or the environment.
func New(s *session.Session, logger *log.Logger, opts Options) (*Model, error) {
	return newModel(s, logger, opts, false)
}

// NewTestModel creates a model that records its log and bells instead of
// drawing them
func NewTestModel(s *session.Session, logger *log.Logger, opts Options) (*Model, error) {
	return newModel(s, logger, opts, true)
}

func newModel(s *session.Session, logger *log.Logger, opts Options, testMode bool) (*Model, error) {
	styles, err := Theme(opts.Theme)
	if err != nil {
		return nil, err
	}
	if opts.NoColor || testMode || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	if opts.BellOut == nil {
		opts.BellOut = os.Stderr
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Enter a command (d, w 3, t 1 4 7, tf 2, u, h, ? for help)"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = styles.Success
	ti.TextStyle = styles.Log
	ti.Prompt = "> "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Suggestions)

	m := &Model{
		session:     s,
		logger:      logger.WithPrefix("tui"),
		styles:      styles,
		opts:        opts,
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
		testMode:    testMode,
	}
	m.unsubscribe = s.Subscribe(m)
	m.AddLogEntry(fmt.Sprintf("Game %s dealt (seed %d)", s.ID(), s.Seed()))
	return m, nil
}

// Run starts the full-screen program and blocks until the player quits or
// ctx is cancelled
func Run(ctx context.Context, s *session.Session, logger *log.Logger, opts Options) error {
	m, err := New(s, logger, opts)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// OnEvent turns session events into log lines and the win bell
func (m *Model) OnEvent(e session.Event) {
	switch e.Type {
	case session.EventTypeNewGame:
		m.AddLogEntry(fmt.Sprintf("Game %s dealt (seed %d)", e.GameID, e.Seed))
	case session.EventTypeMove:
		m.AddLogEntry(fmt.Sprintf("%3d. %s", e.Moves, formatMove(e.Move)))
	case session.EventTypeUndo:
		m.AddLogEntry(fmt.Sprintf("Undo, back to move %d", e.Moves))
	case session.EventTypeSettings:
		m.AddLogEntry(fmt.Sprintf("Now drawing %d", e.State.DrawCount))
	case session.EventTypeWin:
		m.AddLogEntry(fmt.Sprintf("*** Won in %d moves, %s ***", e.Moves, m.session.Elapsed().Round(time.Second)))
		if m.opts.Bell {
			m.bellPending = true
		}
	}
}

// Close stops the model from receiving session events
func (m *Model) Close() {
	m.unsubscribe()
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		// redraw the clock
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				quit := m.Submit(m.input.Value())
				m.input.SetValue("")
				if quit {
					return m, tea.Quit
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	if m.bellPending {
		m.bellPending = false
		cmds = append(cmds, m.ringBell())
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) ringBell() tea.Cmd {
	if m.testMode {
		m.bells++
		return nil
	}
	out := m.opts.BellOut
	return func() tea.Msg {
		fmt.Fprint(out, "\a")
		return nil
	}
}

// Submit runs one line of input against the session and reports whether
// the player asked to quit
func (m *Model) Submit(input string) bool {
	input = strings.TrimSpace(input)
	cmd, err := ParseCommand(input)
	if err != nil {
		m.setStatus(m.styles.Warning, err.Error())
		return false
	}
	m.logger.Debug("Command", "input", input, "command", cmd.Name)

	switch cmd.Name {
	case cmdQuit:
		m.quitting = true
		return true

	case cmdHelp:
		for _, line := range strings.Split(helpText, "\n") {
			m.AddLogEntry(line)
		}
		m.setStatus(m.styles.Info, "Commands listed in the log")

	case cmdUndo:
		if m.session.Undo() {
			m.setStatus(m.styles.Info, "Undone")
		} else {
			m.setStatus(m.styles.Warning, "Nothing to undo")
		}

	case cmdHint:
		if hint, ok := m.session.Hint(); ok {
			m.setStatus(m.styles.Success, fmt.Sprintf("Try %s (%s)", formatMove(hint), commandFor(hint)))
		} else {
			m.setStatus(m.styles.Warning, "No useful moves left")
		}

	case cmdNew:
		var err error
		if cmd.Arg != 0 {
			err = m.session.NewGameWithSeed(cmd.Arg)
		} else {
			err = m.session.NewGame()
		}
		if err != nil {
			m.fail(err)
			return false
		}
		m.setStatus(m.styles.Info, "New game")

	case cmdSettings:
		if err := m.session.SetDrawCount(int(cmd.Arg)); err != nil {
			m.fail(err)
			return false
		}
		m.setStatus(m.styles.Info, fmt.Sprintf("Drawing %d", cmd.Arg))

	case cmdMove:
		var err error
		if cmd.Auto {
			err = m.session.AutoMove(cmd.Source)
		} else {
			err = m.session.Apply(cmd.Move)
		}
		if err != nil {
			m.fail(err)
			return false
		}
		if m.session.Won() {
			m.setStatus(m.styles.Success, "You won! n for a new game")
		} else {
			m.setStatus(m.styles.Info, "")
		}
	}
	return false
}

// fail reports a refused command. Typed input can name empty or hidden
// cards, so invariant errors are shown like rejections but logged.
func (m *Model) fail(err error) {
	if klondike.IsRejected(err) {
		m.setStatus(m.styles.Warning, err.Error())
		return
	}
	m.logger.Warn("Command failed", "error", err)
	m.setStatus(m.styles.Error, err.Error())
}

func (m *Model) setStatus(style lipgloss.Style, text string) {
	m.status = text
	m.statusStyle = style
}

// Status returns the message shown above the input
func (m *Model) Status() string { return m.status }

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.paneColor(1)).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight, 1)).
		Render(actionContent)

	boardContent := m.header() + "\n\n" + renderBoard(m.session.State(), m.styles)
	boardWidth := lipgloss.Width(boardContent)
	paneHeight := max(m.height-actionHeight-4, 1)
	boardPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Border).
		Width(boardWidth).
		Height(paneHeight).
		Render(boardContent)

	m.logViewport.Width = max(m.width-boardWidth-4, 1)
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(m.styles.Log.Render(strings.Join(m.gameLog, "\n")))
	if m.focusedPane == 1 {
		m.logViewport.GotoBottom()
	}
	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.paneColor(0)).
		Width(m.logViewport.Width).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, boardPane, logPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) paneColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return m.styles.Focus
	}
	return m.styles.Border
}

func (m *Model) header() string {
	elapsed := m.session.Elapsed().Round(time.Second)
	return m.styles.Header.Render(fmt.Sprintf(" Klondike  seed %d  draw %d  moves %d  %s ",
		m.session.Seed(), m.session.DrawCount(), m.session.Moves(), elapsed))
}

func (m *Model) renderActionPane() string {
	var content strings.Builder
	if m.status != "" {
		content.WriteString(m.statusStyle.Render(m.status))
	}
	content.WriteString("\n")
	content.WriteString(m.input.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • ? for commands • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(m.styles.Info.Render(help))
	return content.String()
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// Bells returns how many times the bell rang (test mode only)
func (m *Model) Bells() int { return m.bells }

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}
