// Package session owns a running game of Klondike on behalf of a front-end.
//
// A Session holds the current klondike.State together with the snapshots
// that preceded it, so undo is a matter of popping history. It counts moves,
// measures play time on an injected clock, and publishes events that a UI
// can turn into sounds or a victory screen. A Session is not safe for
// concurrent use; the owning game loop serialises calls.
package session

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/klondike/internal/deck"
	"github.com/lox/klondike/internal/gameid"
	"github.com/lox/klondike/internal/klondike"
	"github.com/lox/klondike/internal/randutil"
)

// Config holds the settings a session starts with
type Config struct {
	DrawCount int
	// Seed for the first deal; zero derives one from the clock
	Seed int64
	// Debug re-validates every state and logs each transition
	Debug bool
}

// Session is one player's sequence of games
type Session struct {
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
	ids    *gameid.Generator
	seeds  *rand.Rand
	bus    EventBus

	id      string
	seed    int64
	state   klondike.State
	history []klondike.State
	started time.Time
	wonAt   time.Time
	won     bool
}

// New creates a session and deals its first game
func New(cfg Config, logger *log.Logger, clock quartz.Clock) (*Session, error) {
	if cfg.DrawCount == 0 {
		cfg.DrawCount = klondike.DefaultDrawCount
	}
	if !klondike.ValidDrawCount(cfg.DrawCount) {
		return nil, fmt.Errorf("invalid draw count %d: must be 1 or 3", cfg.DrawCount)
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	first := randutil.Seed(cfg.Seed, clock.Now())
	seeds := randutil.New(first)
	s := &Session{
		cfg:    cfg,
		logger: logger.WithPrefix("session"),
		clock:  clock,
		ids:    gameid.NewGenerator(clock, seeds),
		seeds:  seeds,
	}
	if err := s.NewGameWithSeed(first); err != nil {
		return nil, err
	}
	return s, nil
}

// NewGame deals a fresh game with the next seed from the session's sequence
func (s *Session) NewGame() error {
	return s.NewGameWithSeed(s.nextSeed())
}

// NewGameWithSeed deals the game identified by seed. The same seed always
// yields the same layout.
func (s *Session) NewGameWithSeed(seed int64) error {
	state, err := klondike.Deal(deck.NewDeck(randutil.New(seed)), s.cfg.DrawCount)
	if err != nil {
		return fmt.Errorf("dealing game %d: %w", seed, err)
	}

	s.id = s.ids.Generate()
	s.seed = seed
	s.state = state
	s.history = s.history[:0]
	s.started = s.clock.Now()
	s.won = false
	s.wonAt = time.Time{}

	s.logger.Info("New game", "id", s.id, "seed", seed, "draw", s.cfg.DrawCount)
	s.publish(EventTypeNewGame, klondike.Move{})
	return nil
}

func (s *Session) nextSeed() int64 {
	for {
		if seed := s.seeds.Int64(); seed != 0 {
			return seed
		}
	}
}

// Apply performs m on the current state. A rejected move returns an error
// matching klondike.ErrRejected and changes nothing.
func (s *Session) Apply(m klondike.Move) error {
	if s.won {
		return fmt.Errorf("%w: game is already won", klondike.ErrRejected)
	}

	next, err := s.state.Apply(m)
	if err != nil {
		s.logger.Debug("Move refused", "move", m, "error", err)
		return err
	}
	if s.cfg.Debug {
		if err := next.Validate(); err != nil {
			s.logger.Error("Move broke an invariant", "move", m, "error", err)
			return fmt.Errorf("applying %s: %w", m, err)
		}
		s.logger.Debug("Applied move", "move", m, "before", s.state.String(), "after", next.String())
	}

	s.history = append(s.history, s.state)
	s.state = next
	s.publish(EventTypeMove, m)

	if next.IsWon() {
		s.won = true
		s.wonAt = s.clock.Now()
		s.logger.Info("Game won", "id", s.id, "moves", s.Moves(), "elapsed", s.Elapsed())
		s.publish(EventTypeWin, m)
	}
	return nil
}

// Draw draws from the stock, or recycles the waste when the stock is empty
func (s *Session) Draw() error {
	return s.Apply(klondike.DrawMove())
}

// AutoMove sends the card at src to the first foundation that accepts it
func (s *Session) AutoMove(src klondike.Source) error {
	return s.Apply(klondike.AutoMoveFrom(src))
}

// Undo restores the state before the last move. It reports false when
// there is nothing to undo.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := len(s.history) - 1
	s.state = s.history[last]
	s.history = s.history[:last]
	s.won = false
	s.wonAt = time.Time{}

	s.logger.Debug("Undid move", "moves", s.Moves())
	s.publish(EventTypeUndo, klondike.Move{})
	return true
}

// Hint suggests a move for the current state
func (s *Session) Hint() (klondike.Move, bool) {
	if s.won {
		return klondike.Move{}, false
	}
	return klondike.Hint(s.state)
}

// SetDrawCount changes the draw count of the game in progress and of every
// later deal. Undo history follows the new setting.
func (s *Session) SetDrawCount(n int) error {
	next, err := s.state.WithDrawCount(n)
	if err != nil {
		return err
	}
	for i, h := range s.history {
		s.history[i], _ = h.WithDrawCount(n)
	}
	s.state = next
	s.cfg.DrawCount = n

	s.logger.Info("Draw count changed", "draw", n)
	s.publish(EventTypeSettings, klondike.Move{})
	return nil
}

// Subscribe registers sub for future events and returns a func that
// unregisters it
func (s *Session) Subscribe(sub EventSubscriber) (unsubscribe func()) {
	return s.bus.Subscribe(sub)
}

// State returns the current snapshot
func (s *Session) State() klondike.State { return s.state }

// Moves returns the number of moves that led to the current state
func (s *Session) Moves() int { return len(s.history) }

// CanUndo reports whether there is a move to take back
func (s *Session) CanUndo() bool { return len(s.history) > 0 }

// Won reports whether the current game is won
func (s *Session) Won() bool { return s.won }

// ID returns the identifier of the current game
func (s *Session) ID() string { return s.id }

// Seed returns the seed the current game was dealt from
func (s *Session) Seed() int64 { return s.seed }

// DrawCount returns the configured draw count
func (s *Session) DrawCount() int { return s.cfg.DrawCount }

// Elapsed returns play time for the current game, frozen once it is won
func (s *Session) Elapsed() time.Duration {
	if s.won {
		return s.wonAt.Sub(s.started)
	}
	return s.clock.Since(s.started)
}

func (s *Session) publish(t EventType, m klondike.Move) {
	s.bus.Publish(Event{
		Type:      t,
		GameID:    s.id,
		Seed:      s.seed,
		Move:      m,
		Moves:     s.Moves(),
		State:     s.state,
		Timestamp: s.clock.Now(),
	})
}
