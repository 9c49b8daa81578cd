package autoplay

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/klondike/internal/klondike"
)

// DefaultMaxMoves bounds a game when Options.MaxMoves is zero
const DefaultMaxMoves = 1000

// StopReason says why a game ended
type StopReason int

const (
	// Won means all four foundations are complete
	Won StopReason = iota
	// Stuck means the policy found nothing worth playing
	Stuck
	// DrawCycle means a full pass through the stock changed nothing
	DrawCycle
	// MoveLimit means the game hit Options.MaxMoves
	MoveLimit
)

func (r StopReason) String() string {
	switch r {
	case Won:
		return "won"
	case Stuck:
		return "stuck"
	case DrawCycle:
		return "draw-cycle"
	case MoveLimit:
		return "move-limit"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Options tune a single game
type Options struct {
	MaxMoves int
	// Validate checks every intermediate state against the game invariants
	Validate bool
	Logger   *log.Logger
}

// Result describes a finished game
type Result struct {
	Reason     StopReason
	Moves      int
	Draws      int
	Foundation int
	Final      klondike.State
}

// Won reports whether the game ended with every card on a foundation
func (r Result) Won() bool { return r.Reason == Won }

// Play runs policy against s until the game is won or can go no further.
// A rejected move or a failed validation is returned as an error; both
// mean the policy and the rules engine disagree.
func Play(ctx context.Context, s klondike.State, policy Policy, opts Options) (Result, error) {
	if opts.MaxMoves <= 0 {
		opts.MaxMoves = DefaultMaxMoves
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	res := Result{Final: s}
	idleDraws := 0
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		switch {
		case res.Final.IsWon():
			res.Reason = Won
		case res.Moves >= opts.MaxMoves:
			res.Reason = MoveLimit
		case idleDraws > len(res.Final.Stock)+len(res.Final.Waste)+1:
			// a full pass through stock and waste without any other move
			res.Reason = DrawCycle
		default:
			m, ok := policy.Next(res.Final)
			if !ok {
				res.Reason = Stuck
				break
			}
			next, err := res.Final.Apply(m)
			if err != nil {
				return res, fmt.Errorf("%s played %s: %w", policy.Name(), m, err)
			}
			if opts.Validate {
				if err := next.Validate(); err != nil {
					return res, fmt.Errorf("after %s: %w", m, err)
				}
			}

			logger.Debug("played", "policy", policy.Name(), "move", m, "moves", res.Moves+1)
			res.Final = next
			res.Moves++
			if m.Kind == klondike.KindDraw {
				res.Draws++
				idleDraws++
			} else {
				idleDraws = 0
			}
			continue
		}

		res.Foundation = res.Final.FoundationCount()
		logger.Debug("game over", "policy", policy.Name(), "reason", res.Reason, "moves", res.Moves, "foundation", res.Foundation)
		return res, nil
	}
}
