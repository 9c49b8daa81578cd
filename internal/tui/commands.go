package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/klondike/internal/klondike"
)

// Command is one parsed line of player input. Pile, position and slot
// numbers are converted from the 1-based numbers shown on screen to the
// 0-based ones the engine uses.
type Command struct {
	Name string
	Move klondike.Move
	// Auto sends Source to whichever foundation takes it
	Auto   bool
	Source klondike.Source
	// Seed for "n", DrawCount for "s"
	Arg int64
}

const (
	cmdMove     = "move"
	cmdUndo     = "undo"
	cmdHint     = "hint"
	cmdNew      = "new"
	cmdSettings = "settings"
	cmdHelp     = "help"
	cmdQuit     = "quit"
)

// errUsage wraps every malformed command
var errUsage = errors.New("usage")

// Suggestions seeds the input's autocompletion
var Suggestions = []string{"draw", "undo", "hint", "new", "help", "quit"}

const helpText = `d            draw (or recycle the waste)
w P          waste to tableau pile P
wf [F]       waste to foundation F, or the first that fits
t P N Q      tableau P from card N onwards to pile Q
t P Q        top card of tableau P to pile Q
tf P [F]     top of tableau P to foundation F, or the first that fits
a w|P        auto-move the waste or tableau P to a foundation
u            undo          h   hint
n [SEED]     new game      s 1|3  draw count
q            quit`

// ParseCommand turns a line of input into a Command
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty command, type ? for help", errUsage)
	}
	name, args := fields[0], fields[1:]

	switch name {
	case "d", "draw":
		if err := wantArgs(args, 0, 0, "d"); err != nil {
			return Command{}, err
		}
		return Command{Name: cmdMove, Move: klondike.DrawMove()}, nil

	case "w":
		if err := wantArgs(args, 1, 1, "w PILE"); err != nil {
			return Command{}, err
		}
		pile, err := number(args[0], klondike.NumTableau)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: cmdMove, Move: klondike.ToTableauMove(klondike.WasteSource(), pile)}, nil

	case "wf":
		if err := wantArgs(args, 0, 1, "wf [SLOT]"); err != nil {
			return Command{}, err
		}
		if len(args) == 0 {
			return Command{Name: cmdMove, Auto: true, Source: klondike.WasteSource()}, nil
		}
		slot, err := number(args[0], klondike.NumFoundations)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: cmdMove, Move: klondike.WasteToFoundationMove(slot)}, nil

	case "t":
		if err := wantArgs(args, 2, 3, "t FROM [CARD] TO"); err != nil {
			return Command{}, err
		}
		nums := make([]int, len(args))
		for i, a := range args {
			n, err := number(a, 0)
			if err != nil {
				return Command{}, err
			}
			nums[i] = n
		}
		if nums[0] >= klondike.NumTableau || nums[len(nums)-1] >= klondike.NumTableau {
			return Command{}, fmt.Errorf("%w: piles are numbered 1 to %d", errUsage, klondike.NumTableau)
		}
		src := klondike.TableauTop(nums[0])
		if len(nums) == 3 {
			src = klondike.TableauSource(nums[0], nums[1])
		}
		return Command{Name: cmdMove, Move: klondike.ToTableauMove(src, nums[len(nums)-1])}, nil

	case "tf":
		if err := wantArgs(args, 1, 2, "tf PILE [SLOT]"); err != nil {
			return Command{}, err
		}
		pile, err := number(args[0], klondike.NumTableau)
		if err != nil {
			return Command{}, err
		}
		if len(args) == 1 {
			return Command{Name: cmdMove, Auto: true, Source: klondike.TableauTop(pile)}, nil
		}
		slot, err := number(args[1], klondike.NumFoundations)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: cmdMove, Move: klondike.TableauToFoundationMove(pile, slot)}, nil

	case "a", "auto":
		if err := wantArgs(args, 1, 1, "a w|PILE"); err != nil {
			return Command{}, err
		}
		if args[0] == "w" {
			return Command{Name: cmdMove, Auto: true, Source: klondike.WasteSource()}, nil
		}
		pile, err := number(args[0], klondike.NumTableau)
		if err != nil {
			return Command{}, err
		}
		return Command{Name: cmdMove, Auto: true, Source: klondike.TableauTop(pile)}, nil

	case "u", "undo":
		return Command{Name: cmdUndo}, nil
	case "h", "hint":
		return Command{Name: cmdHint}, nil
	case "?", "help":
		return Command{Name: cmdHelp}, nil
	case "q", "quit", "exit":
		return Command{Name: cmdQuit}, nil

	case "n", "new":
		if err := wantArgs(args, 0, 1, "n [SEED]"); err != nil {
			return Command{}, err
		}
		cmd := Command{Name: cmdNew}
		if len(args) == 1 {
			seed, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || seed <= 0 {
				return Command{}, fmt.Errorf("%w: seed must be a positive number", errUsage)
			}
			cmd.Arg = seed
		}
		return cmd, nil

	case "s", "settings":
		if err := wantArgs(args, 1, 1, "s 1|3"); err != nil {
			return Command{}, err
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || !klondike.ValidDrawCount(n) {
			return Command{}, fmt.Errorf("%w: draw count must be 1 or 3", errUsage)
		}
		return Command{Name: cmdSettings, Arg: int64(n)}, nil
	}

	return Command{}, fmt.Errorf("%w: unknown command %q, type ? for help", errUsage, name)
}

func wantArgs(args []string, lo, hi int, usage string) error {
	if len(args) < lo || len(args) > hi {
		return fmt.Errorf("%w: %s", errUsage, usage)
	}
	return nil
}

// number parses a 1-based number and returns it 0-based. limit of zero
// means unbounded.
func number(s string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || (limit > 0 && n > limit) {
		if limit > 0 {
			return 0, fmt.Errorf("%w: expected a number from 1 to %d, got %q", errUsage, limit, s)
		}
		return 0, fmt.Errorf("%w: expected a positive number, got %q", errUsage, s)
	}
	return n - 1, nil
}
