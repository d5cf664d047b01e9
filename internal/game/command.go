package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

type CommandKind string

const (
	Noop    CommandKind = "g"
	Open    CommandKind = "o"
	Flag    CommandKind = "f"
	Forfeit CommandKind = "r"
)

var commandNargs = map[CommandKind]int{
	Noop:    0,
	Open:    2,
	Flag:    2,
	Forfeit: 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("invalid number of arguments")
)

// Command is one line of the text protocol: "o x y" opens a cell, "f x y"
// toggles a flag, "r" forfeits and "g" does nothing but ask for the board.
type Command struct {
	Kind CommandKind
	X, Y int
}

func (c Command) String() string {
	if commandNargs[c.Kind] == 0 {
		return string(c.Kind)
	}
	return fmt.Sprintf("%s %d %d", c.Kind, c.X, c.Y)
}

func ParseCommand(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, ErrUnknownCommand
	}

	kind := CommandKind(strings.ToLower(parts[0]))
	nargs, ok := commandNargs[kind]
	if !ok {
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return Command{}, fmt.Errorf(
			"%w: %s takes %d, got %d", ErrBadArguments, kind, nargs, len(parts)-1,
		)
	}

	cmd := Command{Kind: kind}
	if nargs == 2 {
		var err error
		if cmd.X, err = strconv.Atoi(parts[1]); err != nil {
			return Command{}, fmt.Errorf("x must be an int: %w", err)
		}
		if cmd.Y, err = strconv.Atoi(parts[2]); err != nil {
			return Command{}, fmt.Errorf("y must be an int: %w", err)
		}
	}
	return cmd, nil
}

func (g *Game) Execute(cmd Command, r *rand.Rand) error {
	switch cmd.Kind {
	case Noop:
		return nil
	case Open:
		return g.Reveal(cmd.X, cmd.Y, r)
	case Flag:
		return g.ToggleFlag(cmd.X, cmd.Y)
	case Forfeit:
		g.Forfeit()
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Kind)
	}
}
