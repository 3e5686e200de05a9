// Package command implements the line protocol used to drive a board from
// text: the websocket endpoint, the batch endpoint and the terminal client
// all speak it.
//
//	g          // no-op, fetch state
//	o ROW COL  // uncover a tile (chord if already open)
//	f ROW COL  // cycle the flag on a tile
//	n          // new board with the same parameters
//	r          // forfeit
package command

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/mines"
)

type Command string

const (
	Noop    Command = "g"
	Uncover Command = "o"
	Flag    Command = "f"
	Reset   Command = "n"
	Forfeit Command = "r"
)

// Maps known commands to number of arguments
var commandNargs = map[Command]int{
	Noop:    0,
	Uncover: 2,
	Flag:    2,
	Reset:   0,
	Forfeit: 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("invalid number of arguments")
	ErrOutOfBounds    = errors.New("invalid tile coordinates")
)

// LineError reports which line of a batch failed.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, fmt.Errorf("first argument must be an int")
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, fmt.Errorf("second argument must be an int")
	}
	return
}

// Execute applies a single command to the board.
func Execute(m *mines.Minefield, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return ErrUnknownCommand
	}

	cmd := Command(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return ErrBadArgs
	}

	switch cmd {
	case Noop:
		return nil
	case Uncover, Flag:
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		if !m.ValidatePosition(row, col) {
			return ErrOutOfBounds
		}
		if cmd == Uncover {
			m.UncoverTile(m.Index(row, col))
		} else {
			m.FlagTile(m.Index(row, col))
		}
		return nil
	case Reset:
		m.Reset()
		return nil
	case Forfeit:
		m.Forfeit()
		return nil
	}
	return ErrUnknownCommand
}

// Lines yields the non-blank lines of a batch together with their
// zero-based position.
func Lines(batch string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, line := range strings.Split(batch, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(i, line) {
				return
			}
		}
	}
}

// ExecuteBatch runs newline-separated commands in order. It stops after the
// first command that ends the game and reports the first malformed line as
// a [*LineError]; commands before it stay applied.
func ExecuteBatch(m *mines.Minefield, batch string) error {
	for i, line := range Lines(batch) {
		if err := Execute(m, line); err != nil {
			return &LineError{Line: i, Err: err}
		}
		if s := m.State(); s == mines.Won || s == mines.Lost {
			break
		}
	}
	return nil
}
