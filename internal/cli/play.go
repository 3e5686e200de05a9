package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/command"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/mines"
)

const quit = "q"

// Play runs the read-eval-print loop until in is exhausted or the player
// quits. The seed is used only when seeded is set.
func Play(in io.Reader, out io.Writer, cfg *Config, seeded bool) error {
	board := config.DefaultBoard()
	board.Rows, board.Cols, board.MinesPercent = cfg.Rows, cfg.Cols, cfg.MinesPercent
	if err := board.Validate(); err != nil {
		return err
	}

	if cfg.Verbose {
		mines.Log.SetLevel(logrus.DebugLevel)
	}

	var rnd mines.Rand = mines.NewRand()
	if seeded {
		rnd = mines.NewSeededRand(cfg.Seed)
	}

	m, err := mines.New(board.Rows, board.Cols, board.MinesPercent, rnd)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Game with %d x %d\n", m.Rows(), m.Cols())
	render(out, m)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == quit {
			return nil
		}

		if err := command.Execute(m, line); err != nil {
			fmt.Fprintf(out, "error: %s\n", err)
			continue
		}
		render(out, m)
	}
}

func render(out io.Writer, m *mines.Minefield) {
	fmt.Fprint(out, m.String())
	switch m.State() {
	case mines.Won:
		fmt.Fprintln(out, "You won! Type n for a new board.")
	case mines.Lost:
		fmt.Fprintln(out, "Boom. Type n for a new board.")
	default:
		fmt.Fprintf(out, "Mines left: %d\n", m.MinesLeft())
	}
}
