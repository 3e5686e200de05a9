package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Board holds the parameters a new board gets when a client does not name
// its own, and the largest board a client may ask for.
type Board struct {
	Rows         int
	Cols         int
	MinesPercent float64
	MaxRows      int
	MaxCols      int
}

func DefaultBoard() Board {
	return Board{Rows: 16, Cols: 30, MinesPercent: 15, MaxRows: 256, MaxCols: 256}
}

func lookupInt(name string, dst *int) error {
	s, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", name, err)
	}
	*dst = n
	return nil
}

// NewBoard reads MINES_ROWS, MINES_COLS, MINES_PERCENT, MINES_MAX_ROWS and
// MINES_MAX_COLS on top of [DefaultBoard].
func NewBoard() (*Board, error) {
	b := DefaultBoard()

	for name, dst := range map[string]*int{
		"MINES_ROWS":     &b.Rows,
		"MINES_COLS":     &b.Cols,
		"MINES_MAX_ROWS": &b.MaxRows,
		"MINES_MAX_COLS": &b.MaxCols,
	} {
		if err := lookupInt(name, dst); err != nil {
			return nil, err
		}
	}

	if s, ok := os.LookupEnv("MINES_PERCENT"); ok {
		percent, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse MINES_PERCENT: %w", err)
		}
		b.MinesPercent = percent
	}

	if b.MaxRows < 1 || b.MaxCols < 1 {
		return nil, fmt.Errorf("board limit must be at least 1x1, got %dx%d", b.MaxRows, b.MaxCols)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return &b, nil
}

// Validate checks the board against its own limits.
func (b Board) Validate() error {
	if b.Rows < 1 || b.Cols < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", b.Rows, b.Cols)
	}
	if b.Rows > b.MaxRows || b.Cols > b.MaxCols {
		return fmt.Errorf(
			"board must be at most %dx%d, got %dx%d", b.MaxRows, b.MaxCols, b.Rows, b.Cols,
		)
	}
	if math.IsNaN(b.MinesPercent) || b.MinesPercent < 0 || b.MinesPercent > 100 {
		return fmt.Errorf("mines percent must be within [0, 100], got %v", b.MinesPercent)
	}
	return nil
}
