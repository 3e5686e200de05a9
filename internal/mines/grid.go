package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// Cell is what a player can see of one tile.
type Cell int8

const (
	Question Cell = -3
	Unknown  Cell = -2
	Flagged  Cell = -1
	MineCell Cell = 9
	/*
	 * 0 to 8 mean the tile is open and shows its mined neighbour count.
	 */
)

func (c Cell) String() string {
	switch {
	case c == Question:
		return "?"
	case c == Unknown:
		return "."
	case c == Flagged:
		return "F"
	case c == MineCell:
		return "*"
	case 0 <= c && c <= 8:
		return iif(c == 0, " ", strconv.Itoa(int(c)))
	default:
		return "!"
	}
}

// Grid is a snapshot of the board from the player's side, indexed by
// linear tile index.
type Grid []Cell

// Grid returns the player's view of the board.
func (m *Minefield) Grid() Grid {
	g := make(Grid, m.Size())
	for i := range g {
		t := m.tile(i)
		switch {
		case t.hidden && t.flag == MineFlag:
			g[i] = Flagged
		case t.hidden && t.flag == QuestionFlag:
			g[i] = Question
		case t.hidden:
			g[i] = Unknown
		case t.content.IsMine():
			g[i] = MineCell
		default:
			g[i] = Cell(t.content)
		}
	}
	return g
}

// ToString renders the grid one board row per line. rows is the board's row
// count, needed to undo the column-major indexing.
func (g Grid) ToString(rows int) string {
	if rows <= 0 {
		return ""
	}
	cols := len(g) / rows
	var b strings.Builder
	for row := range rows {
		for col := range cols {
			fmt.Fprint(&b, g[col*rows+row].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func (m *Minefield) String() string {
	return m.Grid().ToString(m.rows)
}
