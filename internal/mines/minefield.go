package mines

import (
	"fmt"
	"math"
	"slices"

	"github.com/sirupsen/logrus"
)

type State uint8

const (
	Fresh State = iota
	Playing
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Minefield is a single board. It is not safe for concurrent use; callers
// that share a board between goroutines must serialize every call.
//
// Tiles are addressed by a linear index, col*rows + row.
type Minefield struct {
	rows, cols   int
	minesPercent float64

	tiles        [][]square // [row][col]
	mines        []int    // linear indices, sorted
	flaggedMines int

	lost       bool
	touched    bool
	generation uint64

	rnd Rand
}

// New builds a board and lays its first set of mines. minesPercent must lie
// in [0, 100].
func New(rows, cols int, minesPercent float64, r Rand) (*Minefield, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid board size %dx%d", rows, cols)
	}
	if math.IsNaN(minesPercent) || minesPercent < 0 || minesPercent > 100 {
		return nil, fmt.Errorf("mines percent %v not in [0, 100]", minesPercent)
	}
	if r == nil {
		return nil, fmt.Errorf("nil random source")
	}

	tiles := make([][]square, rows)
	for row := range tiles {
		tiles[row] = make([]square, cols)
	}

	m := &Minefield{
		rows:         rows,
		cols:         cols,
		minesPercent: minesPercent,
		tiles:        tiles,
		rnd:          r,
	}
	m.Reset()
	m.touched = false

	return m, nil
}

// Reset starts a new game on the same board: every tile is hidden and
// unflagged again and a fresh set of mines is laid.
func (m *Minefield) Reset() {
	for row := range m.tiles {
		for col := range m.tiles[row] {
			m.tiles[row][col].clear()
		}
	}
	m.flaggedMines = m.countFlags(MineFlag)
	m.lost = false
	m.touched = true
	m.generation++

	m.layMines(pickMines(m.rnd, m.Size(), MineCountFor(m.rows, m.cols, m.minesPercent)))

	Log.WithFields(logrus.Fields{
		"rows":  m.rows,
		"cols":  m.cols,
		"mines": len(m.mines),
	}).Debug("board reset")
}

// MineCountFor is floor(rows*cols*minesPercent/100), clamped to the board.
func MineCountFor(rows, cols int, minesPercent float64) int {
	size := rows * cols
	n := int(math.Floor(float64(size) * minesPercent / 100))
	return max(0, min(n, size))
}

// layMines marks the given indices as mines and recomputes every danger
// count. Tiles must already be cleared.
func (m *Minefield) layMines(indices []int) {
	m.mines = slices.Clone(indices)
	slices.Sort(m.mines)
	for _, i := range m.mines {
		m.tile(i).content = Mine
	}
	for i := range m.Size() {
		t := m.tile(i)
		if t.content.IsMine() {
			continue
		}
		k := 0
		for _, j := range m.neighbors(i) {
			if m.tile(j).content.IsMine() {
				k++
			}
		}
		t.content = Danger(k)
	}
}

func (m *Minefield) countFlags(flag Flag) (count int) {
	for row := range m.tiles {
		for col := range m.tiles[row] {
			if m.tiles[row][col].flag == flag {
				count++
			}
		}
	}
	return
}

func (m *Minefield) Rows() int             { return m.rows }
func (m *Minefield) Cols() int             { return m.cols }
func (m *Minefield) Size() int             { return m.rows * m.cols }
func (m *Minefield) MinesPercent() float64 { return m.minesPercent }
func (m *Minefield) MineCount() int        { return len(m.mines) }

// Generation counts the games laid on this board, including the first one
// laid by [New]. It changes only in [Minefield.Reset].
func (m *Minefield) Generation() uint64 {
	return m.generation
}

// MinesLeft is the number of mines not yet matched by a mine flag. It is
// meant for display and says nothing about whether the flags are right.
func (m *Minefield) MinesLeft() int {
	return len(m.mines) - m.flaggedMines
}

// Mines returns the linear indices of all mines in ascending order.
func (m *Minefield) Mines() []int {
	return slices.Clone(m.mines)
}

func (m *Minefield) InBounds(i int) bool {
	return 0 <= i && i < m.Size()
}

// Index converts a (row, col) pair into a linear tile index.
func (m *Minefield) Index(row, col int) int {
	return col*m.rows + row
}

// Position converts a linear tile index into its (row, col) pair.
func (m *Minefield) Position(i int) (row, col int) {
	return i % m.rows, i / m.rows
}

func (m *Minefield) ValidatePosition(row, col int) bool {
	return 0 <= row && row < m.rows && 0 <= col && col < m.cols
}

func (m *Minefield) TileIsHidden(i int) bool {
	return m.tile(i).hidden
}

func (m *Minefield) TileContent(i int) Content {
	return m.tile(i).content
}

func (m *Minefield) TileFlag(i int) Flag {
	return m.tile(i).flag
}

// panics [IndexError]
func (m *Minefield) tile(i int) *square {
	if !m.InBounds(i) {
		panic(IndexError{Index: i, Rows: m.rows, Cols: m.cols})
	}
	row, col := m.Position(i)
	return &m.tiles[row][col]
}

// neighbors lists the in-bounds Moore neighbourhood of tile i, excluding i.
func (m *Minefield) neighbors(i int) []int {
	row, col := m.Position(i)
	res := make([]int, 0, 8)
	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if m.ValidatePosition(r, c) {
				res = append(res, m.Index(r, c))
			}
		}
	}
	return res
}
