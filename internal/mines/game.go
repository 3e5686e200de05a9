package mines

import "github.com/sirupsen/logrus"

// UncoverTile opens tile i and returns the board state afterwards.
//
// A hidden tile is opened; an empty one floods into its neighbourhood and a
// mine loses the game. Calling it on an already open numbered tile chords:
// when exactly as many neighbours carry a mine flag as the tile's number,
// every hidden unflagged neighbour is opened.
//
// panics [IndexError]
func (m *Minefield) UncoverTile(i int) State {
	t := m.tile(i)
	if m.lost {
		return Lost
	}
	m.touched = true

	if t.hidden {
		m.open(i)
	} else {
		m.chord(i)
	}

	return m.settle()
}

// open uncovers tile i, which must be hidden.
func (m *Minefield) open(i int) {
	t := m.tile(i)
	t.hidden = false
	m.unflag(t)

	switch k, _ := t.content.Danger(); {
	case t.content.IsMine():
		m.explode(i)
	case k == 0:
		m.flood(i)
	}
}

// flood opens every tile reachable from the empty tile i through empty
// tiles, plus their numbered border. Each tile is opened at most once.
func (m *Minefield) flood(i int) {
	todo := []int{i}
	for len(todo) > 0 {
		j := todo[len(todo)-1]
		todo = todo[:len(todo)-1]

		for _, n := range m.neighbors(j) {
			t := m.tile(n)
			if !t.hidden {
				continue
			}
			t.hidden = false
			m.unflag(t)
			if k, ok := t.content.Danger(); ok && k == 0 {
				todo = append(todo, n)
			}
		}
	}
}

func (m *Minefield) chord(i int) {
	k, ok := m.tile(i).content.Danger()
	if !ok || k == 0 {
		return
	}

	flagged := 0
	open := make([]int, 0, 8)
	for _, j := range m.neighbors(i) {
		t := m.tile(j)
		if !t.hidden {
			continue
		}
		switch t.flag {
		case MineFlag:
			flagged++
		case NoFlag:
			open = append(open, j)
		}
	}
	if flagged != k {
		return
	}

	for _, j := range open {
		if m.lost {
			return
		}
		if m.tile(j).hidden {
			m.open(j)
		}
	}
}

// explode ends the game after the mine at i was opened and shows every tile.
func (m *Minefield) explode(i int) {
	m.lost = true
	m.revealAll()

	row, col := m.Position(i)
	Log.WithFields(logrus.Fields{
		"row": row,
		"col": col,
	}).Debug("mine uncovered")
}

// Forfeit gives up the current game: the board is lost and fully shown.
func (m *Minefield) Forfeit() {
	m.lost = true
	m.touched = true
	m.revealAll()
}

func (m *Minefield) revealAll() {
	for row := range m.tiles {
		for col := range m.tiles[row] {
			m.tiles[row][col].hidden = false
		}
	}
}

func (m *Minefield) unflag(t *square) {
	if t.flag == MineFlag {
		m.flaggedMines--
	}
	t.flag = NoFlag
}

// FlagTile cycles the marker on hidden tile i through none, mine and
// question. A tile skips straight to question when there are already as
// many mine flags as mines. Open tiles are left alone.
//
// panics [IndexError]
func (m *Minefield) FlagTile(i int) State {
	t := m.tile(i)
	if m.lost {
		return Lost
	}
	m.touched = true

	if !t.hidden {
		return m.State()
	}

	switch t.flag {
	case NoFlag:
		if m.flaggedMines < len(m.mines) {
			t.flag = MineFlag
			m.flaggedMines++
		} else {
			t.flag = QuestionFlag
		}
	case MineFlag:
		t.flag = QuestionFlag
		m.flaggedMines--
	case QuestionFlag:
		t.flag = NoFlag
	}

	return m.settle()
}

func (m *Minefield) settle() State {
	s := m.State()
	if s == Won {
		Log.WithFields(logrus.Fields{
			"rows":  m.rows,
			"cols":  m.cols,
			"mines": len(m.mines),
		}).Debug("board cleared")
	}
	return s
}

// CheckWin reports whether every mine carries a mine flag and every other
// tile is open. It does not modify the board.
func (m *Minefield) CheckWin() bool {
	for row := range m.tiles {
		for col := range m.tiles[row] {
			t := &m.tiles[row][col]
			if t.content.IsMine() {
				if t.flag != MineFlag {
					return false
				}
			} else if t.hidden {
				return false
			}
		}
	}
	return true
}

func (m *Minefield) State() State {
	switch {
	case m.lost:
		return Lost
	case m.CheckWin():
		return Won
	case !m.touched:
		return Fresh
	default:
		return Playing
	}
}
