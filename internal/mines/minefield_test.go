package mines_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/mocks"
)

func TestMain(m *testing.M) {
	// mines.Log.SetLevel(logrus.DebugLevel)
	mines.Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	os.Exit(m.Run())
}

// newBoard builds a board whose mines are chosen by the queued picks.
func newBoard(t *testing.T, rows, cols int, percent float64, picks ...int) *mines.Minefield {
	t.Helper()
	m, err := mines.New(rows, cols, percent, mocks.NewMockRandom(picks...))
	require.NoError(t, err)
	return m
}

func hiddenCount(m *mines.Minefield) (n int) {
	for i := range m.Size() {
		if m.TileIsHidden(i) {
			n++
		}
	}
	return
}

func TestNewRejectsBadParams(t *testing.T) {
	r := mines.NewSeededRand(1)
	tests := []struct {
		name       string
		rows, cols int
		percent    float64
	}{
		{"zero rows", 0, 5, 10},
		{"zero cols", 5, 0, 10},
		{"negative percent", 5, 5, -1},
		{"percent above 100", 5, 5, 100.5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := mines.New(test.rows, test.cols, test.percent, r)
			assert.Error(t, err)
		})
	}

	_, err := mines.New(2, 2, 10, nil)
	assert.Error(t, err)
}

func TestMineCount(t *testing.T) {
	tests := []struct {
		rows, cols int
		percent    float64
		want       int
	}{
		{16, 30, 15, 72},
		{9, 9, 12.5, 10},
		{3, 3, 0, 0},
		{3, 3, 100, 9},
		{1, 1, 100, 1},
		{2, 2, 25, 1},
		{2, 2, 24.9, 0},
		{7, 3, 50, 10},
	}
	for _, test := range tests {
		name := fmt.Sprintf("%dx%d(%v%%)", test.rows, test.cols, test.percent)
		t.Run(name, func(t *testing.T) {
			m, err := mines.New(test.rows, test.cols, test.percent, mines.NewSeededRand(7))
			require.NoError(t, err)

			assert.Equal(t, test.want, m.MineCount())
			assert.Equal(t, test.want, mines.MineCountFor(test.rows, test.cols, test.percent))

			seen := make(map[int]bool)
			for _, i := range m.Mines() {
				assert.True(t, m.InBounds(i), "mine %d out of bounds", i)
				assert.False(t, seen[i], "mine %d placed twice", i)
				seen[i] = true
				assert.True(t, m.TileContent(i).IsMine())
			}
		})
	}
}

func TestDangerCounts(t *testing.T) {
	for seed := range uint64(20) {
		m, err := mines.New(8, 11, 30, mines.NewSeededRand(seed))
		require.NoError(t, err)

		mined := make(map[[2]int]bool)
		for _, i := range m.Mines() {
			row, col := m.Position(i)
			mined[[2]int{row, col}] = true
		}

		for i := range m.Size() {
			c := m.TileContent(i)
			row, col := m.Position(i)
			if mined[[2]int{row, col}] {
				require.True(t, c.IsMine())
				continue
			}
			want := 0
			for dr := -1; dr <= 1; dr++ {
				for dc := -1; dc <= 1; dc++ {
					if (dr != 0 || dc != 0) && mined[[2]int{row + dr, col + dc}] {
						want++
					}
				}
			}
			k, ok := c.Danger()
			require.True(t, ok)
			require.Equal(t, want, k, "seed %d tile %d:%d", seed, row, col)
		}
	}
}

func TestIndexing(t *testing.T) {
	m := newBoard(t, 3, 4, 0)

	assert.Equal(t, 0, m.Index(0, 0))
	assert.Equal(t, 2, m.Index(2, 0))
	assert.Equal(t, 3, m.Index(0, 1))
	assert.Equal(t, 11, m.Index(2, 3))

	for i := range m.Size() {
		row, col := m.Position(i)
		assert.Equal(t, i, m.Index(row, col))
	}

	assert.True(t, m.InBounds(11))
	assert.False(t, m.InBounds(12))
	assert.False(t, m.InBounds(-1))
	assert.False(t, m.ValidatePosition(3, 0))
	assert.False(t, m.ValidatePosition(0, 4))
}

func TestOutOfRangePanics(t *testing.T) {
	m := newBoard(t, 2, 2, 0)

	assert.PanicsWithError(t, "tile index 4 out of range for 2x2 board", func() {
		m.UncoverTile(4)
	})
	assert.Panics(t, func() { m.FlagTile(-1) })
	assert.Panics(t, func() { m.TileIsHidden(100) })

	defer func() {
		r := recover()
		ie, ok := r.(mines.IndexError)
		require.True(t, ok)
		assert.Equal(t, 7, ie.Index)
	}()
	m.TileContent(7)
}

func TestFloodRevealsEmptyBoard(t *testing.T) {
	m := newBoard(t, 13, 17, 0)
	require.Equal(t, mines.Fresh, m.State())

	state := m.UncoverTile(0)

	assert.Equal(t, 0, hiddenCount(m))
	assert.Equal(t, mines.Won, state)
	assert.True(t, m.CheckWin())
}

func TestFloodStopsAtNumbers(t *testing.T) {
	// 1x5 strip, mine at the far end: 0 0 0 1 *
	m := newBoard(t, 1, 5, 20, 4)
	require.Equal(t, []int{4}, m.Mines())

	state := m.UncoverTile(0)

	assert.Equal(t, mines.Playing, state)
	for i := range 4 {
		assert.False(t, m.TileIsHidden(i), "tile %d", i)
	}
	assert.True(t, m.TileIsHidden(4))
	assert.Equal(t, mines.Danger(1), m.TileContent(3))
}

func TestNumberedTileOpensAlone(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)

	m.UncoverTile(3)

	assert.False(t, m.TileIsHidden(3))
	assert.Equal(t, 3, hiddenCount(m))
}

func TestFloodClearsFlags(t *testing.T) {
	m := newBoard(t, 3, 3, 0)
	m.FlagTile(8)
	require.Equal(t, mines.QuestionFlag, m.TileFlag(8), "no mines, so no mine flags")

	m.UncoverTile(0)

	assert.Equal(t, mines.NoFlag, m.TileFlag(8))
	assert.False(t, m.TileIsHidden(8))
}

func TestUncoverClearsMineFlag(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)
	m.FlagTile(3)
	require.Equal(t, mines.MineFlag, m.TileFlag(3))
	require.Equal(t, 0, m.MinesLeft())

	m.UncoverTile(3)

	assert.Equal(t, mines.NoFlag, m.TileFlag(3))
	assert.Equal(t, 1, m.MinesLeft())
}

func TestChord(t *testing.T) {
	// mines at 0 and 1: tiles 2 and 3 are both Danger(2)
	setup := func(t *testing.T) *mines.Minefield {
		m := newBoard(t, 2, 2, 50, 0, 1)
		require.Equal(t, []int{0, 1}, m.Mines())
		m.UncoverTile(2)
		require.Equal(t, mines.Danger(2), m.TileContent(2))
		require.Equal(t, 3, hiddenCount(m))
		return m
	}

	t.Run("satisfied", func(t *testing.T) {
		m := setup(t)
		m.FlagTile(0)
		m.FlagTile(1)

		state := m.UncoverTile(2)

		assert.False(t, m.TileIsHidden(3))
		assert.True(t, m.TileIsHidden(0))
		assert.True(t, m.TileIsHidden(1))
		assert.Equal(t, mines.Won, state)
	})

	t.Run("unsatisfied", func(t *testing.T) {
		m := setup(t)
		m.FlagTile(0)

		state := m.UncoverTile(2)

		assert.Equal(t, mines.Playing, state)
		assert.True(t, m.TileIsHidden(3))
		assert.Equal(t, 3, hiddenCount(m))
	})

	t.Run("skips question marks", func(t *testing.T) {
		m := setup(t)
		m.FlagTile(0)
		m.FlagTile(1)
		m.FlagTile(3)
		require.Equal(t, mines.QuestionFlag, m.TileFlag(3), "mine flags are capped")

		m.UncoverTile(2)

		assert.True(t, m.TileIsHidden(3))
	})

	t.Run("wrong flag loses", func(t *testing.T) {
		m := newBoard(t, 2, 2, 25, 0)
		m.UncoverTile(3)
		m.FlagTile(1)

		state := m.UncoverTile(3)

		assert.Equal(t, mines.Lost, state)
		assert.Equal(t, 0, hiddenCount(m))
	})

	t.Run("empty tile does not chord", func(t *testing.T) {
		m := newBoard(t, 1, 4, 25, 3)
		m.UncoverTile(0)
		require.True(t, m.TileIsHidden(3))

		m.UncoverTile(0)

		assert.True(t, m.TileIsHidden(3))
	})
}

func TestFlagCycle(t *testing.T) {
	m := newBoard(t, 1, 1, 100)
	require.Equal(t, 1, m.MineCount())
	require.Equal(t, mines.NoFlag, m.TileFlag(0))

	var got []mines.Flag
	for range 3 {
		m.FlagTile(0)
		got = append(got, m.TileFlag(0))
	}

	assert.Equal(t, []mines.Flag{mines.MineFlag, mines.QuestionFlag, mines.NoFlag}, got)
	assert.Equal(t, 1, m.MinesLeft())
}

func TestFlagCap(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)

	m.FlagTile(1)
	m.FlagTile(2)

	assert.Equal(t, mines.MineFlag, m.TileFlag(1))
	assert.Equal(t, mines.QuestionFlag, m.TileFlag(2))
	assert.Equal(t, 0, m.MinesLeft())

	m.FlagTile(1)
	assert.Equal(t, 1, m.MinesLeft())
	m.FlagTile(2)
	m.FlagTile(2)
	assert.Equal(t, mines.MineFlag, m.TileFlag(2))
}

func TestFlagOpenTileIsNoop(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)
	m.UncoverTile(3)

	m.FlagTile(3)

	assert.Equal(t, mines.NoFlag, m.TileFlag(3))
	assert.Equal(t, 1, m.MinesLeft())
}

func TestWin(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)
	require.Equal(t, []int{0}, m.Mines())

	m.FlagTile(0)
	m.UncoverTile(1)
	m.UncoverTile(2)
	assert.False(t, m.CheckWin())
	state := m.UncoverTile(3)

	assert.Equal(t, mines.Won, state)
	assert.True(t, m.CheckWin())
	assert.True(t, m.CheckWin())
}

func TestNoWinWithHiddenTile(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)

	m.FlagTile(0)
	m.UncoverTile(2)
	m.UncoverTile(3)

	assert.False(t, m.CheckWin())
	assert.False(t, m.CheckWin())
	assert.Equal(t, mines.Playing, m.State())
}

func TestNoWinWithQuestionOnMine(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)

	m.FlagTile(0)
	m.FlagTile(0)
	m.UncoverTile(1)
	m.UncoverTile(2)
	m.UncoverTile(3)

	assert.False(t, m.CheckWin())
}

func TestLoss(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)
	m.FlagTile(2)

	state := m.UncoverTile(0)

	assert.Equal(t, mines.Lost, state)
	assert.Equal(t, 0, hiddenCount(m))
	assert.Equal(t, mines.Lost, m.State())

	assert.Equal(t, mines.Lost, m.UncoverTile(1))
	assert.Equal(t, mines.Lost, m.FlagTile(1))
}

func TestForfeit(t *testing.T) {
	m := newBoard(t, 3, 3, 0)

	m.Forfeit()

	assert.Equal(t, mines.Lost, m.State())
	assert.Equal(t, 0, hiddenCount(m))
}

func TestReset(t *testing.T) {
	r := mocks.NewMockRandom(0)
	m, err := mines.New(2, 2, 25, r)
	require.NoError(t, err)

	m.FlagTile(1)
	m.UncoverTile(0)
	require.Equal(t, mines.Lost, m.State())

	r.QueueIntN(3)
	m.Reset()

	assert.Equal(t, mines.Playing, m.State())
	assert.Equal(t, 4, hiddenCount(m))
	assert.Equal(t, []int{3}, m.Mines())
	assert.Equal(t, 1, m.MinesLeft())
	for i := range m.Size() {
		assert.Equal(t, mines.NoFlag, m.TileFlag(i))
	}
	assert.Equal(t, mines.Danger(1), m.TileContent(0))
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 2, m.Cols())
}

func TestGeneration(t *testing.T) {
	m := newBoard(t, 2, 2, 25, 0)
	assert.Equal(t, uint64(1), m.Generation())

	m.FlagTile(0)
	m.UncoverTile(1)
	m.UncoverTile(2)
	m.UncoverTile(3)
	require.Equal(t, mines.Won, m.State())
	m.FlagTile(0)
	m.Forfeit()
	assert.Equal(t, uint64(1), m.Generation())

	m.Reset()
	m.Reset()
	assert.Equal(t, uint64(3), m.Generation())
}

func TestGridView(t *testing.T) {
	m := newBoard(t, 2, 3, 1.0/6*100+0.01, 0)
	require.Equal(t, []int{0}, m.Mines())

	m.UncoverTile(3)
	m.FlagTile(1)
	m.FlagTile(4)

	g := m.Grid()
	assert.Equal(t, mines.Grid{
		mines.Unknown, mines.Flagged,
		mines.Unknown, mines.Cell(1),
		mines.Question, mines.Unknown,
	}, g)
	assert.Equal(t, ". . ? \nF 1 . \n", g.ToString(2))

	m.UncoverTile(0)
	assert.Equal(t, "* 1   \n1 1   \n", m.String())
}
