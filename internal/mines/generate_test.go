package mines

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		size, count int
	}{
		{"none", 10, 0},
		{"one", 10, 1},
		{"half", 480, 240},
		{"all", 64, 64},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := NewSeededRand(42)
			for range 50 {
				picked := pickMines(r, test.size, test.count)
				require.Len(t, picked, test.count)

				sorted := slices.Clone(picked)
				slices.Sort(sorted)
				assert.Equal(t, len(sorted), len(slices.Compact(sorted)), "duplicates in %v", picked)
				for _, i := range picked {
					assert.True(t, 0 <= i && i < test.size)
				}
			}
		})
	}
}

func TestPickMinesCoversBoard(t *testing.T) {
	r := NewSeededRand(3)
	hits := make([]int, 25)
	for range 2000 {
		for _, i := range pickMines(r, 25, 5) {
			hits[i]++
		}
	}
	for i, h := range hits {
		assert.Positive(t, h, "tile %d never mined", i)
	}
}

func TestNeighbors(t *testing.T) {
	m, err := New(3, 4, 0, NewSeededRand(1))
	require.NoError(t, err)

	tests := []struct {
		name     string
		row, col int
		want     []int
	}{
		{"top left corner", 0, 0, []int{1, 3, 4}},
		{"bottom right corner", 2, 3, []int{7, 8, 10}},
		{"left edge", 1, 0, []int{0, 2, 3, 4, 5}},
		{"center", 1, 1, []int{0, 1, 2, 3, 5, 6, 7, 8}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := m.neighbors(m.Index(test.row, test.col))
			slices.Sort(got)
			assert.Equal(t, test.want, got)
		})
	}

	single, err := New(1, 1, 0, NewSeededRand(1))
	require.NoError(t, err)
	assert.Empty(t, single.neighbors(0))
}

func TestDanger(t *testing.T) {
	assert.Panics(t, func() { Danger(9) })
	assert.Panics(t, func() { Danger(-1) })

	k, ok := Danger(3).Danger()
	assert.True(t, ok)
	assert.Equal(t, 3, k)

	_, ok = Mine.Danger()
	assert.False(t, ok)
	assert.Equal(t, "*", Mine.String())
	assert.Equal(t, "question", QuestionFlag.String())
	assert.Equal(t, "lost", Lost.String())
}

func TestIif(t *testing.T) {
	assert.Equal(t, 1, iif(true, 1, 0))
	assert.Equal(t, 0, iif(false, 1, 0))
}
