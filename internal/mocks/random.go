package mocks

import "github.com/vancomm/minefield/internal/mines"

// MockRandom is a [mines.Rand] that replays queued results.
type MockRandom struct {
	// IntNResults is a queue of results to return from IntN
	IntNResults []int
	intNIndex   int
}

var _ mines.Rand = (*MockRandom)(nil)

func NewMockRandom(values ...int) *MockRandom {
	return &MockRandom{IntNResults: values}
}

// IntN returns the next queued result, or 0 if none remaining. Queued values
// are reduced modulo n so they always fall in [0, n).
func (r *MockRandom) IntN(n int) int {
	if r.intNIndex >= len(r.IntNResults) || n <= 0 {
		return 0
	}
	result := r.IntNResults[r.intNIndex]
	r.intNIndex++
	return result % n
}

// QueueIntN adds values to the IntN result queue
func (r *MockRandom) QueueIntN(values ...int) {
	r.IntNResults = append(r.IntNResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntNResults = nil
	r.intNIndex = 0
}
