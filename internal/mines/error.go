package mines

import "fmt"

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// IndexError is the panic value raised when a tile index falls outside the
// board. Callers are expected to check [Minefield.InBounds] first.
type IndexError struct {
	Index      int
	Rows, Cols int
}

// [IndexError] implements [error]
func (e IndexError) Error() string {
	return fmt.Sprintf(
		"tile index %d out of range for %dx%d board", e.Index, e.Rows, e.Cols,
	)
}
