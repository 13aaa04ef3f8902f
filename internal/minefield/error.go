package minefield

import (
	"errors"
	"fmt"
)

var ErrInvalidConfiguration = errors.New("invalid board configuration")

// OutOfBoundsError is panicked by every operation that receives a
// coordinate outside the board. Use [Board.InBounds] to validate untrusted
// input first.
type OutOfBoundsError struct {
	Row, Col      int
	Rows, Columns int
}

// [OutOfBoundsError] implements [error]
func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell (%d, %d) is out of bounds of %dx%d board",
		e.Row, e.Col, e.Rows, e.Columns,
	)
}
