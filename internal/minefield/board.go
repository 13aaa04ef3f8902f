package minefield

import (
	"fmt"
	"math/rand/v2"
)

// Board is a minefield of Rows x Columns cells with MineCount mines.
//
// A Board is not safe for concurrent use: callers must not call Reveal
// concurrently with any other method.
type Board struct {
	rows, columns, mineCount int
	grid                     []CellState // row-major
}

func validate(rows, columns, mines int) error {
	if rows <= 0 || columns <= 0 {
		return fmt.Errorf(
			"%w: dimensions must be positive (rows = %d, columns = %d)",
			ErrInvalidConfiguration, rows, columns,
		)
	}
	if mines < 0 || mines > rows*columns {
		return fmt.Errorf(
			"%w: mine count %d is outside [0, %d]",
			ErrInvalidConfiguration, mines, rows*columns,
		)
	}
	return nil
}

func empty(rows, columns, mines int) *Board {
	grid := make([]CellState, rows*columns)
	for i := range grid {
		grid[i] = SafeHidden
	}
	return &Board{
		rows:      rows,
		columns:   columns,
		mineCount: mines,
		grid:      grid,
	}
}

// New creates a board and places mines uniformly at random using r.
//
// Mines are placed by rejection sampling: a random cell is drawn and
// discarded if it already holds a mine. This gets slow as mines approaches
// rows*columns.
func New(rows, columns, mines int, r *rand.Rand) (*Board, error) {
	if err := validate(rows, columns, mines); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	b := empty(rows, columns, mines)
	for placed := 0; placed < mines; {
		i := r.IntN(rows*columns)
		if b.grid[i] == MineHidden {
			continue
		}
		b.grid[i] = MineHidden
		placed++
	}
	return b, nil
}

// NewWithMines creates a board with mines at exactly the given cells.
func NewWithMines(rows, columns int, mines []Point) (*Board, error) {
	if err := validate(rows, columns, len(mines)); err != nil {
		return nil, err
	}
	b := empty(rows, columns, len(mines))
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf(
				"%w: mine (%d, %d) is out of bounds",
				ErrInvalidConfiguration, p.Row, p.Col,
			)
		}
		i := b.index(p.Row, p.Col)
		if b.grid[i] == MineHidden {
			return nil, fmt.Errorf(
				"%w: duplicate mine (%d, %d)",
				ErrInvalidConfiguration, p.Row, p.Col,
			)
		}
		b.grid[i] = MineHidden
	}
	return b, nil
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Columns() int   { return b.columns }
func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.columns
}

// panics [OutOfBoundsError]
func (b *Board) index(row, col int) int {
	if !b.InBounds(row, col) {
		panic(OutOfBoundsError{row, col, b.rows, b.columns})
	}
	return row*b.columns + col
}

func (b *Board) State(row, col int) CellState {
	return b.grid[b.index(row, col)]
}

// Count returns the number of cells currently in state s.
func (b *Board) Count(s CellState) int {
	n := 0
	for _, c := range b.grid {
		if c == s {
			n++
		}
	}
	return n
}

// Adjacent returns the in-bounds neighbours of (row, col) in row-major
// order.
func (b *Board) Adjacent(row, col int) []Point {
	b.index(row, col)
	points := make([]Point, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			r, c := row+dr, col+dc
			if (dr != 0 || dc != 0) && b.InBounds(r, c) {
				points = append(points, Point{r, c})
			}
		}
	}
	return points
}

func (b *Board) AdjacentMines(row, col int) int {
	n := 0
	for _, p := range b.Adjacent(row, col) {
		if b.grid[p.Row*b.columns+p.Col].Mine() {
			n++
		}
	}
	return n
}

// Reveal uncovers (row, col) and returns the number of cells it newly
// revealed. Hitting a mine reveals only that cell. A safe cell with no
// adjacent mines also reveals all of its neighbours, and so on until the
// region is bordered by numbered cells.
func (b *Board) Reveal(row, col int) int {
	i := b.index(row, col)
	switch b.grid[i] {
	case MineHidden:
		b.grid[i] = MineRevealed
		return 1
	case SafeHidden:
	default:
		return 0
	}

	revealed := 0
	todo := []Point{{row, col}}
	b.grid[i] = SafeRevealed
	for len(todo) > 0 {
		p := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		revealed++

		if b.AdjacentMines(p.Row, p.Col) != 0 {
			continue
		}
		for _, n := range b.Adjacent(p.Row, p.Col) {
			j := n.Row*b.columns + n.Col
			// a zero cell has no mined neighbours, so only SafeHidden
			// cells can be queued here
			if b.grid[j] == SafeHidden {
				b.grid[j] = SafeRevealed
				todo = append(todo, n)
			}
		}
	}
	return revealed
}

func (b *Board) IsRevealed(row, col int) bool {
	return b.State(row, col).Revealed()
}

func (b *Board) ContainsMine(row, col int) bool {
	return b.State(row, col).Mine()
}

func (b *Board) AnyMineRevealed() bool {
	for _, c := range b.grid {
		if c == MineRevealed {
			return true
		}
	}
	return false
}

func (b *Board) AllSafeCellsRevealed() bool {
	for _, c := range b.grid {
		if c == SafeHidden {
			return false
		}
	}
	return true
}

func (b *Board) Lost() bool { return b.AnyMineRevealed() }

// Won reports whether every safe cell is revealed without a mine going off.
func (b *Board) Won() bool { return !b.AnyMineRevealed() && b.AllSafeCellsRevealed() }

func (b *Board) Over() bool { return b.Lost() || b.AllSafeCellsRevealed() }

func (b *Board) String() string {
	return b.View(b.Over()).String(b.columns)
}
