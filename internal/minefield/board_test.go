package minefield

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mineCount(b *Board) int {
	return b.Count(MineHidden) + b.Count(MineRevealed)
}

func snapshotStates(b *Board) []CellState {
	return append([]CellState(nil), b.grid...)
}

func TestNewPlacesExactMineCount(t *testing.T) {
	tests := []struct {
		name                 string
		rows, columns, mines int
	}{
		{"1x1(0)", 1, 1, 0},
		{"1x1(1)", 1, 1, 1},
		{"3x3(1)", 3, 3, 1},
		{"9x9(10)", 9, 9, 10},
		{"16x16(40)", 16, 16, 40},
		{"16x30(99)", 16, 30, 99},
		{"5x5(25)", 5, 5, 25},
		{"1x40(39)", 1, 40, 39},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			b, err := New(test.rows, test.columns, test.mines, r)
			require.NoError(t, err)
			assert.Equal(t, test.rows, b.Rows())
			assert.Equal(t, test.columns, b.Columns())
			assert.Equal(t, test.mines, b.MineCount())
			assert.Equal(t, test.mines, mineCount(b))
			assert.Equal(t, test.mines, b.Count(MineHidden))
			assert.Equal(t, test.rows*test.columns-test.mines, b.Count(SafeHidden))
			assert.False(t, b.AnyMineRevealed())
		})
	}
}

func TestNewInvalidConfiguration(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tests := []struct {
		name                 string
		rows, columns, mines int
	}{
		{"zero rows", 0, 5, 0},
		{"negative columns", 5, -1, 0},
		{"negative mines", 3, 3, -1},
		{"too many mines", 3, 3, 10},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := New(test.rows, test.columns, test.mines, r)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}

	_, err := New(3, 3, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewIsDeterministicForSeed(t *testing.T) {
	a, err := New(9, 9, 10, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := New(9, 9, 10, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	assert.Equal(t, a.grid, b.grid)
}

func TestNewPlacementIsUniform(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	const (
		rows, columns, mines = 3, 3, 3
		rounds               = 30000
	)
	r := rand.New(rand.NewPCG(3, 4))
	hits := make([]int, rows*columns)
	for range rounds {
		b, err := New(rows, columns, mines, r)
		require.NoError(t, err)
		for i, c := range b.grid {
			if c.Mine() {
				hits[i]++
			}
		}
	}
	expected := float64(rounds*mines) / float64(rows*columns)
	for i, h := range hits {
		assert.InEpsilon(t, expected, float64(h), 0.05, "cell %d", i)
	}
}

func TestNewWithMines(t *testing.T) {
	b, err := NewWithMines(3, 3, []Point{{0, 0}, {2, 2}})
	require.NoError(t, err)
	assert.Equal(t, 2, b.MineCount())
	assert.True(t, b.ContainsMine(0, 0))
	assert.True(t, b.ContainsMine(2, 2))
	assert.False(t, b.ContainsMine(1, 1))

	_, err = NewWithMines(3, 3, []Point{{0, 0}, {0, 0}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewWithMines(3, 3, []Point{{3, 0}})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestAdjacent(t *testing.T) {
	b, err := NewWithMines(3, 4, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		row, col int
		expected []Point
	}{
		{"top left corner", 0, 0, []Point{{0, 1}, {1, 0}, {1, 1}}},
		{"top right corner", 0, 3, []Point{{0, 2}, {1, 2}, {1, 3}}},
		{"bottom right corner", 2, 3, []Point{{1, 2}, {1, 3}, {2, 2}}},
		{"right edge", 1, 3, []Point{{0, 2}, {0, 3}, {1, 2}, {2, 2}, {2, 3}}},
		{"centre", 1, 1, []Point{
			{0, 0}, {0, 1}, {0, 2},
			{1, 0}, {1, 2},
			{2, 0}, {2, 1}, {2, 2},
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, b.Adjacent(test.row, test.col))
			assert.Equal(t, b.Adjacent(test.row, test.col), b.Adjacent(test.row, test.col))
		})
	}
}

func TestAdjacentNeverLeavesBoard(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {1, 5}, {5, 1}, {2, 2}, {4, 7}} {
		b, err := NewWithMines(dims[0], dims[1], nil)
		require.NoError(t, err)
		for row := range b.Rows() {
			for col := range b.Columns() {
				for _, p := range b.Adjacent(row, col) {
					assert.True(t, b.InBounds(p.Row, p.Col), "%v from (%d, %d)", p, row, col)
				}
			}
		}
	}

	single, err := NewWithMines(1, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, single.Adjacent(0, 0))
}

func TestAdjacentMines(t *testing.T) {
	b, err := NewWithMines(3, 3, []Point{{0, 0}, {0, 2}, {2, 1}})
	require.NoError(t, err)

	assert.Equal(t, 3, b.AdjacentMines(1, 1))
	assert.Equal(t, 2, b.AdjacentMines(0, 1))
	assert.Equal(t, 0, b.AdjacentMines(0, 0))
	assert.Equal(t, 1, b.AdjacentMines(2, 0))
	assert.Equal(t, 2, b.AdjacentMines(1, 0))

	full, err := NewWithMines(3, 3, []Point{
		{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, full.AdjacentMines(1, 1))
}

func TestOutOfBoundsPanics(t *testing.T) {
	b, err := NewWithMines(2, 3, nil)
	require.NoError(t, err)

	calls := map[string]func(){
		"Reveal":        func() { b.Reveal(2, 0) },
		"IsRevealed":    func() { b.IsRevealed(0, 3) },
		"ContainsMine":  func() { b.ContainsMine(-1, 0) },
		"AdjacentMines": func() { b.AdjacentMines(0, -1) },
		"Adjacent":      func() { b.Adjacent(5, 5) },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				_, ok := r.(OutOfBoundsError)
				assert.True(t, ok, "panicked with %v", r)
			}()
			call()
		})
	}
}

func TestRevealSingleSafeCell(t *testing.T) {
	b, err := New(1, 1, 0, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, SafeHidden, b.State(0, 0))
	assert.False(t, b.AllSafeCellsRevealed())

	assert.Equal(t, 1, b.Reveal(0, 0))

	assert.Equal(t, SafeRevealed, b.State(0, 0))
	assert.True(t, b.AllSafeCellsRevealed())
	assert.False(t, b.AnyMineRevealed())
	assert.True(t, b.Won())
}

func TestRevealCascadesWholeBoard(t *testing.T) {
	b, err := NewWithMines(3, 3, []Point{{2, 2}})
	require.NoError(t, err)
	require.Equal(t, 0, b.AdjacentMines(0, 0))

	assert.Equal(t, 8, b.Reveal(0, 0))

	for row := range 3 {
		for col := range 3 {
			assert.Equal(t, !(row == 2 && col == 2), b.IsRevealed(row, col))
		}
	}
	assert.False(t, b.AnyMineRevealed())
	assert.True(t, b.AllSafeCellsRevealed())
	assert.True(t, b.Won())
}

func TestRevealMineDoesNotCascade(t *testing.T) {
	b, err := NewWithMines(3, 3, []Point{{0, 0}})
	require.NoError(t, err)
	before := snapshotStates(b)

	assert.Equal(t, 1, b.Reveal(0, 0))

	assert.Equal(t, MineRevealed, b.State(0, 0))
	assert.True(t, b.AnyMineRevealed())
	assert.True(t, b.Lost())
	assert.False(t, b.Won())
	after := snapshotStates(b)
	for i := 1; i < len(after); i++ {
		assert.Equal(t, before[i], after[i])
	}
}

func TestRevealStopsAtNumberedCells(t *testing.T) {
	// . . . . .
	// . . . . .
	// 2 2 1 . .
	// * * 1 . .
	b, err := NewWithMines(4, 5, []Point{{3, 0}, {3, 1}})
	require.NoError(t, err)

	b.Reveal(0, 4)

	for _, p := range []Point{{3, 0}, {3, 1}} {
		assert.False(t, b.IsRevealed(p.Row, p.Col))
	}
	assert.True(t, b.IsRevealed(2, 0))
	assert.True(t, b.IsRevealed(3, 2))
	assert.True(t, b.AllSafeCellsRevealed())
	assert.False(t, b.AnyMineRevealed())
}

func TestRevealNumberedCellDoesNotCascade(t *testing.T) {
	b, err := NewWithMines(3, 3, []Point{{0, 0}})
	require.NoError(t, err)

	assert.Equal(t, 1, b.Reveal(1, 1))
	assert.Equal(t, 1, b.Count(SafeRevealed))
	assert.False(t, b.AllSafeCellsRevealed())
}

func TestRevealIsIdempotent(t *testing.T) {
	b, err := NewWithMines(4, 4, []Point{{0, 0}, {3, 3}})
	require.NoError(t, err)

	for _, p := range []Point{{0, 3}, {0, 0}, {1, 1}} {
		b.Reveal(p.Row, p.Col)
		before := snapshotStates(b)
		assert.Equal(t, 0, b.Reveal(p.Row, p.Col))
		assert.Equal(t, before, snapshotStates(b))
	}
}

func TestRevealWalledRegion(t *testing.T) {
	// a full column of mines splits the board; the cascade stays on its side
	b, err := NewWithMines(4, 5, []Point{{0, 2}, {1, 2}, {2, 2}, {3, 2}})
	require.NoError(t, err)

	assert.Equal(t, 8, b.Reveal(0, 0))
	for row := range 4 {
		assert.True(t, b.IsRevealed(row, 0))
		assert.True(t, b.IsRevealed(row, 1))
		assert.False(t, b.IsRevealed(row, 3))
		assert.False(t, b.IsRevealed(row, 4))
	}
	assert.False(t, b.AllSafeCellsRevealed())

	assert.Equal(t, 8, b.Reveal(3, 4))
	assert.True(t, b.AllSafeCellsRevealed())
	assert.True(t, b.Won())
}

func TestRevealLargeBoardWithoutMines(t *testing.T) {
	b, err := NewWithMines(500, 500, nil)
	require.NoError(t, err)
	assert.Equal(t, 500*500, b.Reveal(250, 250))
	assert.True(t, b.AllSafeCellsRevealed())
}

func TestMineCountInvariantHoldsAcrossReveals(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	b, err := New(16, 16, 40, r)
	require.NoError(t, err)

	for range 100 {
		b.Reveal(r.IntN(16), r.IntN(16))
		assert.Equal(t, 40, mineCount(b))
	}
}

func TestFullBoardIsTriviallyCleared(t *testing.T) {
	b, err := New(2, 3, 6, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.True(t, b.AllSafeCellsRevealed())
	assert.False(t, b.AnyMineRevealed())
}
