package minefield

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewHidesUnrevealedCells(t *testing.T) {
	b, err := NewWithMines(3, 3, []Point{{0, 0}})
	require.NoError(t, err)

	b.Reveal(2, 2)
	assert.Equal(t, Grid{
		Unknown, 1, 0,
		1, 1, 0,
		0, 0, 0,
	}, b.View(false))

	b.Reveal(0, 0)
	assert.Equal(t, ExplodedMine, b.View(false)[0])
}

func TestViewRevealAll(t *testing.T) {
	b, err := NewWithMines(2, 3, []Point{{0, 0}, {1, 2}})
	require.NoError(t, err)

	assert.Equal(t, Grid{
		UnflaggedMine, 2, 1,
		1, 2, UnflaggedMine,
	}, b.View(true))
}

func TestGridString(t *testing.T) {
	b, err := NewWithMines(2, 3, []Point{{0, 0}})
	require.NoError(t, err)

	assert.Equal(t, ". . .\n. . .\n", b.String())

	b.Reveal(1, 2)
	assert.Equal(t, ". 1  \n. 1  \n", b.String())

	b.Reveal(1, 0)
	assert.Equal(t, "* 1  \n1 1  \n", b.String())
}

func TestBytesDecode(t *testing.T) {
	b, err := NewWithMines(4, 4, []Point{{0, 0}, {3, 1}})
	require.NoError(t, err)
	b.Reveal(0, 3)

	buf, err := b.Bytes()
	require.NoError(t, err)

	restored, err := Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, b.Rows(), restored.Rows())
	assert.Equal(t, b.Columns(), restored.Columns())
	assert.Equal(t, b.MineCount(), restored.MineCount())
	assert.Equal(t, b.View(true), restored.View(true))
	assert.Equal(t, b.IsRevealed(0, 3), restored.IsRevealed(0, 3))
}

func TestDecodeRejectsBrokenSnapshots(t *testing.T) {
	_, err := Decode([]byte("not a board"))
	assert.Error(t, err)

	b, err := NewWithMines(2, 2, []Point{{0, 0}})
	require.NoError(t, err)
	b.mineCount = 2
	buf, err := b.Bytes()
	require.NoError(t, err)
	_, err = Decode(buf)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	b.mineCount = 1
	b.grid = b.grid[:3]
	buf, err = b.Bytes()
	require.NoError(t, err)
	_, err = Decode(buf)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
