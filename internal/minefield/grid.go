package minefield

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph is what a player sees in a cell.
type Glyph int8

const (
	Unknown       Glyph = -2
	ExplodedMine  Glyph = 65
	UnflaggedMine Glyph = 67
	// 0-8 for a revealed safe cell with given number of mined neighbours
)

func (g Glyph) String() string {
	switch {
	case g == Unknown:
		return "."
	case 0 <= g && g <= 8:
		if g == 0 {
			return " "
		}
		return strconv.Itoa(int(g))
	case g == ExplodedMine:
		return "X"
	case g == UnflaggedMine:
		return "*"
	default:
		return "!"
	}
}

// Grid is a row-major player view of a board.
type Grid []Glyph

// View projects the board into what a player may see. With revealAll set
// (the game is over or was given up) hidden cells are shown as well.
func (b *Board) View(revealAll bool) Grid {
	grid := make(Grid, len(b.grid))
	for i, c := range b.grid {
		row, col := i/b.columns, i%b.columns
		switch {
		case c == MineRevealed:
			grid[i] = ExplodedMine
		case c == SafeRevealed:
			grid[i] = Glyph(b.AdjacentMines(row, col))
		case !revealAll:
			grid[i] = Unknown
		case c == MineHidden:
			grid[i] = UnflaggedMine
		default:
			grid[i] = Glyph(b.AdjacentMines(row, col))
		}
	}
	return grid
}

func (g Grid) String(columns int) string {
	var b strings.Builder
	for row := range len(g) / columns {
		for col := range columns {
			if col > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, g[row*columns+col].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
