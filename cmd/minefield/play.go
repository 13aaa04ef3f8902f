package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/minefield"
)

var errBadMove = errors.New(`enter a move as "row col"`)

func parseMove(line string) (row, col int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, errBadMove
	}
	if row, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, errBadMove
	}
	if col, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, errBadMove
	}
	return row, col, nil
}

// play runs a game on board reading moves from in until the game is won or
// lost. It reports whether the player won; running out of input is a loss.
func play(board *minefield.Board, in io.Reader, out io.Writer) (bool, error) {
	scanner := bufio.NewScanner(in)
	for {
		switch {
		case board.AnyMineRevealed():
			_, err := fmt.Fprintf(out, "%sBOOM! You lose.\n", board)
			return false, err
		case board.AllSafeCellsRevealed():
			_, err := fmt.Fprintf(out, "%sAll clear. You win!\n", board)
			return true, err
		}

		fmt.Fprintf(out, "%s> ", board)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return false, scanner.Err()
		}

		row, col, err := parseMove(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if !board.InBounds(row, col) {
			fmt.Fprintf(out, "(%d, %d) is off the board\n", row, col)
			continue
		}
		if board.IsRevealed(row, col) {
			fmt.Fprintf(out, "(%d, %d) is already open\n", row, col)
			continue
		}
		board.Reveal(row, col)
	}
}
