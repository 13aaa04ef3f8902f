package minefield

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

type snapshot struct {
	Rows, Columns, MineCount int
	Grid                     []CellState
}

// Bytes encodes the board with gob.
func (b *Board) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(snapshot{
		Rows:      b.rows,
		Columns:   b.columns,
		MineCount: b.mineCount,
		Grid:      b.grid,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode restores a board encoded with [Board.Bytes]. A snapshot that
// violates any board invariant is rejected with [ErrInvalidConfiguration].
func Decode(buf []byte) (*Board, error) {
	var s snapshot
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&s); err != nil {
		return nil, fmt.Errorf("unable to decode board: %w", err)
	}
	if err := validate(s.Rows, s.Columns, s.MineCount); err != nil {
		return nil, err
	}
	if len(s.Grid) != s.Rows*s.Columns {
		return nil, fmt.Errorf(
			"%w: grid has %d cells, want %d",
			ErrInvalidConfiguration, len(s.Grid), s.Rows*s.Columns,
		)
	}
	mines := 0
	for i, c := range s.Grid {
		if !c.valid() {
			return nil, fmt.Errorf(
				"%w: cell %d has unknown state %d", ErrInvalidConfiguration, i, c,
			)
		}
		if c.Mine() {
			mines++
		}
	}
	if mines != s.MineCount {
		return nil, fmt.Errorf(
			"%w: grid holds %d mines, want %d",
			ErrInvalidConfiguration, mines, s.MineCount,
		)
	}
	return &Board{
		rows:      s.Rows,
		columns:   s.Columns,
		mineCount: s.MineCount,
		grid:      s.Grid,
	}, nil
}
