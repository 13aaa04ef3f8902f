package minefield

type CellState uint8

const (
	SafeHidden CellState = iota
	SafeRevealed
	MineHidden
	MineRevealed
)

func (s CellState) String() string {
	switch s {
	case SafeHidden:
		return "SafeHidden"
	case SafeRevealed:
		return "SafeRevealed"
	case MineHidden:
		return "MineHidden"
	case MineRevealed:
		return "MineRevealed"
	default:
		return "CellState(?)"
	}
}

func (s CellState) Revealed() bool {
	return s == SafeRevealed || s == MineRevealed
}

func (s CellState) Mine() bool {
	return s == MineHidden || s == MineRevealed
}

func (s CellState) valid() bool {
	return s <= MineRevealed
}

// Point is a (row, col) cell coordinate.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
