package entity

// Mark is the content of one board cell.
type Mark uint8

const (
	EmptyCell Mark = iota
	PlayerX
	PlayerO
)

func (m Mark) String() string {
	switch m {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	case EmptyCell:
		return " "
	default:
		return "?"
	}
}

// IsPlayer reports whether m is one of the two player marks.
func (m Mark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// Opponent returns the other player's mark. EmptyCell has no opponent.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}
