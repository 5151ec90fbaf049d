package tictactoe

import "github.com/rocketscienceinc/tictactoe-cli/internal/entity"

// WinCombos lists the three rows, three columns and two diagonals.
var WinCombos = [8][3]entity.Position{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// HasLine - reports whether mark fills any row, column or diagonal.
func HasLine(board *entity.Board, mark entity.Mark) bool {
	if !mark.IsPlayer() {
		return false
	}

	for _, combo := range WinCombos {
		if board.At(combo[0]) == mark && board.At(combo[1]) == mark && board.At(combo[2]) == mark {
			return true
		}
	}

	return false
}

// Evaluate - classifies the board. X is checked before O.
func Evaluate(board *entity.Board) entity.MatchResult {
	switch {
	case HasLine(board, entity.PlayerX):
		return entity.WinFor(entity.PlayerX)
	case HasLine(board, entity.PlayerO):
		return entity.WinFor(entity.PlayerO)
	case board.IsFull():
		return entity.Draw
	default:
		return entity.InProgress
	}
}
