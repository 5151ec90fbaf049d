package service

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

// winScore is the value of a win found at depth 0. Deeper wins are worth less,
// so the maximizer prefers fast wins and the minimizer slow losses.
const winScore = 10

// noScore is below any value minimax can return.
const noScore = math.MinInt

// FindBestMove - runs a full minimax search for mark. Cells are tried in row-major
// order and only a strictly better score replaces the current best, so ties go to
// the earliest cell.
func FindBestMove(board *entity.Board, mark entity.Mark) (entity.Position, error) {
	best := entity.Position{Row: -1, Col: -1}
	bestScore := noScore

	for _, pos := range board.EmptyPositions() {
		score := noScore
		_ = board.Probe(pos, mark, func() {
			score = minimax(board, 0, false, mark)
		})

		if score > bestScore {
			bestScore = score
			best = pos
		}
	}

	if bestScore == noScore {
		return best, apperror.ErrNoMovesAvailable
	}

	return best, nil
}

// minimax scores board from the point of view of maxMark. depth counts the plies
// searched below the candidate move.
func minimax(board *entity.Board, depth int, maximizing bool, maxMark entity.Mark) int {
	minMark := maxMark.Opponent()

	switch {
	case tictactoe.HasLine(board, maxMark):
		return winScore - depth
	case tictactoe.HasLine(board, minMark):
		return depth - winScore
	case board.IsFull():
		return 0
	}

	if maximizing {
		best := noScore
		for _, pos := range board.EmptyPositions() {
			_ = board.Probe(pos, maxMark, func() {
				best = max(best, minimax(board, depth+1, false, maxMark))
			})
		}

		return best
	}

	best := math.MaxInt
	for _, pos := range board.EmptyPositions() {
		_ = board.Probe(pos, minMark, func() {
			best = min(best, minimax(board, depth+1, true, maxMark))
		})
	}

	return best
}
