package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

// DefaultRandomRate is the share of EASY moves that are picked at random.
const DefaultRandomRate = 0.7

// Randomizer is the random source used by the bot. *rand.Rand from math/rand/v2 satisfies it.
type Randomizer interface {
	Float64() float64
	IntN(n int) int
}

// BotService selects moves for the computer player.
type BotService struct {
	rng        Randomizer
	randomRate float64
}

func NewBotService(rng Randomizer, randomRate float64) *BotService {
	return &BotService{
		rng:        rng,
		randomRate: randomRate,
	}
}

// SelectMove - picks a position for mark on board. The board is probed during the
// search but is left exactly as it was given.
func (that *BotService) SelectMove(board *entity.Board, difficulty entity.Difficulty, mark entity.Mark) (entity.Position, error) {
	if !mark.IsPlayer() {
		return entity.Position{}, fmt.Errorf("%w: bot cannot play mark %q", apperror.ErrInvalidMove, mark)
	}

	if board.IsFull() {
		return entity.Position{}, apperror.ErrNoMovesAvailable
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return that.easyMove(board, mark)
	case entity.DifficultyMedium:
		return mediumMove(board, mark)
	case entity.DifficultyHard:
		return FindBestMove(board, mark)
	default:
		return entity.Position{}, fmt.Errorf("%w: %d", entity.ErrUnknownDifficulty, int(difficulty))
	}
}

// Player returns a tictactoe.Mover that plays at the given difficulty.
func (that *BotService) Player(difficulty entity.Difficulty) *BotPlayer {
	return &BotPlayer{bot: that, difficulty: difficulty}
}

// easyMove plays a random empty cell most of the time and the best move otherwise.
func (that *BotService) easyMove(board *entity.Board, mark entity.Mark) (entity.Position, error) {
	if that.rng.Float64() < that.randomRate {
		empty := board.EmptyPositions()
		return empty[that.rng.IntN(len(empty))], nil
	}

	return FindBestMove(board, mark)
}

// mediumMove wins if it can, blocks if it must, and searches otherwise.
func mediumMove(board *entity.Board, mark entity.Mark) (entity.Position, error) {
	if pos, ok := FindWinningMove(board, mark); ok {
		return pos, nil
	}

	if pos, ok := FindWinningMove(board, mark.Opponent()); ok {
		return pos, nil
	}

	return FindBestMove(board, mark)
}

// FindWinningMove returns the first empty cell, in row-major order, that completes a line for mark.
func FindWinningMove(board *entity.Board, mark entity.Mark) (entity.Position, bool) {
	for _, pos := range board.EmptyPositions() {
		wins := false
		_ = board.Probe(pos, mark, func() {
			wins = tictactoe.HasLine(board, mark)
		})

		if wins {
			return pos, true
		}
	}

	return entity.Position{}, false
}

// BotPlayer adapts BotService to tictactoe.Mover.
type BotPlayer struct {
	bot        *BotService
	difficulty entity.Difficulty
}

func (that *BotPlayer) NextMove(_ context.Context, board *entity.Board, mark entity.Mark) (entity.Position, error) {
	return that.bot.SelectMove(board, that.difficulty, mark)
}

func (that *BotPlayer) Difficulty() entity.Difficulty {
	return that.difficulty
}

var _ tictactoe.Mover = (*BotPlayer)(nil)
