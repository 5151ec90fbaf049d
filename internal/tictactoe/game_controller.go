package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

var ErrInvalidParticipants = errors.New("invalid participants")

// Mover produces the next position for mark. Human input and the bot both implement it.
type Mover interface {
	NextMove(ctx context.Context, board *entity.Board, mark entity.Mark) (entity.Position, error)
}

type recorder interface {
	Record(ctx context.Context, name string, outcome entity.Outcome) error
}

// Participant is one named side of a match.
type Participant struct {
	Name  string
	Mark  entity.Mark
	Mover Mover
}

// State is either AwaitingMove(Turn) or Finished(Result).
type State struct {
	Turn   entity.Mark
	Result entity.MatchResult
}

func (that State) IsFinished() bool {
	return that.Result.IsFinished()
}

// GameController drives a single match on a board it owns. It is not reusable:
// once finished, a new controller is needed for the next match.
type GameController struct {
	logger *slog.Logger

	id           string
	board        *entity.Board
	participants map[entity.Mark]Participant
	leaderboard  recorder

	turn   entity.Mark
	result entity.MatchResult
	moves  []entity.Move

	onMove func(move entity.Move, participant Participant)
}

func NewGameController(logger *slog.Logger, id string, leaderboard recorder, first, second Participant) (*GameController, error) {
	if first.Mark != entity.PlayerX || second.Mark != entity.PlayerO {
		return nil, fmt.Errorf("%w: first player must be X and second O", ErrInvalidParticipants)
	}

	if first.Mover == nil || second.Mover == nil {
		return nil, fmt.Errorf("%w: every participant needs a mover", ErrInvalidParticipants)
	}

	if first.Name == second.Name {
		return nil, fmt.Errorf("%w: %q", apperror.ErrSamePlayerNames, first.Name)
	}

	return &GameController{
		logger: logger.With("component", "game_controller", "match_id", id),

		id:    id,
		board: entity.NewBoard(),
		participants: map[entity.Mark]Participant{
			first.Mark:  first,
			second.Mark: second,
		},
		leaderboard: leaderboard,

		turn:   entity.PlayerX,
		result: entity.InProgress,
	}, nil
}

func (that *GameController) ID() string {
	return that.id
}

func (that *GameController) State() State {
	if that.result.IsFinished() {
		return State{Result: that.result}
	}

	return State{Turn: that.turn, Result: that.result}
}

// Rows returns a copy of the board for display.
func (that *GameController) Rows() [entity.BoardSize][entity.BoardSize]entity.Mark {
	return that.board.Rows()
}

// Moves returns the moves applied so far, in order.
func (that *GameController) Moves() []entity.Move {
	return append([]entity.Move(nil), that.moves...)
}

func (that *GameController) Participant(mark entity.Mark) Participant {
	return that.participants[mark]
}

// OnMove registers fn to be called after every applied move.
func (that *GameController) OnMove(fn func(move entity.Move, participant Participant)) {
	that.onMove = fn
}

// ApplyMove - places the current mark on pos and advances the state machine.
// An invalid position leaves the state unchanged. When the move finishes the match,
// the result is reported to the leaderboard; a reporting failure is returned but the
// match stays finished.
func (that *GameController) ApplyMove(ctx context.Context, pos entity.Position) error {
	if that.result.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := that.board.Place(pos, that.turn); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	move := entity.Move{Position: pos, Mark: that.turn}
	that.moves = append(that.moves, move)
	that.logger.Debug("move applied", "mark", move.Mark.String(), "position", pos.String())

	if that.onMove != nil {
		that.onMove(move, that.participants[move.Mark])
	}

	result := Evaluate(that.board)
	if !result.IsFinished() {
		that.turn = that.turn.Opponent()
		return nil
	}

	that.result = result
	that.turn = entity.EmptyCell
	that.logger.Info("match finished", "result", result.String(), "moves", len(that.moves))

	if err := that.report(ctx, result); err != nil {
		return fmt.Errorf("failed to report result: %w", err)
	}

	return nil
}

// Play - asks the participants for moves until the match is finished.
// Rejected positions are requested again from the same participant.
func (that *GameController) Play(ctx context.Context) (entity.MatchResult, error) {
	for !that.result.IsFinished() {
		if err := ctx.Err(); err != nil {
			return that.result, fmt.Errorf("match interrupted: %w", err)
		}

		participant := that.participants[that.turn]

		pos, err := participant.Mover.NextMove(ctx, that.board, that.turn)
		if err != nil {
			return that.result, fmt.Errorf("failed to get move from %s: %w", participant.Name, err)
		}

		err = that.ApplyMove(ctx, pos)
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.logger.Warn("move rejected", "player", participant.Name, "position", pos.String(), "error", err)
			continue
		}

		if err != nil {
			return that.result, err
		}
	}

	return that.result, nil
}

func (that *GameController) report(ctx context.Context, result entity.MatchResult) error {
	if that.leaderboard == nil {
		return nil
	}

	var errs []error
	for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
		participant := that.participants[mark]
		if err := that.leaderboard.Record(ctx, participant.Name, outcomeFor(result, mark)); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func outcomeFor(result entity.MatchResult, mark entity.Mark) entity.Outcome {
	switch {
	case result.Kind == entity.ResultDraw:
		return entity.OutcomeDraw
	case result.Winner == mark:
		return entity.OutcomeWin
	default:
		return entity.OutcomeLoss
	}
}
