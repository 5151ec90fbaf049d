package usecase

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-cli/internal/service"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

// Seat is a named participant before marks are assigned.
type Seat struct {
	Name  string
	Mover tictactoe.Mover
}

// GameManager sets up matches and wires them to the leaderboard.
type GameManager struct {
	logger      *slog.Logger
	leaderboard *Leaderboard
	bot         *service.BotService
	botName     string
}

func NewGameManager(logger *slog.Logger, leaderboard *Leaderboard, bot *service.BotService, botName string) *GameManager {
	return &GameManager{
		logger:      logger,
		leaderboard: leaderboard,
		bot:         bot,
		botName:     botName,
	}
}

func (that *GameManager) BotName() string {
	return that.botName
}

// NewTwoPlayerMatch - first plays X and moves first, second plays O.
func (that *GameManager) NewTwoPlayerMatch(first, second Seat) (*tictactoe.GameController, error) {
	for _, seat := range []Seat{first, second} {
		if err := that.checkNotReserved(seat.Name); err != nil {
			return nil, err
		}
	}

	return that.newMatch(first, second)
}

// NewComputerMatch - the human plays X and moves first against the bot at difficulty.
func (that *GameManager) NewComputerMatch(human Seat, difficulty entity.Difficulty) (*tictactoe.GameController, error) {
	if err := that.checkNotReserved(human.Name); err != nil {
		return nil, err
	}

	controller, err := that.newMatch(human, Seat{Name: that.botName, Mover: that.bot.Player(difficulty)})
	if err != nil {
		return nil, err
	}

	that.logger.Info("computer match created", "match_id", controller.ID(), "difficulty", difficulty.String())

	return controller, nil
}

// checkNotReserved keeps humans out of the computer's leaderboard entry.
func (that *GameManager) checkNotReserved(name string) error {
	if name == that.botName {
		return fmt.Errorf("%w: %q is reserved for the computer", apperror.ErrSamePlayerNames, name)
	}

	return nil
}

func (that *GameManager) newMatch(first, second Seat) (*tictactoe.GameController, error) {
	for _, seat := range []Seat{first, second} {
		if err := entity.ValidatePlayerName(seat.Name); err != nil {
			return nil, fmt.Errorf("failed to create match: %w", err)
		}
	}

	controller, err := tictactoe.NewGameController(that.logger, pkg.GenerateMatchID(), that.leaderboard,
		tictactoe.Participant{Name: first.Name, Mark: entity.PlayerX, Mover: first.Mover},
		tictactoe.Participant{Name: second.Name, Mark: entity.PlayerO, Mover: second.Mover},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	return controller, nil
}
