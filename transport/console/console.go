package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-cli/internal/usecase"
)

const (
	choicePlayFriend = iota + 1
	choicePlayComputer
	choiceLeaderboard
	choiceReset
	choiceHelp
	choiceExit
)

type gameManager interface {
	BotName() string
	NewTwoPlayerMatch(first, second usecase.Seat) (*tictactoe.GameController, error)
	NewComputerMatch(human usecase.Seat, difficulty entity.Difficulty) (*tictactoe.GameController, error)
}

type leaderboard interface {
	Snapshot() []entity.LeaderboardEntry
	Reset(ctx context.Context) error
}

// Console is the interactive text front end: menu, prompts and board rendering.
type Console struct {
	logger *slog.Logger

	in     *bufio.Reader
	out    io.Writer
	styles styles

	manager           gameManager
	leaderboard       leaderboard
	defaultDifficulty entity.Difficulty
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, manager gameManager, leaderboard leaderboard, defaultDifficulty entity.Difficulty) *Console {
	return &Console{
		logger: logger.With("component", "console"),

		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(out),

		manager:           manager,
		leaderboard:       leaderboard,
		defaultDifficulty: defaultDifficulty,
	}
}

// Run shows the main menu until the user exits or input ends.
func (that *Console) Run(ctx context.Context) error {
	that.println("Welcome to Tic-Tac-Toe!")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		that.showMainMenu()

		choice, err := that.promptInt("Enter your choice: ", choicePlayFriend, choiceExit)
		if err != nil {
			return that.finish(err)
		}

		switch choice {
		case choicePlayFriend:
			err = that.playAgainstFriend(ctx)
		case choicePlayComputer:
			err = that.playAgainstComputer(ctx)
		case choiceLeaderboard:
			that.showLeaderboard()
		case choiceReset:
			err = that.resetLeaderboard(ctx)
		case choiceHelp:
			that.showHelp()
		case choiceExit:
			return that.finish(nil)
		}

		if err != nil {
			return that.finish(err)
		}
	}
}

func (that *Console) finish(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	that.println("Thanks for playing!")

	return nil
}

func (that *Console) showMainMenu() {
	that.println("")
	that.println(that.styles.header("===== TIC-TAC-TOE ====="))
	that.println("1. Play against a friend")
	that.println("2. Play against the computer")
	that.println("3. Show leaderboard")
	that.println("4. Reset leaderboard")
	that.println("5. Help")
	that.println("6. Exit")
}

func (that *Console) playAgainstFriend(ctx context.Context) error {
	first, err := that.promptName("Enter name for Player 1 (X): ", that.manager.BotName())
	if err != nil {
		return err
	}

	second, err := that.promptName("Enter name for Player 2 (O): ", that.manager.BotName(), first)
	if err != nil {
		return err
	}

	match, err := that.manager.NewTwoPlayerMatch(
		usecase.Seat{Name: first, Mover: &humanPlayer{console: that, name: first}},
		usecase.Seat{Name: second, Mover: &humanPlayer{console: that, name: second}},
	)
	if err != nil {
		return fmt.Errorf("failed to start match: %w", err)
	}

	return that.play(ctx, match)
}

func (that *Console) playAgainstComputer(ctx context.Context) error {
	name, err := that.promptName("Enter your name (X): ", that.manager.BotName())
	if err != nil {
		return err
	}

	difficulty, err := that.promptDifficulty()
	if err != nil {
		return err
	}

	match, err := that.manager.NewComputerMatch(usecase.Seat{Name: name, Mover: &humanPlayer{console: that, name: name}}, difficulty)
	if err != nil {
		return fmt.Errorf("failed to start match: %w", err)
	}

	botName := that.manager.BotName()
	match.OnMove(func(move entity.Move, participant tictactoe.Participant) {
		if participant.Name == botName {
			that.printf("%s (%s) plays row %d, column %d.\n", botName, move.Mark, move.Position.Row, move.Position.Col)
		}
	})

	return that.play(ctx, match)
}

func (that *Console) play(ctx context.Context, match *tictactoe.GameController) error {
	log := that.logger.With("method", "play", "match_id", match.ID())

	result, err := match.Play(ctx)

	if result.IsFinished() {
		that.renderBoard(match.Rows())
		that.printResult(match, result)
	}

	switch {
	case errors.Is(err, apperror.ErrPersistenceWrite):
		log.Error("result could not be saved", "error", err)
		that.println("Warning: the leaderboard could not be saved. Results are kept for this session.")
		return nil
	case err != nil:
		return err
	}

	return nil
}

func (that *Console) printResult(match *tictactoe.GameController, result entity.MatchResult) {
	if result.Kind == entity.ResultDraw {
		that.println(that.styles.banner("It's a draw!"))
		return
	}

	winner := match.Participant(result.Winner)
	that.println(that.styles.banner(fmt.Sprintf("%s (%s) wins!", winner.Name, result.Winner)))
}

func (that *Console) showLeaderboard() {
	entries := that.leaderboard.Snapshot()
	if len(entries) == 0 {
		that.println("No games recorded yet.")
		return
	}

	that.renderLeaderboard(entries)
}

func (that *Console) resetLeaderboard(ctx context.Context) error {
	confirmed, err := that.promptConfirm("Are you sure you want to reset the leaderboard? (y/N): ")
	if err != nil {
		return err
	}

	if !confirmed {
		that.println("Reset cancelled.")
		return nil
	}

	if err = that.leaderboard.Reset(ctx); err != nil {
		that.logger.Error("failed to reset leaderboard", "error", err)
		that.println("Warning: the saved leaderboard could not be cleared.")
		return nil
	}

	that.println("Leaderboard has been reset.")

	return nil
}

func (that *Console) showHelp() {
	that.println("")
	that.println("How to play:")
	that.println("- Players take turns placing X and O on a 3x3 board. X always moves first.")
	that.println("- Enter a move as a row and a column, each from 0 to 2, e.g. \"1 2\".")
	that.println("- Three marks in a row, column or diagonal win. A full board without a line is a draw.")
	that.println("- The computer plays O. Easy mostly plays at random, medium wins or blocks")
	that.println("  when it can, hard never loses.")
	that.println("- Every finished match updates the leaderboard.")
}

func (that *Console) println(s string) {
	fmt.Fprintln(that.out, s)
}

func (that *Console) printf(format string, args ...any) {
	fmt.Fprintf(that.out, format, args...)
}
