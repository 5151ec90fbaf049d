package console

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// humanPlayer reads moves from the console. Malformed, out-of-range and occupied
// positions are re-prompted here; the board is never changed by this type.
type humanPlayer struct {
	console *Console
	name    string
}

func (that *humanPlayer) NextMove(ctx context.Context, board *entity.Board, mark entity.Mark) (entity.Position, error) {
	that.console.renderBoard(board.Rows())

	for {
		if err := ctx.Err(); err != nil {
			return entity.Position{}, err
		}

		line, err := that.console.readLine(that.name + " (" + mark.String() + "), enter your move (row column): ")
		if err != nil {
			return entity.Position{}, err
		}

		pos, err := parsePosition(line)
		if err != nil || !board.IsOccupiable(pos) {
			that.console.println("Invalid move. Please try again.")
			continue
		}

		return pos, nil
	}
}
