package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

const BoardSize = 3

// Position addresses a cell by row and column, both in [0, BoardSize).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) InRange() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Move is a mark placed at a position.
type Move struct {
	Position Position
	Mark     Mark
}

// Board is the 3x3 grid. Cells only ever change from EmptyCell to a player mark,
// except inside Probe, which restores the cell before returning.
type Board struct {
	cells [BoardSize][BoardSize]Mark
}

func NewBoard() *Board {
	return &Board{}
}

// BoardFrom builds a board from explicit rows.
func BoardFrom(rows [BoardSize][BoardSize]Mark) (*Board, error) {
	for r := range rows {
		for c, mark := range rows[r] {
			if mark != EmptyCell && !mark.IsPlayer() {
				return nil, fmt.Errorf("%w: unknown mark %d at (%d,%d)", apperror.ErrInvalidMove, mark, r, c)
			}
		}
	}

	return &Board{cells: rows}, nil
}

// At returns the mark at pos, or EmptyCell when pos is out of range.
func (that *Board) At(pos Position) Mark {
	if !pos.InRange() {
		return EmptyCell
	}

	return that.cells[pos.Row][pos.Col]
}

// IsOccupiable - reports whether pos is on the board and still empty.
func (that *Board) IsOccupiable(pos Position) bool {
	return pos.InRange() && that.cells[pos.Row][pos.Col] == EmptyCell
}

// Place - puts mark on pos. The board is left untouched on error.
func (that *Board) Place(pos Position, mark Mark) error {
	if err := that.validate(pos, mark); err != nil {
		return err
	}

	that.cells[pos.Row][pos.Col] = mark

	return nil
}

// Probe places mark on pos, runs fn and clears the cell again, whatever fn does.
func (that *Board) Probe(pos Position, mark Mark, fn func()) error {
	if err := that.validate(pos, mark); err != nil {
		return err
	}

	that.cells[pos.Row][pos.Col] = mark
	defer func() {
		that.cells[pos.Row][pos.Col] = EmptyCell
	}()

	fn()

	return nil
}

func (that *Board) IsFull() bool {
	for r := range that.cells {
		for _, cell := range that.cells[r] {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// EmptyPositions lists the empty cells in row-major order.
func (that *Board) EmptyPositions() []Position {
	positions := make([]Position, 0, BoardSize*BoardSize)
	for r := range that.cells {
		for c, cell := range that.cells[r] {
			if cell == EmptyCell {
				positions = append(positions, Position{Row: r, Col: c})
			}
		}
	}

	return positions
}

// Rows returns a copy of the grid.
func (that *Board) Rows() [BoardSize][BoardSize]Mark {
	return that.cells
}

func (that *Board) validate(pos Position, mark Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: mark %q is not a player mark", apperror.ErrInvalidMove, mark)
	}

	if !pos.InRange() {
		return fmt.Errorf("%w: position %s is out of range", apperror.ErrInvalidMove, pos)
	}

	if that.cells[pos.Row][pos.Col] != EmptyCell {
		return fmt.Errorf("%w: position %s is already occupied", apperror.ErrInvalidMove, pos)
	}

	return nil
}
