package console

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/pkg"
)

const maxInputLength = 1 << 10

// readLine returns the next input line, or io.EOF once input is exhausted.
// Overlong lines are discarded and the prompt is shown again.
func (that *Console) readLine(prompt string) (string, error) {
	for {
		that.printf("%s", prompt)

		line, err := pkg.ReadLine(that.in, maxInputLength)
		switch {
		case errors.Is(err, pkg.ErrLineTooLong):
			that.println("Input is too long. Please try again.")
			continue
		case errors.Is(err, io.EOF):
			return "", io.EOF
		case err != nil:
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return strings.TrimSpace(line), nil
	}
}

func (that *Console) promptInt(prompt string, lo, hi int) (int, error) {
	for {
		line, err := that.readLine(prompt)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}

		that.printf("Invalid choice. Please enter a number between %d and %d.\n", lo, hi)
	}
}

// promptName asks until a valid name that is not in taken is given.
func (that *Console) promptName(prompt string, taken ...string) (string, error) {
	for {
		name, err := that.readLine(prompt)
		if err != nil {
			return "", err
		}

		if name == "" {
			that.println("Name cannot be empty.")
			continue
		}

		if err = entity.ValidatePlayerName(name); err != nil {
			that.printf("Names can be at most %d characters long.\n", entity.MaxPlayerNameLength)
			continue
		}

		if slices.Contains(taken, name) {
			that.printf("The name %q is already taken.\n", name)
			continue
		}

		return name, nil
	}
}

func (that *Console) promptDifficulty() (entity.Difficulty, error) {
	that.println("Select difficulty:")
	that.println("1. Easy")
	that.println("2. Medium")
	that.println("3. Hard")

	for {
		line, err := that.readLine(fmt.Sprintf("Enter your choice [%s]: ", that.defaultDifficulty))
		if err != nil {
			return 0, err
		}

		if line == "" {
			return that.defaultDifficulty, nil
		}

		difficulty, err := entity.ParseDifficulty(line)
		if err == nil {
			return difficulty, nil
		}

		that.println("Invalid difficulty. Please enter 1, 2 or 3.")
	}
}

func (that *Console) promptConfirm(prompt string) (bool, error) {
	line, err := that.readLine(prompt)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// parsePosition accepts "row col" or "row,col".
func parsePosition(line string) (entity.Position, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return entity.Position{}, fmt.Errorf("expected row and column, got %q", line)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Position{}, fmt.Errorf("invalid row %q: %w", fields[0], err)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Position{}, fmt.Errorf("invalid column %q: %w", fields[1], err)
	}

	return entity.Position{Row: row, Col: col}, nil
}
