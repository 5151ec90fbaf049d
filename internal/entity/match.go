package entity

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

var ErrUnknownDifficulty = errors.New("unknown difficulty")

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return DifficultyEasy, nil
	case "medium", "2":
		return DifficultyMedium, nil
	case "hard", "3":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

type ResultKind int

const (
	ResultInProgress ResultKind = iota
	ResultWin
	ResultDraw
)

// MatchResult classifies a board. Winner is set only for ResultWin.
type MatchResult struct {
	Kind   ResultKind
	Winner Mark
}

var (
	InProgress = MatchResult{Kind: ResultInProgress}
	Draw       = MatchResult{Kind: ResultDraw}
)

func WinFor(mark Mark) MatchResult {
	return MatchResult{Kind: ResultWin, Winner: mark}
}

func (that MatchResult) IsFinished() bool {
	return that.Kind != ResultInProgress
}

func (that MatchResult) String() string {
	switch that.Kind {
	case ResultWin:
		return "win(" + that.Winner.String() + ")"
	case ResultDraw:
		return "draw"
	default:
		return "in progress"
	}
}

// Outcome is one participant's view of a finished match.
type Outcome int

const (
	OutcomeWin Outcome = iota + 1
	OutcomeLoss
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type LeaderboardEntry struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
}

// Apply adds one outcome to the entry.
func (that *LeaderboardEntry) Apply(outcome Outcome) error {
	switch outcome {
	case OutcomeWin:
		that.Wins++
	case OutcomeLoss:
		that.Losses++
	case OutcomeDraw:
		that.Draws++
	default:
		return fmt.Errorf("unknown outcome: %d", int(outcome))
	}

	return nil
}

// Validate rejects negative counters, which no sequence of Apply calls can produce.
func (that LeaderboardEntry) Validate() error {
	if err := ValidatePlayerName(that.Name); err != nil {
		return err
	}

	if that.Wins < 0 || that.Losses < 0 || that.Draws < 0 {
		return fmt.Errorf("negative counter for %q", that.Name)
	}

	return nil
}

// MaxPlayerNameLength is the longest accepted name, in characters.
const MaxPlayerNameLength = 64

// ValidatePlayerName rejects names that cannot be stored one record per line.
func ValidatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", apperror.ErrInvalidPlayerName)
	}

	if utf8.RuneCountInString(name) > MaxPlayerNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", apperror.ErrInvalidPlayerName, MaxPlayerNameLength)
	}

	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: name contains a line break", apperror.ErrInvalidPlayerName)
	}

	return nil
}
