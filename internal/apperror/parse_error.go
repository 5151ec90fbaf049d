package apperror

import "fmt"

// ParseError describes one leaderboard record that could not be decoded.
// Loaders skip such records instead of aborting.
type ParseError struct {
	Line int
	Err  error
}

func (that *ParseError) Error() string {
	if that.Line > 0 {
		return fmt.Sprintf("%s: line %d: %v", ErrPersistenceParse, that.Line, that.Err)
	}

	return fmt.Sprintf("%s: %v", ErrPersistenceParse, that.Err)
}

func (that *ParseError) Unwrap() error {
	return that.Err
}

func (that *ParseError) Is(target error) bool {
	return target == ErrPersistenceParse
}
