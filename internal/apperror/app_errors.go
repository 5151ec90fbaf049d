package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInvalidMove       = errors.New("invalid move")
	ErrNoMovesAvailable  = errors.New("no moves available")
	ErrNotFound          = errors.New("not found")
	ErrInvalidPlayerName = errors.New("invalid player name")
	ErrSamePlayerNames   = errors.New("players must have different names")

	ErrPersistenceParse = errors.New("malformed leaderboard record")
	ErrPersistenceWrite = errors.New("failed to write leaderboard")
)
