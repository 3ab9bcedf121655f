package apperror

import "errors"

// client input rejections, reported to the offending connection only.
var (
	ErrNoActiveGame        = errors.New("you are not in an active game")
	ErrUnknownPlayer       = errors.New("player not found in game state")
	ErrNotYourTurn         = errors.New("it is not your turn")
	ErrGameFinished        = errors.New("the game has already ended")
	ErrInvalidMove         = errors.New("invalid column or column is full")
	ErrInvalidDisplayName  = errors.New("display name is required and must be at most 32 characters")
	ErrReservedDisplayName = errors.New("display name is reserved")
	ErrAlreadyInGame       = errors.New("player is already in an active game")
	ErrAlreadyQueued       = errors.New("player is already waiting for an opponent")
	ErrNoRecoverableGame   = errors.New("no active or recent game found for this user")
)

var (
	ErrColumnFull    = errors.New("column is full")
	ErrNoValidMove   = errors.New("no valid move available")
	ErrGameNotFound  = errors.New("game not found")
	ErrGameNotEnded  = errors.New("game is not ended")
	ErrNotFound      = errors.New("not found")
	ErrQueueOverflow = errors.New("persistence queue is full")
)
