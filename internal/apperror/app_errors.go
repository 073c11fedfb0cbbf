package apperror

import "errors"

// Board and game state validation.
var (
	ErrInvalidCell   = errors.New("invalid cell for a cat or the mouse")
	ErrInvalidStatus = errors.New("game status not valid")
	ErrOwnGame       = errors.New("cannot join your own game")
	ErrGameExists    = errors.New("game already exists")
)

// Move rejections. The caller may retry with a different move.
var (
	ErrGameNotActive    = errors.New("game is not active")
	ErrIllegalMove      = errors.New("move not allowed")
	ErrNotAParticipant  = errors.New("player is not a participant of the game")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrGameNotFound     = errors.New("game not found")
	ErrConcurrentUpdate = errors.New("game was updated concurrently")
)
