package apperror

import "errors"

var (
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrInvalidStep   = errors.New("invalid history step")
	ErrGameNotFound  = errors.New("game not found")
	ErrCorruptedGame = errors.New("game state is corrupted")
)
