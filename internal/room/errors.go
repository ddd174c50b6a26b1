package room

import "errors"

// All rejections a request can hit. Each one is recoverable at the API
// boundary and must never take the room down.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoomFull       = errors.New("room full")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidMove    = errors.New("invalid move")
	ErrAlreadyCalled  = errors.New("number already called")
	ErrNoNumbersLeft  = errors.New("no numbers left to call")
	ErrGameOver       = errors.New("game over")

	// ErrCodeSpaceExhausted means code generation ran out of retries.
	// Callers treat this as a configuration failure, not a request error.
	ErrCodeSpaceExhausted = errors.New("could not generate a unique room code")
)
