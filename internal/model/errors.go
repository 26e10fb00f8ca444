package model

import "errors"

var (
	// ErrOutOfRange means a coordinate outside the 8x8 board was dereferenced.
	// It signals a caller bug, never a user mistake.
	ErrOutOfRange = errors.New("coordinate out of range")

	ErrInvalidToken  = errors.New("invalid square token")
	ErrInvalidLayout = errors.New("board layout must be 8x8")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrGameFull      = errors.New("game is full")
	ErrNotInGame     = errors.New("player not in game")
	ErrNotYourTurn   = errors.New("not your turn")

	ErrDuplicateConnection = errors.New("connection already exists")
)
