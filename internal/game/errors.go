package game

import "errors"

var (
	ErrUnknownClient = errors.New("unknown client")
	ErrWrongColor    = errors.New("wrong color")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotOwner      = errors.New("only the owner can do that")
	ErrGameOver      = errors.New("game is over")
)
