package rules

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
	ErrMalformedState   = errors.New("malformed state")
	ErrBadNotation      = errors.New("bad notation")
	ErrInvariant        = errors.New("board invariant violated")
)
