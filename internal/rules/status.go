package rules

// Status summarizes the position for the side to move.
type Status uint8

const (
	StatusActive Status = iota
	StatusCheck
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	}
	return "active"
}

// Over reports whether no further moves are possible.
func (s Status) Over() bool { return s == StatusCheckmate || s == StatusStalemate }

// IsCheckmate reports whether the side to move is in check with no legal move.
func (e *Engine) IsCheckmate() bool {
	return e.check[e.pos.turn] && !e.pos.hasLegalMove(e.pos.turn)
}

// IsStalemate reports whether the side to move is not in check but has no
// legal move.
func (e *Engine) IsStalemate() bool {
	return !e.check[e.pos.turn] && !e.pos.hasLegalMove(e.pos.turn)
}

// Status evaluates check and move availability once.
func (e *Engine) Status() Status {
	check := e.check[e.pos.turn]
	stuck := !e.pos.hasLegalMove(e.pos.turn)
	switch {
	case check && stuck:
		return StatusCheckmate
	case stuck:
		return StatusStalemate
	case check:
		return StatusCheck
	}
	return StatusActive
}

// Outcome returns the PGN result token for the current position.
func (e *Engine) Outcome() string {
	switch e.Status() {
	case StatusCheckmate:
		if e.pos.turn == White {
			return "0-1"
		}
		return "1-0"
	case StatusStalemate:
		return "1/2-1/2"
	}
	return "*"
}
