// Package rules implements the chess rules: move legality, check detection,
// castling, en passant, promotion, game-end detection and a compact
// board+turn snapshot format.
//
// An Engine is a single mutable game. It performs no locking; hosts that
// share one across goroutines must serialize calls themselves.
package rules

// Engine owns the live position, the move ledger and captured material.
type Engine struct {
	pos      position
	history  []Move
	captured Captured
	check    [2]bool
}

// New returns an engine set up in the standard starting position.
func New() *Engine {
	e := &Engine{}
	e.Initialize()
	return e
}

// Initialize resets to the starting position and drops all history.
func (e *Engine) Initialize() {
	e.reset(startingPosition())
}

func (e *Engine) reset(pos position) {
	e.pos = pos
	e.history = nil
	e.captured = Captured{}
	e.refreshChecks()
}

func (e *Engine) refreshChecks() {
	e.check[White] = e.pos.inCheck(White)
	e.check[Black] = e.pos.inCheck(Black)
}

// Board returns a copy of the grid.
func (e *Engine) Board() Board { return e.pos.board }

// Turn returns the side to move.
func (e *Engine) Turn() Color { return e.pos.turn }

// Piece returns the piece on sq (zero Piece if empty or off-board).
func (e *Engine) Piece(sq Square) Piece { return e.pos.board.At(sq) }

// EnPassantTarget returns the square a pawn may capture onto en passant this
// ply, if any.
func (e *Engine) EnPassantTarget() (Square, bool) { return e.pos.ep, e.pos.hasEP }

// PseudoLegal reports whether the piece on from can reach to by its movement
// rules alone, without regard to its own king's safety.
func (e *Engine) PseudoLegal(from, to Square) bool { return e.pos.pseudoLegal(from, to) }

// IsLegalMove reports whether the piece on from may move to to without
// leaving its own king attacked. Turn order is not considered here; MakeMove
// enforces it.
func (e *Engine) IsLegalMove(from, to Square) bool {
	if !from.Valid() || !to.Valid() || e.pos.board.At(from).Empty() {
		return false
	}
	return e.pos.isLegal(from, to)
}

// LegalMoves returns every square the piece on from may legally move to.
func (e *Engine) LegalMoves(from Square) []Square {
	if !from.Valid() || e.pos.board.At(from).Empty() {
		return nil
	}
	return e.pos.legalTargets(from)
}

// AllLegalMoves returns the records of every legal move for the side to move,
// as they would be appended to the history.
func (e *Engine) AllLegalMoves() []Move {
	cands := e.pos.candidates()
	out := make([]Move, 0, len(cands))
	for _, c := range cands {
		scratch := e.pos
		mv := scratch.apply(c.from, c.to, c.promo)
		mv.Check = scratch.inCheck(scratch.turn)
		out = append(out, mv)
	}
	return out
}

// MakeMove validates and executes a move for the side to move. promo selects
// the promotion piece and defaults to a queen when NoPieceType; it is ignored
// for moves that do not promote. Illegal requests return ErrIllegalMove and
// leave the engine unchanged.
func (e *Engine) MakeMove(from, to Square, promo PieceType) (Move, error) {
	if !from.Valid() || !to.Valid() {
		return Move{}, ErrIllegalMove
	}
	pc := e.pos.board.At(from)
	if pc.Empty() || pc.Color != e.pos.turn || !e.pos.isLegal(from, to) {
		return Move{}, ErrIllegalMove
	}
	if !isPromotion(pc, to) {
		promo = NoPieceType
	} else if !validPromotion(promo) {
		return Move{}, ErrInvalidPromotion
	}

	next := e.pos
	mv := next.apply(from, to, promo)
	e.pos = next
	e.refreshChecks()
	mv.Check = e.check[e.pos.turn]

	e.history = append(e.history, mv)
	if mv.IsCapture() {
		if pc.Color == White {
			e.captured.ByWhite = append(e.captured.ByWhite, mv.Captured)
		} else {
			e.captured.ByBlack = append(e.captured.ByBlack, mv.Captured)
		}
	}
	return mv, nil
}

// MoveUCI parses a UCI move string and plays it.
func (e *Engine) MoveUCI(s string) (Move, error) {
	from, to, promo, err := ParseUCI(s)
	if err != nil {
		return Move{}, err
	}
	return e.MakeMove(from, to, promo)
}

// MoveHistory returns a copy of the executed moves, oldest first.
func (e *Engine) MoveHistory() []Move {
	return append([]Move(nil), e.history...)
}

// CapturedPieces returns copies of the material taken by each side.
func (e *Engine) CapturedPieces() Captured {
	return Captured{
		ByWhite: append([]Piece(nil), e.captured.ByWhite...),
		ByBlack: append([]Piece(nil), e.captured.ByBlack...),
	}
}

// IsSquareAttacked reports whether a piece of color by attacks sq.
func (e *Engine) IsSquareAttacked(sq Square, by Color) bool {
	if !sq.Valid() {
		return false
	}
	return e.pos.isSquareAttacked(sq, by)
}

// IsInCheck reports whether c's king is attacked. Colors other than White and
// Black are never in check.
func (e *Engine) IsInCheck(c Color) bool {
	if c != White && c != Black {
		return false
	}
	return e.check[c]
}
