package rules

import "fmt"

// Board is the 8x8 grid indexed [row][col]. It is a value type: assigning a
// Board yields an independent copy.
type Board [8][8]Piece

var backRow = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingBoard returns the standard initial layout.
func StartingBoard() Board {
	var b Board
	for col, t := range backRow {
		b[White.backRank()][col] = Piece{Type: t, Color: White}
		b[Black.backRank()][col] = Piece{Type: t, Color: Black}
		b[White.pawnRank()][col] = Piece{Type: Pawn, Color: White}
		b[Black.pawnRank()][col] = Piece{Type: Pawn, Color: Black}
	}
	return b
}

// At returns the piece on sq, or the zero Piece for empty or off-board squares.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) { b[sq.Row][sq.Col] = p }

func (b *Board) clear(sq Square) { b[sq.Row][sq.Col] = Piece{} }

func (b *Board) findKing(c Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p.Type == King && p.Color == c {
				return Square{row, col}, true
			}
		}
	}
	return Square{}, false
}

// kingSquare panics when c has no king; only a board corrupted from outside
// the engine's mutators can get here.
func (b *Board) kingSquare(c Color) Square {
	sq, ok := b.findKing(c)
	if !ok {
		panic(fmt.Errorf("%w: no %s king on board", ErrInvariant, c))
	}
	return sq
}

// onStartSquare reports whether p stands where the standard layout puts it.
func onStartSquare(p Piece, sq Square) bool {
	switch {
	case p.Empty():
		return false
	case p.Type == Pawn:
		return sq.Row == p.Color.pawnRank()
	default:
		return sq.Row == p.Color.backRank() && backRow[sq.Col] == p.Type
	}
}

// position is everything legality depends on. Engines simulate moves on
// copies of it; the live board is never mutated speculatively.
type position struct {
	board Board
	turn  Color
	ep    Square
	hasEP bool
}

func startingPosition() position {
	return position{board: StartingBoard(), turn: White}
}
