package rules

// rookSquares returns where the castling rook starts and lands.
func rookSquares(row int, side CastleSide) (from, to Square) {
	if side == KingSide {
		return Square{row, 7}, Square{row, 5}
	}
	return Square{row, 0}, Square{row, 3}
}

func castleSideOf(from, to Square) CastleSide {
	if to.Col > from.Col {
		return KingSide
	}
	return QueenSide
}

// canCastle checks a king's two-square sideways move. A king standing in
// check may not castle, independent of the transit-square test below.
func (p *position) canCastle(king Piece, from, to Square) bool {
	if king.HasMoved || from != (Square{king.Color.backRank(), 4}) || to.Row != from.Row {
		return false
	}

	rookFrom, _ := rookSquares(from.Row, castleSideOf(from, to))
	rook := p.board.At(rookFrom)
	if rook.Type != Rook || rook.Color != king.Color || rook.HasMoved {
		return false
	}

	step := sign(rookFrom.Col - from.Col)
	for col := from.Col + step; col != rookFrom.Col; col += step {
		if !p.board.At(Square{from.Row, col}).Empty() {
			return false
		}
	}

	opp := king.Color.Opposite()
	if p.isSquareAttacked(from, opp) {
		return false
	}
	for col := from.Col + step; ; col += step {
		if p.isSquareAttacked(Square{from.Row, col}, opp) {
			return false
		}
		if col == to.Col {
			break
		}
	}
	return true
}

func isPromotion(pc Piece, to Square) bool {
	return pc.Type == Pawn && to.Row == pc.Color.promotionRank()
}

func validPromotion(t PieceType) bool {
	switch t {
	case NoPieceType, Queen, Rook, Bishop, Knight:
		return true
	}
	return false
}

// apply performs an already validated move on p and returns its record.
// Castling relocates the rook in the same step, en passant removes the pawn
// that was passed, and promotion replaces the pawn (queen when promo is
// NoPieceType). The en-passant target is reset on every move.
func (p *position) apply(from, to Square, promo PieceType) Move {
	pc := p.board.At(from)
	mv := Move{From: from, To: to, Piece: pc, Captured: p.board.At(to)}

	switch pc.Type {
	case Pawn:
		if from.Col != to.Col && mv.Captured.Empty() && p.isEnPassantCapture(pc, from, to) {
			victim := Square{from.Row, to.Col}
			mv.Captured = p.board.At(victim)
			mv.EnPassant = true
			p.board.clear(victim)
		}
	case King:
		if abs(to.Col-from.Col) == 2 {
			mv.Castle = castleSideOf(from, to)
			rookFrom, rookTo := rookSquares(from.Row, mv.Castle)
			rook := p.board.At(rookFrom)
			rook.HasMoved = true
			p.board.clear(rookFrom)
			p.board.set(rookTo, rook)
		}
	}

	moved := pc
	moved.HasMoved = true
	if isPromotion(pc, to) {
		if promo == NoPieceType {
			promo = Queen
		}
		moved.Type = promo
		mv.Promotion = promo
	}
	p.board.clear(from)
	p.board.set(to, moved)

	p.hasEP = false
	if pc.Type == Pawn && abs(to.Row-from.Row) == 2 {
		p.ep = Square{(from.Row + to.Row) / 2, from.Col}
		p.hasEP = true
	}
	p.turn = pc.Color.Opposite()
	return mv
}
