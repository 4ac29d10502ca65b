package rules

// pseudoLegal reports whether the piece on from may move to to by its own
// movement rules, ignoring whether that exposes its king.
func (p *position) pseudoLegal(from, to Square) bool {
	return p.reach(from, to, false)
}

// reach is the single geometry table behind both move generation and attack
// detection. With capture set the target is treated as enemy-occupied: pawns
// only take diagonally and castling is never considered. Without it a king is
// never a valid destination.
func (p *position) reach(from, to Square, capture bool) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	pc := p.board.At(from)
	if pc.Empty() {
		return false
	}
	if target := p.board.At(to); !target.Empty() && (target.Color == pc.Color || (!capture && target.Type == King)) {
		return false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	switch pc.Type {
	case Pawn:
		return p.pawnReach(pc, from, to, dr, dc, capture)
	case Knight:
		ar, ac := abs(dr), abs(dc)
		return (ar == 1 && ac == 2) || (ar == 2 && ac == 1)
	case Bishop:
		return abs(dr) == abs(dc) && p.pathClear(from, to)
	case Rook:
		return (dr == 0 || dc == 0) && p.pathClear(from, to)
	case Queen:
		return (abs(dr) == abs(dc) || dr == 0 || dc == 0) && p.pathClear(from, to)
	case King:
		if abs(dr) <= 1 && abs(dc) <= 1 {
			return true
		}
		if capture {
			return false
		}
		return dr == 0 && abs(dc) == 2 && p.canCastle(pc, from, to)
	}
	return false
}

func (p *position) pawnReach(pc Piece, from, to Square, dr, dc int, capture bool) bool {
	dir := pc.Color.forward()
	if capture {
		return dr == dir && abs(dc) == 1
	}

	target := p.board.At(to)
	if dc == 0 {
		if !target.Empty() {
			return false
		}
		if dr == dir {
			return true
		}
		if dr == 2*dir && from.Row == pc.Color.pawnRank() {
			return p.board.At(Square{from.Row + dir, from.Col}).Empty()
		}
		return false
	}

	if abs(dc) != 1 || dr != dir {
		return false
	}
	if !target.Empty() {
		return true
	}
	return p.isEnPassantCapture(pc, from, to)
}

// isEnPassantCapture reports whether a diagonal pawn step onto an empty
// square takes the pawn that just double-stepped past it.
func (p *position) isEnPassantCapture(pc Piece, from, to Square) bool {
	if !p.hasEP || to != p.ep {
		return false
	}
	victim := p.board.At(Square{from.Row, to.Col})
	return victim.Type == Pawn && victim.Color != pc.Color
}

// pathClear reports whether every square strictly between from and to is
// empty. from and to must share a rank, file or diagonal.
func (p *position) pathClear(from, to Square) bool {
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	for sq := (Square{from.Row + dr, from.Col + dc}); sq != to; sq = (Square{sq.Row + dr, sq.Col + dc}) {
		if !p.board.At(sq).Empty() {
			return false
		}
	}
	return true
}
