package rules

// wouldExposeKing plays the move on a scratch copy of p and reports whether
// the mover's king is attacked afterwards.
func (p *position) wouldExposeKing(from, to Square) bool {
	scratch := *p
	mover := scratch.board.At(from).Color
	scratch.apply(from, to, Queen)
	return scratch.inCheck(mover)
}

// isLegal is pseudoLegal plus the self-check test, for the piece's own side.
func (p *position) isLegal(from, to Square) bool {
	return p.pseudoLegal(from, to) && !p.wouldExposeKing(from, to)
}

func (p *position) legalTargets(from Square) []Square {
	var out []Square
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			to := Square{row, col}
			if p.isLegal(from, to) {
				out = append(out, to)
			}
		}
	}
	return out
}

// hasLegalMove short-circuits on the first legal move found for c.
func (p *position) hasLegalMove(c Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Square{row, col}
			pc := p.board.At(from)
			if pc.Empty() || pc.Color != c {
				continue
			}
			for r := 0; r < 8; r++ {
				for cc := 0; cc < 8; cc++ {
					if p.isLegal(from, Square{r, cc}) {
						return true
					}
				}
			}
		}
	}
	return false
}

// candidate is a move request before execution.
type candidate struct {
	from, to Square
	promo    PieceType
}

var promotionChoices = [...]PieceType{Queen, Rook, Bishop, Knight}

// candidates lists every legal move of the side to move, one entry per
// promotion choice.
func (p *position) candidates() []candidate {
	var out []candidate
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Square{row, col}
			pc := p.board.At(from)
			if pc.Empty() || pc.Color != p.turn {
				continue
			}
			for _, to := range p.legalTargets(from) {
				if !isPromotion(pc, to) {
					out = append(out, candidate{from: from, to: to})
					continue
				}
				for _, t := range promotionChoices {
					out = append(out, candidate{from: from, to: to, promo: t})
				}
			}
		}
	}
	return out
}
