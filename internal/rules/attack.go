package rules

// isSquareAttacked reports whether any piece of color by could capture on sq.
// It relies on the pseudo-legal geometry alone so it can be called from the
// legality checks without recursing into them.
func (p *position) isSquareAttacked(sq Square, by Color) bool {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			pc := p.board[row][col]
			if pc.Empty() || pc.Color != by {
				continue
			}
			if p.reach(Square{row, col}, sq, true) {
				return true
			}
		}
	}
	return false
}

func (p *position) inCheck(c Color) bool {
	return p.isSquareAttacked(p.board.kingSquare(c), c.Opposite())
}
