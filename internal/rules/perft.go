package rules

// Perft counts leaf nodes of the legal move tree to the given depth from the
// current position.
func (e *Engine) Perft(depth int) uint64 {
	return perft(e.pos, depth)
}

// PerftDivide returns the perft count below each root move, keyed by UCI.
func (e *Engine) PerftDivide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, c := range e.pos.candidates() {
		next := e.pos
		mv := next.apply(c.from, c.to, c.promo)
		out[mv.UCI()] = perft(next, depth-1)
	}
	return out
}

func perft(p position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	cands := p.candidates()
	if depth == 1 {
		return uint64(len(cands))
	}
	var nodes uint64
	for _, c := range cands {
		next := p
		next.apply(c.from, c.to, c.promo)
		nodes += perft(next, depth-1)
	}
	return nodes
}
