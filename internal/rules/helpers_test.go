package rules

import "testing"

func sq(t *testing.T, s string) Square {
	t.Helper()
	v, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return v
}

func fromState(t *testing.T, state string) *Engine {
	t.Helper()
	e := New()
	if err := e.ImportState(state); err != nil {
		t.Fatalf("import %q: %v", state, err)
	}
	return e
}

// play applies UCI moves in order and fails on the first rejection.
func play(t *testing.T, e *Engine, moves ...string) Move {
	t.Helper()
	var last Move
	for _, m := range moves {
		mv, err := e.MoveUCI(m)
		if err != nil {
			t.Fatalf("move %s rejected: %v\n%s", m, err, e.Board())
		}
		last = mv
	}
	return last
}

func squareNames(sqs []Square) map[string]bool {
	out := make(map[string]bool, len(sqs))
	for _, s := range sqs {
		out[s.String()] = true
	}
	return out
}

func kingOf(t *testing.T, e *Engine, c Color) Square {
	t.Helper()
	b := e.Board()
	s, ok := b.findKing(c)
	if !ok {
		t.Fatalf("no %s king", c)
	}
	return s
}
