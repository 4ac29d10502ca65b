package rules

import "testing"

func TestPerft(t *testing.T) {
	tests := []struct {
		name  string
		state string
		nodes []uint64
	}{
		{"Start", StartState, []uint64{20, 400, 8902}},
		// Castling rights KQkq are inferred from the home squares.
		{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w", []uint64{48, 2039}},
		{"EnPassantEndgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w", []uint64{14, 191, 2812}},
		{"Promotions", "n1n5/PPPk4/8/8/8/8/4Kppp/5N1N b", []uint64{24, 496}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := fromState(t, tt.state)
			for i, want := range tt.nodes {
				depth := i + 1
				if got := e.Perft(depth); got != want {
					t.Fatalf("perft(%d) = %d, want %d", depth, got, want)
				}
			}
		})
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	e := New()
	div := e.PerftDivide(2)
	if len(div) != 20 {
		t.Fatalf("expected 20 root moves, got %d", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 400 {
		t.Fatalf("divide sums to %d, want 400", sum)
	}
	if div["g1f3"] != 20 {
		t.Fatalf("expected 20 replies to g1f3, got %d", div["g1f3"])
	}
	if e.ExportState() != StartState {
		t.Fatalf("perft must not touch the live board")
	}
}
