package main

import (
	"slices"

	"github.com/dylhunn/dragontoothmg"
)

// referenceDivide counts leaf nodes below each root move with dragontoothmg.
func referenceDivide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, mv := range b.GenerateLegalMoves() {
		unapply := b.Apply(mv)
		out[mv.String()] = referencePerft(&b, depth-1)
		unapply()
	}
	return out
}

func referencePerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var n uint64
	for _, mv := range moves {
		unapply := b.Apply(mv)
		n += referencePerft(b, depth-1)
		unapply()
	}
	return n
}

// mismatches lists root moves whose counts differ or that only one side found.
func mismatches(ours, ref map[string]uint64) []string {
	var out []string
	for k, n := range ours {
		if r, ok := ref[k]; !ok || r != n {
			out = append(out, k)
		}
	}
	for k := range ref {
		if _, ok := ours[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}
