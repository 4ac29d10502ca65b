package main

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestRunCountsStartPosition(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-depth", "3"}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "perft(3) = 8902") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunVerifyKiwipete(t *testing.T) {
	var out, errOut bytes.Buffer
	args := []string{"-state", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w", "-depth", "2", "-verify"}
	if code := run(args, &out, &errOut); code != 0 {
		t.Fatalf("exit %d:\n%s%s", code, out.String(), errOut.String())
	}
	if !strings.Contains(out.String(), "nodes: 2039") || !strings.Contains(out.String(), "matches reference") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-depth", "0"}, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2 for depth 0, got %d", code)
	}
	if code := run([]string{"-state", "nonsense"}, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2 for bad state, got %d", code)
	}
	if code := run([]string{"-nosuchflag"}, &out, &errOut); code != 2 {
		t.Fatalf("expected exit 2 for unknown flag, got %d", code)
	}
}

func TestMismatches(t *testing.T) {
	ours := map[string]uint64{"e2e4": 20, "d2d4": 20, "a2a3": 19}
	ref := map[string]uint64{"e2e4": 20, "d2d4": 21, "h2h3": 20}
	got := mismatches(ours, ref)
	if !slices.Equal(got, []string{"a2a3", "d2d4", "h2h3"}) {
		t.Fatalf("unexpected mismatches %v", got)
	}
}

func TestRunBoardAndDivide(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run([]string{"-depth", "1", "-divide", "-board"}, &out, &errOut); code != 0 {
		t.Fatalf("exit %d: %s", code, errOut.String())
	}
	s := out.String()
	if !strings.Contains(s, "abcdefgh") || !strings.Contains(s, "g1f3: 1") || !strings.Contains(s, "moves: 20 nodes: 20") {
		t.Fatalf("unexpected output %q", s)
	}
}
