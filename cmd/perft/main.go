// Command perft counts move-generation leaf nodes for a position and can
// cross-check the per-move counts against an independent move generator.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"arcadechess/internal/rules"

	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fs.SetOutput(stderr)
	state := fs.String("state", rules.StartState, "position as placement and side to move")
	depth := fs.Int("depth", 3, "search depth in plies")
	divide := fs.Bool("divide", false, "print the node count below each root move")
	verify := fs.Bool("verify", false, "compare root move counts against dragontoothmg")
	board := fs.Bool("board", false, "print the board before counting")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *depth < 1 {
		fmt.Fprintln(stderr, "depth must be at least 1")
		return 2
	}

	e := rules.New()
	if err := e.ImportState(*state); err != nil {
		fmt.Fprintf(stderr, "bad state: %v\n", err)
		return 2
	}
	if *board {
		fmt.Fprint(stdout, e.Board())
		fmt.Fprintf(stdout, "%s to move\n\n", e.Turn())
	}

	start := time.Now()
	if !*divide && !*verify {
		n := e.Perft(*depth)
		fmt.Fprintf(stdout, "perft(%d) = %d (%s)\n", *depth, n, time.Since(start).Round(time.Millisecond))
		return 0
	}

	ours := e.PerftDivide(*depth)
	var ref map[string]uint64
	if *verify {
		ref = referenceDivide(e.FEN(), *depth)
	}

	keys := make([]string, 0, len(ours))
	for k := range ours {
		keys = append(keys, k)
	}
	for k := range ref {
		if _, ok := ours[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	bad := color.New(color.FgRed, color.Bold).SprintFunc()
	good := color.New(color.FgGreen).SprintFunc()

	var total uint64
	for _, k := range keys {
		total += ours[k]
		if ref == nil {
			fmt.Fprintf(stdout, "%s: %d\n", k, ours[k])
			continue
		}
		ourN, ourOK := ours[k]
		refN, refOK := ref[k]
		switch {
		case !ourOK:
			fmt.Fprintf(stdout, "%s: %s\n", k, bad(fmt.Sprintf("missing (reference %d)", refN)))
		case !refOK:
			fmt.Fprintf(stdout, "%s: %s\n", k, bad(fmt.Sprintf("%d (not in reference)", ourN)))
		case ourN != refN:
			fmt.Fprintf(stdout, "%s: %s\n", k, bad(fmt.Sprintf("%d (reference %d)", ourN, refN)))
		default:
			fmt.Fprintf(stdout, "%s: %d\n", k, ourN)
		}
	}
	fmt.Fprintf(stdout, "\nmoves: %d nodes: %d (%s)\n", len(ours), total, time.Since(start).Round(time.Millisecond))

	if ref != nil {
		if diff := mismatches(ours, ref); len(diff) > 0 {
			fmt.Fprintln(stdout, bad(fmt.Sprintf("%d root moves disagree", len(diff))))
			return 1
		}
		fmt.Fprintln(stdout, good("matches reference"))
	}
	return 0
}
