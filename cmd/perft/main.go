package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	"chess-negamax/rules"
)

func main() {
	fenFlag := flag.String("fen", rules.StartFEN, "position to count")
	depthFlag := flag.Int("depth", 4, "deepest ply to count; every shallower depth is reported too")
	divideFlag := flag.Bool("divide", false, "break the deepest count down by root move")
	suiteFlag := flag.Bool("suite", false, "check every position with published counts instead of -fen")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	stopProfile := func() {}
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		stopProfile = func() {
			pprof.StopCPUProfile()
			f.Close()
		}
	}

	cases := []rules.PerftCase{{Name: "position", FEN: *fenFlag}}
	if *suiteFlag {
		cases = rules.PerftSuite
	}

	failed := false
	for _, c := range cases {
		p, err := rules.ParseFEN(c.FEN)
		if err != nil {
			log.Fatalf("%s: %v", c.Name, err)
		}
		fmt.Printf("%s: %s\n", c.Name, c.FEN)
		if err := count(os.Stdout, p, c.FEN, *depthFlag); err != nil {
			log.Printf("%s: %v", c.Name, err)
			failed = true
		}
		if *divideFlag {
			divide(os.Stdout, p, *depthFlag)
		}
	}
	stopProfile()
	if failed {
		os.Exit(1)
	}
}

// count reports perft for depths 1..maxDepth, comparing against published
// numbers where they exist. The position must come back unchanged.
func count(w io.Writer, p *rules.Position, fen string, maxDepth int) error {
	startFEN, startHash := p.FEN(), p.Hash()
	var mismatches int
	for depth := 1; depth <= maxDepth; depth++ {
		start := time.Now()
		nodes := rules.Perft(p, depth)
		elapsed := time.Since(start)

		status := "-"
		if want, ok := rules.KnownPerft(fen, depth); ok {
			status = "ok"
			if nodes != want {
				status = fmt.Sprintf("MISMATCH want %d", want)
				mismatches++
			}
		}
		fmt.Fprintf(w, "  depth %d  nodes %12d  time %-12v  nps %10.0f  %s\n",
			depth, nodes, elapsed.Round(time.Microsecond), float64(nodes)/elapsed.Seconds(), status)
	}
	if p.FEN() != startFEN || p.Hash() != startHash {
		return fmt.Errorf("position not restored: %s", p.FEN())
	}
	if mismatches > 0 {
		return fmt.Errorf("%d depths disagree with published counts", mismatches)
	}
	return nil
}

func divide(w io.Writer, p *rules.Position, depth int) {
	div := rules.PerftDivide(p, depth)
	lines := make([]string, 0, len(div))
	var total uint64
	for m, n := range div {
		lines = append(lines, fmt.Sprintf("  %s: %d", rules.MoveString(m), n))
		total += n
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "  total: %d\n", total)
}
