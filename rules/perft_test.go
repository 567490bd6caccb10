package rules_test

import (
	"strings"
	"testing"

	"chess-negamax/rules"
)

const kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func TestPerftInitialPosition(t *testing.T) {
	p := rules.NewPosition()
	startFEN := p.FEN()
	for depth, want := range []uint64{1, 20, 400, 8902} {
		if got := rules.Perft(p, depth); got != want {
			t.Fatalf("perft depth%d: got %d want %d", depth, got, want)
		}
	}
	if p.FEN() != startFEN {
		t.Fatalf("perft left the board modified: %s", p.FEN())
	}
}

func TestPerftKiwipete(t *testing.T) {
	p := mustParse(t, kiwipete)
	if got := rules.Perft(p, 1); got != 48 {
		for _, m := range p.LegalMoves() {
			t.Logf("  %s", rules.MoveString(m))
		}
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	if got := rules.Perft(p, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want %d", got, 2039)
	}
}

func TestPerftSuite(t *testing.T) {
	for _, c := range rules.PerftSuite {
		t.Run(c.Name, func(t *testing.T) {
			p := mustParse(t, c.FEN)
			fen, hash := p.FEN(), p.Hash()
			for i, want := range c.Nodes {
				if got := rules.Perft(p, i+1); got != want {
					t.Fatalf("depth %d: got %d want %d", i+1, got, want)
				}
			}
			if p.FEN() != fen || p.Hash() != hash {
				t.Fatalf("perft left the board modified: %s", p.FEN())
			}
		})
	}
}

func TestKnownPerft(t *testing.T) {
	if n, ok := rules.KnownPerft(kiwipete, 2); !ok || n != 2039 {
		t.Fatalf("kiwipete depth 2: got %d, %v", n, ok)
	}
	// Move counters do not matter.
	if n, ok := rules.KnownPerft(strings.TrimSuffix(rules.StartFEN, " 0 1")+" 3 9", 1); !ok || n != 20 {
		t.Fatalf("start position depth 1: got %d, %v", n, ok)
	}
	if _, ok := rules.KnownPerft(kiwipete, 9); ok {
		t.Fatalf("no published count at depth 9")
	}
	if _, ok := rules.KnownPerft("4k3/8/8/8/8/8/8/4K3 w - - 0 1", 1); ok {
		t.Fatalf("unexpected count for an unlisted position")
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	p := mustParse(t, kiwipete)
	div := rules.PerftDivide(p, 2)
	if len(div) != 48 {
		t.Fatalf("expected 48 root moves, got %d", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 2039 {
		t.Fatalf("divide total %d, want 2039", sum)
	}
}

func BenchmarkPerftStartpos(b *testing.B) {
	p := rules.NewPosition()
	for i := 0; i < b.N; i++ {
		rules.Perft(p, 3)
	}
}
