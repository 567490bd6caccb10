package main

import (
	"bytes"
	"strings"
	"testing"

	"chess-negamax/engine"
)

func runUCI(t *testing.T, input string) []string {
	t.Helper()
	var out bytes.Buffer
	u := newUCI(&out, engine.DefaultOptions(), 2)
	if err := u.loop(strings.NewReader(input)); err != nil {
		t.Fatalf("loop: %v", err)
	}
	return strings.Split(strings.TrimSpace(out.String()), "\n")
}

func lastLine(lines []string) string {
	return lines[len(lines)-1]
}

func TestHandshake(t *testing.T) {
	lines := runUCI(t, "uci\nisready\nquit\n")
	if lines[len(lines)-2] != "uciok" || lastLine(lines) != "readyok" {
		t.Fatalf("unexpected handshake: %q", lines)
	}
}

func TestGoReturnsBestMove(t *testing.T) {
	lines := runUCI(t, "position fen 7k/8/8/3q4/8/8/8/3R2K1 w - - 0 1\ngo depth 1\n")
	if got := lastLine(lines); got != "bestmove d1d5" {
		t.Fatalf("expected bestmove d1d5, got %q", got)
	}
	if !strings.HasPrefix(lines[len(lines)-2], "info depth 1 score cp ") {
		t.Fatalf("missing info line: %q", lines)
	}
}

func TestGoDefaultDepthIgnoresClock(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e4 e7e5\ngo wtime 1000 btime 1000 winc 10 binc 10\n")
	if !strings.HasPrefix(lines[len(lines)-2], "info depth 2 ") {
		t.Fatalf("expected the default depth, got %q", lines)
	}
	if !strings.HasPrefix(lastLine(lines), "bestmove ") || lastLine(lines) == "bestmove 0000" {
		t.Fatalf("expected a move, got %q", lastLine(lines))
	}
}

func TestGoWithoutLegalMoves(t *testing.T) {
	lines := runUCI(t, "position startpos moves f2f3 e7e5 g2g4 d8h4\ngo depth 2\n")
	if got := lastLine(lines); got != "bestmove 0000" {
		t.Fatalf("mated side should answer 0000, got %q", got)
	}
}

func TestGoInvalidDepth(t *testing.T) {
	lines := runUCI(t, "go depth 0\n")
	if !strings.Contains(lines[0], "search failed") || lastLine(lines) != "bestmove 0000" {
		t.Fatalf("unexpected output: %q", lines)
	}
}

func TestPositionRejectsBadInput(t *testing.T) {
	lines := runUCI(t, "position fen not a fen\nposition startpos moves e2e5\nd\n")
	if !strings.HasPrefix(lines[0], "info string ") {
		t.Fatalf("bad fen not reported: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "info string Move e2e5 not found") {
		t.Fatalf("illegal move not reported: %q", lines[1])
	}
	if lines[2] != "r n b q k b n r" {
		t.Fatalf("board should still be the start position, got %q", lines[2])
	}
}

func TestPositionWithIllegalMoveKeepsPreviousGame(t *testing.T) {
	lines := runUCI(t, "position startpos moves e2e4\nposition startpos moves d2d4 d7d5 d4d6\nd\n")
	if !strings.HasPrefix(lines[0], "info string Move d4d6 not found") {
		t.Fatalf("illegal move not reported: %q", lines[0])
	}
	// Board after 1.e4, rank 8 first: the d-pawns are untouched.
	if lines[1] != "r n b q k b n r" || lines[2] != "p p p p p p p p" {
		t.Fatalf("black side changed: %q", lines[1:3])
	}
	if lines[5] != ". . . . P . . ." || lines[7] != "P P P P . P P P" {
		t.Fatalf("expected the game after e2e4, got %q", lines[1:9])
	}
}

func TestUnknownCommand(t *testing.T) {
	lines := runUCI(t, "hello world\n")
	if lines[0] != "info string Unknown command: hello world" {
		t.Fatalf("unexpected output: %q", lines[0])
	}
}

func TestNewGameResetsSession(t *testing.T) {
	var out bytes.Buffer
	u := newUCI(&out, engine.DefaultOptions(), 2)
	if err := u.loop(strings.NewReader("go depth 2\n")); err != nil {
		t.Fatal(err)
	}
	if u.searcher.TT().Len() == 0 {
		t.Fatalf("search should fill the table")
	}
	if err := u.loop(strings.NewReader("ucinewgame\n")); err != nil {
		t.Fatal(err)
	}
	if u.searcher.TT().Len() != 0 {
		t.Fatalf("ucinewgame should clear the table")
	}
}

func BenchmarkGoDepth3(b *testing.B) {
	for i := 0; i < b.N; i++ {
		var out bytes.Buffer
		u := newUCI(&out, engine.DefaultOptions(), 3)
		if err := u.loop(strings.NewReader("position startpos\ngo\n")); err != nil {
			b.Fatal(err)
		}
	}
}
