package rules

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// PerftCase is a position with published move-tree sizes: Nodes[i] is the
// perft count at depth i+1.
type PerftCase struct {
	Name  string
	FEN   string
	Nodes []uint64
}

// PerftSuite holds the usual move generator regression positions.
var PerftSuite = []PerftCase{
	{"initial", StartFEN, []uint64{20, 400, 8902, 197281}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039, 97862}},
	{"position 3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238}},
	{"position 4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467}},
	{"position 5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486, 62379}},
}

// KnownPerft looks up the published count for fen at depth. Move counters
// in the FEN are ignored.
func KnownPerft(fen string, depth int) (uint64, bool) {
	key := perftKey(fen)
	for _, c := range PerftSuite {
		if perftKey(c.FEN) == key && depth >= 1 && depth <= len(c.Nodes) {
			return c.Nodes[depth-1], true
		}
	}
	return 0, false
}

func perftKey(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	return perft(&p.board, depth)
}

func perft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += perft(b, depth-1)
		unapply()
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(p *Position, depth int) map[Move]uint64 {
	div := make(map[Move]uint64)
	if depth <= 0 {
		return div
	}
	for _, m := range p.board.GenerateLegalMoves() {
		unapply := p.board.Apply(m)
		div[m] = Perft(p, depth-1)
		unapply()
	}
	return div
}
