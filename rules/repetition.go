package rules

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Repetitions compare positions the way the FIDE rules do: an en passant
// square only makes a position different when a pawn can really capture
// there. When dragontoothmg records the square after every double push, such
// keys have the square's contribution removed.
var epAlwaysSet, epHashDelta = enPassantHashing()

// enPassantHashing reports whether dragontoothmg records the en passant
// square after a double push nobody can capture, and the hash difference
// each en passant square makes.
func enPassantHashing() (bool, [64]uint64) {
	b := dragontoothmg.ParseFen("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	for _, m := range b.GenerateLegalMoves() {
		if m.String() == "e2e4" {
			b.Apply(m)
			break
		}
	}
	alwaysSet := strings.Fields(b.ToFen())[3] != "-"

	var delta [64]uint64
	for file := 0; file < 8; file++ {
		white := "4k3/8/8/8/" + rankWithPawn(file, 'P') + "/8/8/4K3 b - "
		black := "4k3/8/8/" + rankWithPawn(file, 'p') + "/8/8/8/4K3 w - "
		files := "abcdefgh"[file : file+1]

		with := dragontoothmg.ParseFen(white + files + "3 0 1")
		without := dragontoothmg.ParseFen(white + "- 0 1")
		delta[16+file] = with.Hash() ^ without.Hash()

		with = dragontoothmg.ParseFen(black + files + "6 0 1")
		without = dragontoothmg.ParseFen(black + "- 0 1")
		delta[40+file] = with.Hash() ^ without.Hash()
	}
	return alwaysSet, delta
}

// rankWithPawn returns the FEN text of a rank holding a single pawn.
func rankWithPawn(file int, pawn byte) string {
	var sb strings.Builder
	if file > 0 {
		sb.WriteByte(byte('0' + file))
	}
	sb.WriteByte(pawn)
	if file < 7 {
		sb.WriteByte(byte('0' + 7 - file))
	}
	return sb.String()
}

// doublePawnPush reports whether m advances a pawn two squares and returns
// the square it passed over.
func (p *Position) doublePawnPush(m Move) (Square, bool) {
	from, to := MoveFrom(m), MoveTo(m)
	if p.ours().Pawns&(uint64(1)<<from) == 0 {
		return 0, false
	}
	if from.File() != to.File() || (to.Rank()-from.Rank() != 2 && from.Rank()-to.Rank() != 2) {
		return 0, false
	}
	return (from + to) / 2, true
}

// repetitionKey returns the key recorded for the current position. epSet
// says whether the board carries ep as its en passant square.
func (p *Position) repetitionKey(ep Square, epSet bool) uint64 {
	h := p.board.Hash()
	if !epSet || p.canCaptureEnPassant(ep) {
		return h
	}
	return h ^ epHashDelta[ep]
}

// canCaptureEnPassant reports whether the side to move has a legal en
// passant capture onto ep.
func (p *Position) canCaptureEnPassant(ep Square) bool {
	pushed := ep + 8
	if ep.Rank() == 5 {
		pushed = ep - 8
	}
	var adjacent uint64
	if ep.File() > 0 {
		adjacent |= uint64(1) << (pushed - 1)
	}
	if ep.File() < 7 {
		adjacent |= uint64(1) << (pushed + 1)
	}
	if p.ours().Pawns&adjacent == 0 {
		return false
	}
	for _, m := range p.LegalMoves() {
		if MoveTo(m) == ep && p.isEnPassant(m) {
			return true
		}
	}
	return false
}
