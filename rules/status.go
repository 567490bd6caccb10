package rules

import "math/bits"

const (
	// seventyFiveMoveLimit is counted in half-moves.
	seventyFiveMoveLimit = 150
	fivefoldRepetition   = 5

	darkSquares uint64 = 0xAA55AA55AA55AA55
)

// IsCheckmate reports whether the side to move is in check with no legal move.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is not in check and has no
// legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsInsufficientMaterial reports whether neither side can possibly mate.
func (p *Position) IsInsufficientMaterial() bool {
	return p.hasInsufficientMaterial(White) && p.hasInsufficientMaterial(Black)
}

func (p *Position) hasInsufficientMaterial(c Color) bool {
	us, them := &p.board.White, &p.board.Black
	if c == Black {
		us, them = them, us
	}
	if us.Pawns|us.Rooks|us.Queens != 0 {
		return false
	}
	if us.Knights != 0 {
		// A lone knight mates only with help from enemy minor pieces, rooks
		// or pawns blocking the king in.
		return bits.OnesCount64(us.All) <= 2 && them.All&^(them.Kings|them.Queens) == 0
	}
	if us.Bishops != 0 {
		bishops := p.board.White.Bishops | p.board.Black.Bishops
		sameColor := bishops&darkSquares == 0 || bishops&^darkSquares == 0
		pawns := p.board.White.Pawns | p.board.Black.Pawns
		knights := p.board.White.Knights | p.board.Black.Knights
		return sameColor && pawns == 0 && knights == 0
	}
	return true
}

// IsSeventyFiveMoves reports whether seventy-five moves by each side were
// played without a capture or pawn move.
func (p *Position) IsSeventyFiveMoves() bool {
	return p.HalfmoveClock() >= seventyFiveMoveLimit && !p.IsCheckmate()
}

// IsFivefoldRepetition reports whether the current position occurred five
// times since the last irreversible move.
func (p *Position) IsFivefoldRepetition() bool {
	return p.repetitions() >= fivefoldRepetition
}

func (p *Position) repetitions() int {
	target := p.history[len(p.history)-1]
	start := len(p.history) - 1 - p.HalfmoveClock()
	if start < 0 {
		start = 0
	}
	count := 0
	for i := len(p.history) - 1; i >= start; i -= 2 {
		if p.history[i] == target {
			count++
		}
	}
	return count
}

// IsGameOver reports whether the game ended by checkmate, stalemate,
// insufficient material, the seventy-five-move rule or fivefold repetition.
func (p *Position) IsGameOver() bool {
	if !p.HasLegalMoves() {
		return true
	}
	return p.IsInsufficientMaterial() || p.HalfmoveClock() >= seventyFiveMoveLimit || p.IsFivefoldRepetition()
}

// Result returns "1-0", "0-1" or "1/2-1/2" for a finished game and "*"
// otherwise.
func (p *Position) Result() string {
	if p.IsCheckmate() {
		if p.SideToMove().Other() == White {
			return "1-0"
		}
		return "0-1"
	}
	if p.IsGameOver() {
		return "1/2-1/2"
	}
	return "*"
}
