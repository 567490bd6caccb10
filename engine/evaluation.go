package engine

import "chess-negamax/rules"

// Positions with fewer pieces than this, kings included, use the endgame
// king table.
const endgamePieceCount = 10

// PieceValue holds material values in centipawns, indexed by piece kind.
var PieceValue = [7]int{
	rules.Pawn:   100,
	rules.Knight: 320,
	rules.Bishop: 330,
	rules.Rook:   500,
	rules.Queen:  900,
	rules.King:   20000,
}

// Evaluate scores the position from White's perspective: material plus
// piece-square bonuses, positive when White is better. The board is only read.
func Evaluate(b Board) int {
	var pieces [64]rules.Piece
	var squares [64]rules.Square
	count := 0
	for sq := rules.Square(0); sq < 64; sq++ {
		piece, ok := b.PieceAt(sq)
		if !ok {
			continue
		}
		pieces[sq] = piece
		squares[count] = sq
		count++
	}

	kingTable := &PSQT[rules.King]
	if count < endgamePieceCount {
		kingTable = &KingEndgamePSQT
	}

	total := 0
	for _, sq := range squares[:count] {
		total += pieceScore(pieces[sq], sq, kingTable)
	}
	return total
}

// pieceScore returns the signed contribution of one piece. Black reads the
// tables through the vertically mirrored square.
func pieceScore(piece rules.Piece, sq rules.Square, kingTable *[64]int) int {
	table := &PSQT[piece.Kind]
	if piece.Kind == rules.King {
		table = kingTable
	}
	if piece.Color == rules.Black {
		return -(PieceValue[piece.Kind] + table[sq.Mirror()])
	}
	return PieceValue[piece.Kind] + table[sq]
}

// EvaluateRelative returns Evaluate oriented to the side to move.
func EvaluateRelative(b Board) int {
	score := Evaluate(b)
	if b.SideToMove() == rules.Black {
		return -score
	}
	return score
}
