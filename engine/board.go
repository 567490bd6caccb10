package engine

import "chess-negamax/rules"

// Board is what the search needs from the rules engine. Push and Pop must be
// perfectly paired: every line the search explores is taken back before its
// sibling is tried.
type Board interface {
	LegalMoves() []rules.Move
	IsCapture(m rules.Move) bool
	Push(m rules.Move)
	Pop()
	// IsGameOver reports checkmate, stalemate or a draw by rule.
	IsGameOver() bool
	PieceAt(sq rules.Square) (rules.Piece, bool)
	Hash() uint64
	SideToMove() rules.Color
}

var _ Board = (*rules.Position)(nil)
