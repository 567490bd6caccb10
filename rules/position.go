package rules

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Position is a mutable board. Moves are played with Push and taken back
// with Pop; every Push must be matched by exactly one Pop before the
// position is reused by a sibling line.
//
// A Position is not safe for concurrent use.
type Position struct {
	board dragontoothmg.Board

	// undo holds the closures returned by dragontoothmg for every pushed move.
	undo []func()

	// history holds the Zobrist key of every position reached, the root
	// position included, for repetition detection.
	history []uint64
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p, err := ParseFEN(dragontoothmg.Startpos)
	if err != nil {
		panic(err)
	}
	return p
}

// newPosition wraps board. ep is the en passant square named by the FEN, if
// any.
func newPosition(board dragontoothmg.Board, ep Square, hasEP bool) *Position {
	p := &Position{board: board}
	p.history = append(make([]uint64, 0, 64), p.repetitionKey(ep, hasEP))
	return p
}

// LegalMoves returns the legal moves in generator order. The order is stable
// for a given position.
func (p *Position) LegalMoves() []Move {
	return p.board.GenerateLegalMoves()
}

// HasLegalMoves reports whether the side to move has any legal move.
func (p *Position) HasLegalMoves() bool {
	return len(p.board.GenerateLegalMoves()) > 0
}

// IsCapture reports whether m removes an enemy piece, en passant included.
func (p *Position) IsCapture(m Move) bool {
	if p.theirs().All&(uint64(1)<<MoveTo(m)) != 0 {
		return true
	}
	return p.isEnPassant(m)
}

func (p *Position) isEnPassant(m Move) bool {
	from, to := MoveFrom(m), MoveTo(m)
	if from.File() == to.File() {
		return false
	}
	us := p.ours()
	if us.Pawns&(uint64(1)<<from) == 0 {
		return false
	}
	occupied := p.board.White.All | p.board.Black.All
	return occupied&(uint64(1)<<to) == 0
}

// Push plays m. The move must be legal in the current position.
func (p *Position) Push(m Move) {
	ep, double := p.doublePawnPush(m)
	p.undo = append(p.undo, p.board.Apply(m))
	p.history = append(p.history, p.repetitionKey(ep, double && epAlwaysSet))
}

// Pop takes back the last pushed move. It panics when nothing was pushed.
func (p *Position) Pop() {
	n := len(p.undo)
	if n == 0 {
		panic("rules: Pop without matching Push")
	}
	unapply := p.undo[n-1]
	p.undo[n-1] = nil
	p.undo = p.undo[:n-1]
	p.history = p.history[:len(p.history)-1]
	unapply()
}

// Ply returns the number of moves pushed and not yet popped.
func (p *Position) Ply() int { return len(p.undo) }

// Hash returns the incremental Zobrist key of the position.
func (p *Position) Hash() uint64 { return p.board.Hash() }

// SideToMove reports which side is to play.
func (p *Position) SideToMove() Color {
	if p.board.Wtomove {
		return White
	}
	return Black
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.board.OurKingInCheck() }

// HalfmoveClock returns the number of half-moves since the last capture or
// pawn move.
func (p *Position) HalfmoveClock() int { return int(p.board.Halfmoveclock) }

// FullmoveNumber returns the move counter, incremented after Black's move.
func (p *Position) FullmoveNumber() int { return int(p.board.Fullmoveno) }

// PieceCount returns the number of pieces of both sides, kings included.
func (p *Position) PieceCount() int {
	return bits.OnesCount64(p.board.White.All | p.board.Black.All)
}

// PieceAt returns the piece on sq, or false when the square is empty.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	mask := uint64(1) << sq
	switch {
	case p.board.White.All&mask != 0:
		return Piece{Kind: kindAt(&p.board.White, mask), Color: White}, true
	case p.board.Black.All&mask != 0:
		return Piece{Kind: kindAt(&p.board.Black, mask), Color: Black}, true
	}
	return Piece{}, false
}

func kindAt(bb *dragontoothmg.Bitboards, mask uint64) PieceKind {
	switch {
	case bb.Pawns&mask != 0:
		return Pawn
	case bb.Knights&mask != 0:
		return Knight
	case bb.Bishops&mask != 0:
		return Bishop
	case bb.Rooks&mask != 0:
		return Rook
	case bb.Queens&mask != 0:
		return Queen
	case bb.Kings&mask != 0:
		return King
	}
	return NoKind
}

func (p *Position) ours() *dragontoothmg.Bitboards {
	if p.board.Wtomove {
		return &p.board.White
	}
	return &p.board.Black
}

func (p *Position) theirs() *dragontoothmg.Bitboards {
	if p.board.Wtomove {
		return &p.board.Black
	}
	return &p.board.White
}

// ParseMove finds the legal move written as uci (e2e4, e7e8q).
func (p *Position) ParseMove(uci string) (Move, error) {
	uci = strings.ToLower(strings.TrimSpace(uci))
	for _, m := range p.LegalMoves() {
		if m.String() == uci {
			return m, nil
		}
	}
	return NullMove, fmt.Errorf("%w: %q in %s", ErrIllegalMove, uci, p.FEN())
}

// String draws the board, rank 8 first, one character per square.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if file > 0 {
				sb.WriteByte(' ')
			}
			piece, ok := p.PieceAt(Square(rank*8 + file))
			if !ok {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(piece.Letter())
		}
		if rank > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
