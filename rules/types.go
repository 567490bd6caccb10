package rules

import "github.com/dylhunn/dragontoothmg"

// Move is a dragontoothmg move: from, to and promotion packed in 16 bits.
type Move = dragontoothmg.Move

// NullMove is the zero move. Search uses it to say "no move available".
const NullMove Move = 0

// Color is the side owning a piece or having the move.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind is a colorless piece type. The numbering follows dragontoothmg
// so kinds can index tables shared with the move generator.
type PieceKind uint8

const (
	NoKind PieceKind = PieceKind(dragontoothmg.Nothing)
	Pawn   PieceKind = PieceKind(dragontoothmg.Pawn)
	Knight PieceKind = PieceKind(dragontoothmg.Knight)
	Bishop PieceKind = PieceKind(dragontoothmg.Bishop)
	Rook   PieceKind = PieceKind(dragontoothmg.Rook)
	Queen  PieceKind = PieceKind(dragontoothmg.Queen)
	King   PieceKind = PieceKind(dragontoothmg.King)
)

// Piece is a kind together with its owner.
type Piece struct {
	Kind  PieceKind
	Color Color
}

var pieceLetters = [...]byte{'.', 'p', 'n', 'b', 'r', 'q', 'k'}

// Letter returns the FEN letter of the piece: uppercase for White.
func (p Piece) Letter() byte {
	ch := pieceLetters[p.Kind]
	if p.Color == White && p.Kind != NoKind {
		ch -= 'a' - 'A'
	}
	return ch
}

// Square indexes the board from a1 = 0 to h8 = 63.
type Square uint8

// Mirror flips the square vertically (a1 <-> a8).
func (sq Square) Mirror() Square { return sq ^ 56 }

// File returns 0..7 for files a..h.
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns 0..7 for ranks 1..8.
func (sq Square) Rank() int { return int(sq) >> 3 }

func (sq Square) String() string {
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}

// MoveString renders a move in UCI notation, "0000" for NullMove.
func MoveString(m Move) string {
	if m == NullMove {
		return "0000"
	}
	return m.String()
}

// MoveFrom returns the origin square of m.
func MoveFrom(m Move) Square { return Square(m.From()) }

// MoveTo returns the destination square of m.
func MoveTo(m Move) Square { return Square(m.To()) }
