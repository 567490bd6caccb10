package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// StartFEN is the standard initial position.
const StartFEN = dragontoothmg.Startpos

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrIllegalMove = errors.New("illegal move")
)

// ParseFEN sets up a position from a FEN string. The half-move and full-move
// fields may be omitted.
func ParseFEN(fen string) (p *Position, err error) {
	fields := strings.Fields(fen)
	if err := validateFEN(fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %q", ErrInvalidFEN, err, fen)
	}
	switch len(fields) {
	case 4:
		fields = append(fields, "0", "1")
	case 5:
		fields = append(fields, "1")
	}

	// dragontoothmg panics on input it cannot read.
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("%w: %v: %q", ErrInvalidFEN, r, fen)
		}
	}()
	var ep Square
	hasEP := fields[3] != "-"
	if hasEP {
		ep = Square(int(fields[3][1]-'1')*8 + int(fields[3][0]-'a'))
	}
	return newPosition(dragontoothmg.ParseFen(strings.Join(fields, " ")), ep, hasEP), nil
}

func validateFEN(fields []string) error {
	if len(fields) < 4 || len(fields) > 6 {
		return errors.New("expected 4 to 6 fields")
	}
	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return errors.New("incorrect number of ranks")
	}
	var kings [2]int
	for _, rank := range ranks {
		files := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				files += int(ch - '0')
			case strings.ContainsRune("pnbrqPNBRQ", ch):
				files++
			case ch == 'K':
				kings[White]++
				files++
			case ch == 'k':
				kings[Black]++
				files++
			default:
				return fmt.Errorf("unrecognized piece character %q", ch)
			}
		}
		if files != 8 {
			return errors.New("rank does not describe eight squares")
		}
	}
	if kings[White] != 1 || kings[Black] != 1 {
		return errors.New("each side needs exactly one king")
	}
	if fields[1] != "w" && fields[1] != "b" {
		return fmt.Errorf("bad side to move %q", fields[1])
	}
	if fields[2] != "-" && strings.Trim(fields[2], "KQkq") != "" {
		return fmt.Errorf("bad castling field %q", fields[2])
	}
	if ep := fields[3]; ep != "-" {
		if len(ep) != 2 || ep[0] < 'a' || ep[0] > 'h' || (ep[1] != '3' && ep[1] != '6') {
			return fmt.Errorf("bad en passant square %q", ep)
		}
	}
	return nil
}

// FEN renders the position.
func (p *Position) FEN() string {
	return p.board.ToFen()
}

// Mirror returns the position flipped vertically with colors swapped: every
// white piece on sq becomes a black piece on sq^56 and vice versa. Side to
// move, castling rights and the en passant square follow.
func Mirror(p *Position) (*Position, error) {
	fields := strings.Fields(p.FEN())
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFEN, p.FEN())
	}

	ranks := strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))

	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}

	if fields[2] != "-" {
		var castling strings.Builder
		swapped := swapCase(fields[2])
		for _, ch := range "KQkq" {
			if strings.ContainsRune(swapped, ch) {
				castling.WriteRune(ch)
			}
		}
		fields[2] = castling.String()
	}

	if ep := fields[3]; ep != "-" && len(ep) == 2 {
		fields[3] = string([]byte{ep[0], '1' + '8' - ep[1]})
	}
	return ParseFEN(strings.Join(fields, " "))
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return r
	}, s)
}
