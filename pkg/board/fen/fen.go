// Package fen reads and writes chess positions in Forsyth-Edwards Notation.
package fen

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/greywing/caissa/pkg/board"
)

// Initial is the FEN for the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned for any malformed FEN string: wrong field count, unknown
// placement character, wrong square count, or a non-integer clock (spec section 7
// InvalidFen).
var ErrInvalidFEN = errors.New("invalid FEN")

// Decode parses a FEN record into a position. The parser is strict on field count (exactly
// six, space-separated) but tolerant of surrounding whitespace (spec section 6 Position
// exchange).
func Decode(s string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: want 6 space-separated fields, got %v: %q", ErrInvalidFEN, len(parts), s)
	}

	pieces, err := decodePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	side, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("%w: invalid active color %q", ErrInvalidFEN, parts[1])
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("%w: invalid castling field %q", ErrInvalidFEN, parts[2])
	}

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square %q: %v", ErrInvalidFEN, parts[3], err)
		}
		ep = sq
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, fmt.Errorf("%w: invalid halfmove clock %q", ErrInvalidFEN, parts[4])
	}
	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, fmt.Errorf("%w: invalid fullmove number %q", ErrInvalidFEN, parts[5])
	}

	pos, err := board.NewPosition(pieces, castling, ep, side, halfmove, fullmove)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return pos, nil
}

// decodePlacement walks the piece-placement field rank by rank, top (rank 8) to bottom
// (rank 1), file a to h within each rank -- the same order as the spec's square numbering
// (square = rank*8+file, rank 0 = top), so the running square index simply counts up.
func decodePlacement(field string) ([]board.Placement, error) {
	var pieces []board.Placement

	sq := board.ZeroSquare
	for _, r := range field {
		switch {
		case r == '/':
			// cosmetic rank separator

		case unicode.IsDigit(r):
			sq += board.Square(r - '0')

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("%w: invalid piece %q in placement %q", ErrInvalidFEN, r, field)
			}
			pieces = append(pieces, board.Placement{Square: sq, Color: color, Piece: piece})
			sq++

		default:
			return nil, fmt.Errorf("%w: invalid character %q in placement %q", ErrInvalidFEN, r, field)
		}
	}
	if sq != board.NumSquares {
		return nil, fmt.Errorf("%w: wrong number of squares in placement %q", ErrInvalidFEN, field)
	}
	return pieces, nil
}

// Encode renders a position in FEN notation.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := board.ZeroRank; r < board.NumRanks; r++ {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := pos.Square(board.NewSquare(f, r))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r < board.NumRanks-1 {
			sb.WriteRune('/')
		}
	}

	castling := pos.Castling().String()
	ep := "-"
	if sq, ok := pos.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(pos.SideToMove()), castling, ep,
		pos.HalfmoveClock(), pos.FullmoveNumber())
}

func parseCastling(s string) (board.Castling, bool) {
	var c board.Castling
	if s == "-" {
		return c, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			c |= board.WhiteKingSideCastle
		case 'Q':
			c |= board.WhiteQueenSideCastle
		case 'k':
			c |= board.BlackKingSideCastle
		case 'q':
			c |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return c, true
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	color := board.White
	if unicode.IsLower(r) {
		color = board.Black
	}
	piece, ok := board.ParsePiece(r)
	return color, piece, ok
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
