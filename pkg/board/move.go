package board

import "fmt"

// MoveType classifies a move for application and zobrist-update purposes.
type MoveType uint8

const (
	Normal MoveType = iota
	Push            // pawn single push
	Jump            // pawn two-square push
	EnPassant
	KingSideCastle
	QueenSideCastle
	Capture
	Promotion
	CapturePromotion
)

// Move represents a not-necessarily-legal move together with the contextual metadata needed
// to apply it and to order it during search. Promotion is always to Queen, if present -- the
// engine does not represent under-promotion (spec section 1 Non-goals).
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // the moving piece
	Promotion Piece // NoPiece unless this move promotes
	Capture   Piece // NoPiece unless this move captures
}

// IsCapture returns true iff the move captures a piece (including en passant).
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

// IsPromotion returns true iff the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

// IsCastle returns true iff the move is a castle.
func (m Move) IsCastle() bool {
	return m.Type == KingSideCastle || m.Type == QueenSideCastle
}

// IsQuiet returns true iff the move is neither a capture, a promotion, nor a castle -- the
// class of moves eligible for killer/history bonuses and most pruning techniques.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion() && !m.IsCastle()
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move carries only From/To/Promotion -- the contextual fields (Type, Piece,
// Capture) are filled in when the move is matched against the legal move list.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("%w: invalid move '%v'", ErrIllegalMove, str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: invalid from square in '%v': %v", ErrIllegalMove, str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("%w: invalid to square in '%v': %v", ErrIllegalMove, str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("%w: invalid promotion in '%v'", ErrIllegalMove, str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}
	return Move{From: from, To: to}, nil
}

// Equals compares moves by their external contract: from, to and promotion only.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
