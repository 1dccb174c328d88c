// Package eval contains the pluggable position evaluators: Classical and Neural.
package eval

import (
	"fmt"

	"github.com/greywing/caissa/pkg/board"
)

// Centipawns is a position or move score, always from White's point of view: positive favors
// White, negative favors Black (spec section 4.5 Evaluation).
type Centipawns int32

const (
	// Mate is the base magnitude used to encode forced-mate scores: a mate found at ply p is
	// reported as Mate-p (or -(Mate-p) for the losing side), so shorter mates always score
	// further from zero than longer ones.
	Mate Centipawns = 100000

	// Contempt is the small bias applied to a draw score, favoring the side it is less
	// comfortable to draw for (spec section 4.6, section 4.7).
	Contempt Centipawns = 12
)

func (c Centipawns) String() string {
	return fmt.Sprintf("%+dcp", c)
}

// Evaluator is a static, pure-function position evaluator: given a position, it returns a
// centipawn score from White's point of view (spec section 4.5).
type Evaluator interface {
	Evaluate(pos *board.Position) Centipawns
}

// PieceValue is the nominal material value of a piece kind, used both by the Classical
// evaluator and by search move ordering (MVV-LVA).
func PieceValue(p board.Piece) Centipawns {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 0
	default:
		return 0
	}
}

// Max returns the larger of two scores.
func Max(a, b Centipawns) Centipawns {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of two scores.
func Min(a, b Centipawns) Centipawns {
	if a < b {
		return a
	}
	return b
}

// DrawScore returns the contempt-adjusted draw score, signed by side to move (spec section
// 4.7): returning a draw is slightly discouraged for the side to move.
func DrawScore(sideToMove board.Color) Centipawns {
	if sideToMove == board.White {
		return -Contempt
	}
	return Contempt
}
