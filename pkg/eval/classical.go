package eval

import "github.com/greywing/caissa/pkg/board"

// bishopPairBonus rewards holding both bishops, a small but well-known structural advantage.
const bishopPairBonus Centipawns = 30

// tempoBonus rewards the side to move for having the initiative.
const tempoBonus Centipawns = 8

// mobilityWeight scales the legal-move-count differential.
const mobilityWeight Centipawns = 2

// Classical is a hand-tuned evaluator: material, piece-square placement, mobility, tempo, and
// the bishop pair, all from White's point of view (spec section 4.5).
type Classical struct{}

func (Classical) Evaluate(pos *board.Position) Centipawns {
	var score Centipawns

	var whiteBishops, blackBishops int
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		color, piece, ok := pos.Square(sq)
		if !ok {
			continue
		}

		value := PieceValue(piece) + Centipawns(pstValue(color, piece, sq))
		if color == board.White {
			score += value
		} else {
			score -= value
		}
		if piece == board.Bishop {
			if color == board.White {
				whiteBishops++
			} else {
				blackBishops++
			}
		}
	}

	if whiteBishops >= 2 {
		score += bishopPairBonus
	}
	if blackBishops >= 2 {
		score -= bishopPairBonus
	}

	score += mobilityWeight * Centipawns(countLegalMoves(pos, board.White)-countLegalMoves(pos, board.Black))

	if pos.SideToMove() == board.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}

	return score
}

// countLegalMoves returns the number of legal moves available to color in pos, regardless of
// whose turn it actually is.
func countLegalMoves(pos *board.Position, color board.Color) int {
	if pos.SideToMove() == color {
		return len(pos.LegalMoves())
	}
	return len(pos.NullMove().LegalMoves())
}
