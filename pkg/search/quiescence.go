package search

import (
	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
)

// Quiescence extends the search past the nominal depth limit along "noisy" lines only --
// captures, plus every move when in check -- to avoid misjudging a position in the middle of a
// tactical exchange (spec section 4.6 Quiescence). It always returns a finite score, even past
// the deadline, via the stand-pat cutoff.
func (e *Engine) Quiescence(pos *board.Position, ply int, alpha, beta eval.Centipawns) eval.Centipawns {
	e.Clock.Tick()
	e.Nodes++

	isMax := pos.SideToMove() == board.White
	inCheck := pos.IsChecked(pos.SideToMove())
	legal := pos.LegalMoves()

	if len(legal) == 0 {
		if inCheck {
			if pos.SideToMove() == board.White {
				return -eval.Mate + eval.Centipawns(ply)
			}
			return eval.Mate - eval.Centipawns(ply)
		}
		return e.Eval.Evaluate(pos)
	}

	standPat := e.Eval.Evaluate(pos)

	if !inCheck {
		if isMax {
			if standPat >= beta {
				return standPat
			}
			if standPat > alpha {
				alpha = standPat
			}
		} else {
			if standPat <= alpha {
				return standPat
			}
			if standPat < beta {
				beta = standPat
			}
		}
	}

	if e.Clock.Expired() {
		return standPat
	}

	var moves []board.Move
	if inCheck {
		moves = legal
	} else {
		moves = capturesOnly(legal)
	}
	if len(moves) == 0 {
		return standPat
	}

	ordered := orderMoves(pos, moves, board.Move{}, ply, e.Killers, e.History, false, nil)
	for {
		m, ok := ordered.next()
		if !ok {
			break
		}
		child := pos.ApplyMove(m)
		score := e.Quiescence(child, ply+1, alpha, beta)

		if isMax {
			if score > alpha {
				alpha = score
			}
		} else {
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			break
		}
	}

	if isMax {
		return alpha
	}
	return beta
}

// capturesOnly filters a legal move list down to captures, including en passant and capturing
// promotions -- the "noisy" moves quiescence explores outside of check.
func capturesOnly(moves []board.Move) []board.Move {
	var out []board.Move
	for _, m := range moves {
		if m.IsCapture() {
			out = append(out, m)
		}
	}
	return out
}
