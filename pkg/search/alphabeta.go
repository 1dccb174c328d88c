package search

import (
	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
)

// futilityMargin is the centipawn cushion added to a depth-1 static evaluation before deciding
// a quiet move cannot possibly matter (spec section 4.6 Futility pruning: "margin ~200-250cp").
const futilityMargin eval.Centipawns = 225

// lateMovePruningIndex bounds how many quiet moves are searched at shallow depth before the
// rest of the list is skipped outright (spec section 4.6 Late-move pruning).
const lateMovePruningIndex = 8

// lmrMinIndex and lmrMinDepth gate late-move reduction; lmrDeepIndex selects the larger
// reduction for moves ordered very late (spec section 4.6 Late-move reduction).
const (
	lmrMinIndex   = 6
	lmrMinDepth   = 4
	lmrDeepIndex  = 10
)

// Engine holds everything alpha-beta needs across one search: the evaluator, the transposition
// table, move-ordering state, and the cooperative clock. None of it is safe for concurrent use
// (spec section 5: single-threaded, cooperative).
type Engine struct {
	Zobrist *board.ZobristTable
	Eval    eval.Evaluator
	TT      *TranspositionTable
	Killers *Killers
	History *History
	Clock   *Clock

	Nodes uint64

	// Path tracks how many times each position key has been visited along the current search
	// path, seeded by IterativeDeepening with the root position's own key (spec section 4.6
	// Path-local repetition). Positions from the game before the root are not counted.
	Path map[board.ZobristHash]int
}

// NewEngine constructs an Engine ready to search, with fresh killer/history tables.
func NewEngine(zobrist *board.ZobristTable, ev eval.Evaluator, tt *TranspositionTable) *Engine {
	return &Engine{
		Zobrist: zobrist,
		Eval:    ev,
		TT:      tt,
		Killers: &Killers{},
		History: &History{},
		Clock:   &Clock{},
		Path:    map[board.ZobristHash]int{},
	}
}

// AlphaBeta searches pos to depth plies and returns a score always from White's point of view
// (spec section 4.6). ply is the distance from the search root, used to prefer shorter mates and
// to index the killer table.
func (e *Engine) AlphaBeta(pos *board.Position, depth, ply int, alpha, beta eval.Centipawns) eval.Centipawns {
	e.Clock.Tick()

	if pos.HalfmoveClock() >= 100 || pos.HasInsufficientMaterial() {
		return eval.DrawScore(pos.SideToMove())
	}

	key := e.Zobrist.ComputeKey(pos)
	e.Path[key]++
	defer func() { e.Path[key]-- }()
	if e.Path[key] >= 2 {
		return eval.DrawScore(pos.SideToMove())
	}

	if e.Clock.Expired() {
		return e.Quiescence(pos, ply, alpha, beta)
	}
	if depth == 0 {
		return e.Quiescence(pos, ply, alpha, beta)
	}

	e.Nodes++
	isMax := pos.SideToMove() == board.White
	inCheck := pos.IsChecked(pos.SideToMove())

	entryAlpha, entryBeta := alpha, beta

	var ttMove board.Move
	if probe, ok := e.TT.Read(key, depth); ok {
		ttMove = probe.Move
		if probe.Full {
			switch probe.Bound {
			case ExactBound:
				return probe.Score
			case LowerBound:
				alpha = eval.Max(alpha, probe.Score)
			case UpperBound:
				beta = eval.Min(beta, probe.Score)
			}
			if alpha >= beta {
				return probe.Score
			}
		}
	}

	if !inCheck && pos.HasNonPawnMaterial(pos.SideToMove()) {
		if score, pruned := e.tryNullMove(pos, depth, ply, isMax, alpha, beta); pruned {
			return score
		}
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 {
		if inCheck {
			if isMax {
				return -eval.Mate + eval.Centipawns(ply)
			}
			return eval.Mate - eval.Centipawns(ply)
		}
		return 0
	}

	checkBonusEnabled := depth >= 2
	ordered := orderMoves(pos, moves, ttMove, ply, e.Killers, e.History, checkBonusEnabled, func(m board.Move) bool {
		return pos.ApplyMove(m).IsChecked(pos.SideToMove().Opponent())
	})

	var best eval.Centipawns
	if isMax {
		best = -eval.Mate - 1
	} else {
		best = eval.Mate + 1
	}
	var bestMove board.Move
	var staticEval eval.Centipawns
	haveStaticEval := false
	index := 0

	for {
		m, ok := ordered.next()
		if !ok {
			break
		}
		quiet := m.IsQuiet()

		if depth <= 3 && quiet && !inCheck && index >= lateMovePruningIndex {
			index++
			continue
		}

		if depth == 1 && quiet && !inCheck {
			if !haveStaticEval {
				staticEval = e.Eval.Evaluate(pos)
				haveStaticEval = true
			}
			if isMax && staticEval+futilityMargin <= alpha {
				index++
				continue
			}
			if !isMax && staticEval-futilityMargin >= beta {
				index++
				continue
			}
		}

		child := pos.ApplyMove(m)

		score := e.searchMove(child, depth, ply, index, quiet, isMax, alpha, beta)

		if isMax {
			if score > best {
				best = score
				bestMove = m
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
				bestMove = m
			}
			if best < beta {
				beta = best
			}
		}
		index++

		if alpha >= beta {
			if quiet {
				e.Killers.Record(ply, m)
				e.History.Bonus(pos.SideToMove(), m, depth)
			}
			break
		}
	}

	bound := ExactBound
	switch {
	case best <= entryAlpha:
		bound = UpperBound
	case best >= entryBeta:
		bound = LowerBound
	}
	e.TT.Write(key, bound, depth, best, bestMove)

	return best
}

// searchMove plays out one child, applying late-move reduction when eligible (spec section 4.6
// Late-move reduction): a reduced null-window probe first, with a full-depth re-search only if
// the probe suggests the move might actually improve the bound.
func (e *Engine) searchMove(child *board.Position, depth, ply, index int, quiet, isMax bool, alpha, beta eval.Centipawns) eval.Centipawns {
	if quiet && index >= lmrMinIndex && depth >= lmrMinDepth {
		r := 1
		if index >= lmrDeepIndex {
			r = 2
		}
		reduced := depth - 1 - r
		if reduced < 0 {
			reduced = 0
		}

		var probe eval.Centipawns
		var improved bool
		if isMax {
			probe = e.AlphaBeta(child, reduced, ply+1, alpha, alpha+1)
			improved = probe > alpha
		} else {
			probe = e.AlphaBeta(child, reduced, ply+1, beta-1, beta)
			improved = probe < beta
		}
		if !improved {
			return probe
		}
	}
	return e.AlphaBeta(child, depth-1, ply+1, alpha, beta)
}

// tryNullMove attempts null-move pruning: give the opponent a free move and, if they still can't
// escape the cutoff bound, trust that the real move is at least as good (spec section 4.6
// Null-move pruning).
func (e *Engine) tryNullMove(pos *board.Position, depth, ply int, isMax bool, alpha, beta eval.Centipawns) (eval.Centipawns, bool) {
	r := 2
	if depth >= 6 {
		r = 3
	}
	reduced := depth - 1 - r
	if reduced < 0 {
		return 0, false
	}

	staticEval := e.Eval.Evaluate(pos)
	null := pos.NullMove()

	if isMax {
		if staticEval < beta {
			return 0, false
		}
		score := e.AlphaBeta(null, reduced, ply+1, beta-1, beta)
		if score >= beta {
			return score, true
		}
	} else {
		if staticEval > alpha {
			return 0, false
		}
		score := e.AlphaBeta(null, reduced, ply+1, alpha, alpha+1)
		if score <= alpha {
			return score, true
		}
	}
	return 0, false
}
