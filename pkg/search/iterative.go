package search

import (
	"time"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
)

// Result is the outcome of one completed iterative-deepening depth (spec section 4.8 Root
// driver).
type Result struct {
	Move  board.Move
	Score eval.Centipawns
	Depth int
	Nodes uint64
	Time  time.Duration
}

// aspirationWindow is the half-width of the window placed around the previous iteration's score
// (spec section 4.6, section 9 Design Notes: "the stricter variant is specified").
const aspirationWindow eval.Centipawns = 200

// aspirationMinDepth is the depth at which aspiration windows start being used (spec section 9:
// the stricter of the two source variants, 5 rather than 4).
const aspirationMinDepth = 5

// perMoveTimeGuard aborts the rest of a root iteration once less than this much time remains
// before the deadline (spec section 4.8).
const perMoveTimeGuard = 140 * time.Millisecond

// mateFoundThreshold is the score magnitude past which iterative deepening stops early, on the
// assumption a forced mate has been found (spec section 4.8).
const mateFoundThreshold eval.Centipawns = 99000

// IterativeDeepening searches pos at increasing depths from 1 to maxDepth, stopping at deadline,
// and invokes onDepth after each depth that completes at least one root move (spec section 4.8).
// root is the caller-supplied, already-ordered list of legal root moves -- collecting them and
// consulting any external move hint is the root driver's responsibility, not the search
// engine's.
func (e *Engine) IterativeDeepening(pos *board.Position, root []board.Move, maxDepth int, deadline time.Time, onDepth func(Result)) Result {
	e.Clock.Deadline = deadline

	// Seed the root position itself into the path-local repetition counter (spec section 4.8:
	// alpha_beta is called "with root key" so a transposition back to the root counts as the
	// second occurrence, not the first).
	rootKey := e.Zobrist.ComputeKey(pos)
	e.Path[rootKey]++
	defer func() { e.Path[rootKey]-- }()

	var last Result
	var lastScore eval.Centipawns

	for d := 1; d <= maxDepth; d++ {
		start := time.Now()

		alpha, beta := -eval.Mate-1, eval.Mate+1
		if d >= aspirationMinDepth {
			alpha, beta = lastScore-aspirationWindow, lastScore+aspirationWindow
		}

		result, ok := e.searchRoot(pos, root, d, alpha, beta, deadline)
		if !ok {
			break // not even one root move completed at this depth: keep the prior result
		}

		if d >= aspirationMinDepth && (result.Score <= alpha || result.Score >= beta) {
			// Aspiration fail-high or fail-low: re-search with the infinite window.
			result, ok = e.searchRoot(pos, root, d, -eval.Mate-1, eval.Mate+1, deadline)
			if !ok {
				break
			}
		}

		result.Time = time.Since(start)
		last = result
		lastScore = result.Score
		root = withFront(root, result.Move)

		if onDepth != nil {
			onDepth(last)
		}
		if result.Score > mateFoundThreshold || result.Score < -mateFoundThreshold {
			break
		}
	}
	return last
}

// searchRoot runs one depth of the root move loop, applying the per-move time guard. ok is
// false iff the deadline had already passed before any move could be searched.
func (e *Engine) searchRoot(pos *board.Position, root []board.Move, depth int, alpha, beta eval.Centipawns, deadline time.Time) (Result, bool) {
	isMax := pos.SideToMove() == board.White

	var best eval.Centipawns
	var bestMove board.Move
	haveMove := false

	for _, m := range root {
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if (!haveMove && remaining <= 0) || (haveMove && remaining < perMoveTimeGuard) {
				break
			}
		}

		child := pos.ApplyMove(m)
		score := e.AlphaBeta(child, depth-1, 1, alpha, beta)

		if !haveMove || (isMax && score > best) || (!isMax && score < best) {
			best, bestMove, haveMove = score, m, true
		}
		if isMax {
			alpha = eval.Max(alpha, best)
		} else {
			beta = eval.Min(beta, best)
		}
	}
	if !haveMove {
		return Result{}, false
	}
	return Result{Move: bestMove, Score: best, Depth: depth, Nodes: e.Nodes}, true
}

// withFront reorders moves so that first comes first, preserving the relative order of the
// rest (spec section 4.8: "order preserved from prior iterations with the previous best moved
// to front").
func withFront(moves []board.Move, first board.Move) []board.Move {
	reordered := make([]board.Move, 0, len(moves))
	reordered = append(reordered, first)
	for _, m := range moves {
		if !m.Equals(first) {
			reordered = append(reordered, m)
		}
	}
	return reordered
}
