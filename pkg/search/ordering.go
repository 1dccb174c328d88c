package search

import (
	"container/heap"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
)

// Priority is a move ordering annotation (spec section 4.6 Move ordering). Higher sorts first.
type Priority int64

const (
	ttMoveBonus   Priority = 1_000_000_000
	killer1Bonus  Priority = 500_000_000
	killer2Bonus  Priority = 500_000_000 - 1
	checkBonus    Priority = 150
	historyCap    int32    = 1_000_000
	maxKillerPly           = 128
)

// Killers holds the two most recent quiet moves that caused a cutoff at each ply (spec section
// 4.6: "killers are two move-keys per ply").
type Killers struct {
	moves [maxKillerPly][2]board.Move
}

// Record inserts m as the first killer at ply, bumping the previous first killer to second,
// unless m is already recorded (spec does not require killers to be distinct from each other
// beyond the two slots, but re-recording the same move is a no-op to avoid duplicate entries).
func (k *Killers) Record(ply int, m board.Move) {
	if ply < 0 || ply >= maxKillerPly || m.Equals(k.moves[ply][0]) {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *Killers) bonus(ply int, m board.Move) Priority {
	if ply < 0 || ply >= maxKillerPly {
		return 0
	}
	switch {
	case m.Equals(k.moves[ply][0]):
		return killer1Bonus
	case m.Equals(k.moves[ply][1]):
		return killer2Bonus
	default:
		return 0
	}
}

// History accumulates a cutoff bonus for quiet moves indexed by (side, from, to), used to order
// moves that have proven good in sibling subtrees even without a killer slot (spec section 4.6).
type History struct {
	table [board.NumColors][board.NumSquares][board.NumSquares]int32
}

// Bonus rewards m with (depth+1)^2 * 32, saturated at 1e6 (spec section 4.6 History and
// killers).
func (h *History) Bonus(side board.Color, m board.Move, depth int) {
	gain := int32(depth+1) * int32(depth+1) * 32
	v := h.table[side][m.From][m.To] + gain
	if v > historyCap {
		v = historyCap
	}
	h.table[side][m.From][m.To] = v
}

func (h *History) score(side board.Color, m board.Move) Priority {
	return Priority(h.table[side][m.From][m.To])
}

// centerSquares are the four central squares used for the small positional ordering bonus.
var centerSquares = [4]board.Square{
	board.NewSquare(board.FileD, 3), board.NewSquare(board.FileE, 3),
	board.NewSquare(board.FileD, 4), board.NewSquare(board.FileE, 4),
}

// centerBonus rewards moves landing closer to the center: 8 minus the Manhattan distance to the
// nearest of the four central squares (spec section 4.6).
func centerBonus(sq board.Square) Priority {
	best := 8
	for _, c := range centerSquares {
		d := abs(int(sq.File())-int(c.File())) + abs(int(sq.Rank())-int(c.Rank()))
		if d < best {
			best = d
		}
	}
	return Priority(8 - best)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// mvvLva returns the most-valuable-victim-minus-least-valuable-attacker priority for a capture.
func mvvLva(victim, attacker board.Piece) Priority {
	return Priority(10*eval.PieceValue(victim) - eval.PieceValue(attacker))
}

// annotate scores a single move for ordering purposes (spec section 4.6 Move ordering). pos is
// the position the move is played from; givesCheck is only computed by the caller when
// checkBonusEnabled, since it requires applying the move.
func annotate(pos *board.Position, m board.Move, ttMove board.Move, ply int, killers *Killers, history *History, checkBonusEnabled bool, givesCheck bool) Priority {
	if m.Equals(ttMove) {
		return ttMoveBonus
	}
	if m.IsCapture() {
		victim := m.Capture
		if m.Type == board.EnPassant {
			victim = board.Pawn
		}
		return mvvLva(victim, m.Piece)
	}

	var p Priority
	if k := killers.bonus(ply, m); k > 0 {
		p += k
	}
	if checkBonusEnabled && givesCheck && m.IsQuiet() {
		p += checkBonus
	}
	p += history.score(pos.SideToMove(), m)
	p += centerBonus(m.To)
	return p
}

// orderMoves annotates and sorts moves descending by priority, using a binary heap so the
// common case -- searching only the first few moves before a cutoff -- never pays for sorting
// the whole list.
func orderMoves(pos *board.Position, moves []board.Move, ttMove board.Move, ply int, killers *Killers, history *History, checkBonusEnabled bool, givesCheck func(board.Move) bool) *orderedMoves {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		check := checkBonusEnabled && m.IsQuiet() && givesCheck != nil && givesCheck(m)
		h[i] = weighted{move: m, priority: annotate(pos, m, ttMove, ply, killers, history, checkBonusEnabled, check)}
	}
	heap.Init(&h)
	return &orderedMoves{h: h}
}

// orderedMoves yields moves highest-priority-first.
type orderedMoves struct {
	h moveHeap
}

func (o *orderedMoves) next() (board.Move, bool) {
	if len(o.h) == 0 {
		return board.Move{}, false
	}
	return heap.Pop(&o.h).(weighted).move, true
}

type weighted struct {
	move     board.Move
	priority Priority
}

type moveHeap []weighted

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].priority > h[j].priority }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(weighted)) }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
