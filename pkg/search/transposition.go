package search

import (
	"math/bits"
	"sync/atomic"
	"unsafe"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/eval"
)

// Bound classifies a stored score relative to the window it was produced in (spec section 4.6
// TT store: upper if the final score never reached alpha, lower if it reached beta, exact
// otherwise).
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	default:
		return "?"
	}
}

// minTableEntries and maxTableEntries bound the table capacity to a power of two in
// [2^12, 2^22] (spec section 4.4).
const (
	minTableEntries = 1 << 12
	maxTableEntries = 1 << 22
)

// entry is one transposition table slot. Immutable once constructed: replacement swaps the
// whole pointer rather than mutating fields in place, so Read never observes a torn write.
type entry struct {
	key   board.ZobristHash
	move  board.Move
	score eval.Centipawns
	bound Bound
	depth int32
}

// Probe is the result of a successful TranspositionTable.Read: Full reports whether depth was
// sufficient for Score/Bound to be trustworthy, or whether only the Move hint survived (spec
// section 4.4 Probe).
type Probe struct {
	Move  board.Move
	Score eval.Centipawns
	Bound Bound
	Depth int
	Full  bool
}

// TranspositionTable caches search results keyed by Zobrist hash so that transposing move
// orders reuse prior work (spec section 4.4). Safe for concurrent use via lock-free CAS,
// though the engine itself never searches concurrently (spec section 5).
type TranspositionTable struct {
	table []unsafe.Pointer // *entry
	mask  uint64
	used  int64
}

// NewTranspositionTable builds a table sized to the nearest power of two in
// [2^12, 2^22] entries no greater than requestedEntries.
func NewTranspositionTable(requestedEntries uint64) *TranspositionTable {
	n := requestedEntries
	if n < minTableEntries {
		n = minTableEntries
	}
	if n > maxTableEntries {
		n = maxTableEntries
	}
	shift := 63 - bits.LeadingZeros64(n) // round down to a power of two
	size := uint64(1) << shift

	return &TranspositionTable{
		table: make([]unsafe.Pointer, size),
		mask:  size - 1,
	}
}

// Size returns the table capacity in bytes.
func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.table)) * uint64(unsafe.Sizeof(entry{}))
}

// Used returns the fraction of slots currently occupied.
func (t *TranspositionTable) Used() float64 {
	return float64(atomic.LoadInt64(&t.used)) / float64(len(t.table))
}

// Clear empties the table in place (spec section 5: explicit init/clear contract, owned by the
// engine instance rather than process-global module state).
func (t *TranspositionTable) Clear() {
	for i := range t.table {
		atomic.StorePointer(&t.table[i], nil)
	}
	atomic.StoreInt64(&t.used, 0)
}

// index mixes the high and low halves of the key before masking, so that two keys differing
// only in their high bits don't collide deterministically (spec section 4.4).
func (t *TranspositionTable) index(key board.ZobristHash) uint64 {
	h := uint64(key)
	return (h ^ (h >> 32)) & t.mask
}

// Read probes the table at depth. A miss (no entry, or a colliding different key) returns
// ok=false. A hit with insufficient depth returns ok=true, Full=false: only Move is meaningful.
// A hit with sufficient depth returns the full result (spec section 4.4 Probe).
func (t *TranspositionTable) Read(key board.ZobristHash, depth int) (Probe, bool) {
	addr := &t.table[t.index(key)]
	e := (*entry)(atomic.LoadPointer(addr))
	if e == nil || e.key != key {
		return Probe{}, false
	}
	if int(e.depth) >= depth {
		return Probe{Move: e.move, Score: e.score, Bound: e.bound, Depth: int(e.depth), Full: true}, true
	}
	return Probe{Move: e.move}, true
}

// Write stores a result according to the replacement policy: an empty slot always stores; a
// matching key always overwrites; a colliding different key is only replaced if the new entry
// is at least as deep as the one it would evict (spec section 4.4 Replacement policy).
func (t *TranspositionTable) Write(key board.ZobristHash, bound Bound, depth int, score eval.Centipawns, move board.Move) {
	addr := &t.table[t.index(key)]
	fresh := &entry{key: key, move: move, score: score, bound: bound, depth: int32(depth)}

	for {
		old := (*entry)(atomic.LoadPointer(addr))
		if old != nil && old.key != key && int(old.depth) > depth {
			return // skip: keep the deeper entry for the colliding position
		}
		if atomic.CompareAndSwapPointer(addr, unsafe.Pointer(old), unsafe.Pointer(fresh)) {
			if old == nil {
				atomic.AddInt64(&t.used, 1)
			}
			return
		}
	}
}
