package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/board/fen"
	"github.com/greywing/caissa/pkg/eval"
	"github.com/greywing/caissa/pkg/search"
)

var version = build.NewVersion(0, 1, 0)

// defaultHashMB is the transposition table size used when Options.Hash is unset.
const defaultHashMB = 32

// bytesPerEntry approximates a transposition table slot's footprint, used only to translate a
// caller's MB budget into NewTranspositionTable's entry count.
const bytesPerEntry = 32

// Options are engine creation options (spec section 4.8, section 6).
type Options struct {
	// Depth is the default search depth limit used when PickMove is called with depth <= 0.
	Depth int
	// Hash is the transposition table size in MB.
	Hash uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB}", o.Depth, o.Hash)
}

// Engine encapsulates game state, the transposition table, and the collaborators (hint cache,
// sample sink) that the root driver consults or reports to. Not safe for concurrent use beyond
// the bookkeeping methods' own locking -- only one search runs at a time (spec section 5).
type Engine struct {
	name, author string

	zobrist *board.ZobristTable
	ev      eval.Evaluator
	tt      *search.TranspositionTable
	hints   *HintCache
	sink    SampleSink

	opts Options

	pos    *board.Position
	active atomic.Bool
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithHintCache attaches a persistent hint cache consulted before each root search and updated
// after it (spec section 6).
func WithHintCache(h *HintCache) Option {
	return func(e *Engine) { e.hints = h }
}

// WithSampleSink attaches a collaborator that receives one Sample per sufficiently-deep
// completed iteration (spec section 4.8, section 6).
func WithSampleSink(s SampleSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobristSeed configures the engine to use the given random seed instead of the default
// seed of zero.
func WithZobristSeed(seed int64) Option {
	return func(e *Engine) { e.zobrist = board.NewZobristTable(seed) }
}

// New constructs an Engine at the initial position, ready for PickMove.
func New(ctx context.Context, name, author string, ev eval.Evaluator, opts ...Option) *Engine {
	e := &Engine{
		name:    name,
		author:  author,
		ev:      ev,
		zobrist: board.NewZobristTable(0),
	}
	for _, fn := range opts {
		fn(e)
	}

	hashMB := e.opts.Hash
	if hashMB == 0 {
		hashMB = defaultHashMB
	}
	e.tt = search.NewTranspositionTable((uint64(hashMB) << 20) / bytesPerEntry)

	e.pos = board.NewInitialPosition()

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.pos)
}

// Reset replaces the current position with the one encoded by position.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.pos = pos

	logw.Infof(ctx, "Reset %v", position)
	return nil
}

// Move applies a caller-supplied move, usually an opponent's, to the current position.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move %q: %w", move, err)
	}

	for _, candidate := range e.pos.LegalMoves() {
		if candidate.Equals(m) {
			e.pos = e.pos.ApplyMove(candidate)
			logw.Infof(ctx, "Move %v", candidate)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", board.ErrIllegalMove, move)
}

// PickMove runs the root driver (spec section 4.8): collects legal root moves, consults the
// hint cache for a move-ordering hint, then runs iterative deepening up to maxDepth or until
// deadline, whichever comes first. maxDepth <= 0 uses the engine's configured default depth, or
// an effectively unbounded depth if neither is set.
func (e *Engine) PickMove(ctx context.Context, maxDepth int, deadline time.Time) (search.Result, error) {
	if !e.active.CAS(false, true) {
		return search.Result{}, ErrSearchActive
	}
	defer e.active.Store(false)

	e.mu.Lock()
	pos := e.pos
	e.mu.Unlock()

	if maxDepth <= 0 {
		maxDepth = e.opts.Depth
	}
	if maxDepth <= 0 {
		maxDepth = 64
	}

	root := pos.LegalMoves()
	if len(root) == 0 {
		return search.Result{}, ErrNoLegalMove
	}

	key := e.zobrist.ComputeKey(pos)
	if hint, ok := e.lookupHint(key); ok {
		root = withFront(root, hint.Move)
	}

	se := search.NewEngine(e.zobrist, e.ev, e.tt)

	logw.Infof(ctx, "PickMove %v, depth<=%v, deadline=%v", fen.Encode(pos), maxDepth, deadline)

	result := se.IterativeDeepening(pos, root, maxDepth, deadline, func(r search.Result) {
		logw.Debugf(ctx, "Depth %v: %v %v (%v nodes, %v)", r.Depth, r.Move, r.Score, r.Nodes, r.Time)
		e.report(ctx, pos, key, r)
	})

	if result.Move != (board.Move{}) {
		e.storeHint(key, HintRecord{Move: result.Move, Score: result.Score, Depth: result.Depth})
	}
	logw.Infof(ctx, "PickMove result: %v %v, depth=%v", result.Move, result.Score, result.Depth)
	return result, nil
}

func (e *Engine) lookupHint(key board.ZobristHash) (HintRecord, bool) {
	if e.hints == nil {
		return HintRecord{}, false
	}
	return e.hints.Lookup(key)
}

func (e *Engine) storeHint(key board.ZobristHash, rec HintRecord) {
	if e.hints == nil {
		return
	}
	if err := e.hints.Store(key, rec); err != nil {
		logw.Errorf(context.Background(), "hint cache store failed: %v", err)
	}
}

// report emits a Sample for a completed iteration deep enough to matter (spec section 4.8 sample
// hooks, section 6 Sample emission).
func (e *Engine) report(ctx context.Context, pos *board.Position, key board.ZobristHash, r search.Result) {
	if e.sink == nil || r.Depth < minLoggedDepth {
		return
	}

	scoreSideToMove := r.Score
	if pos.SideToMove() == board.Black {
		scoreSideToMove = -scoreSideToMove
	}

	sample := Sample{
		FEN:       fen.Encode(pos),
		ScoreCP:   scoreSideToMove,
		Depth:     r.Depth,
		From:      r.Move.From,
		To:        r.Move.To,
		KeyHex:    fmt.Sprintf("%016x", uint64(key)),
		Timestamp: time.Now(),
	}
	if err := e.sink.Emit(sample); err != nil {
		logw.Errorf(ctx, "sample sink emit failed: %v", err)
	}
}

// withFront reorders moves so hint comes first, if present among them (spec section 4.8: the
// hint cache "provides a move-ordering hint").
func withFront(moves []board.Move, hint board.Move) []board.Move {
	if hint == (board.Move{}) {
		return moves
	}
	reordered := make([]board.Move, 0, len(moves))
	found := false
	for _, m := range moves {
		if m.Equals(hint) {
			found = true
			continue
		}
		reordered = append(reordered, m)
	}
	if !found {
		return moves
	}
	return append([]board.Move{hint}, reordered...)
}
