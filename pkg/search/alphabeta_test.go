package search_test

import (
	"testing"

	"github.com/greywing/caissa/pkg/board"
	"github.com/greywing/caissa/pkg/board/fen"
	"github.com/greywing/caissa/pkg/eval"
	"github.com/greywing/caissa/pkg/search"
	"github.com/stretchr/testify/assert"
)

func newEngine() *search.Engine {
	z := board.NewZobristTable(1)
	tt := search.NewTranspositionTable(1 << 16)
	return search.NewEngine(z, eval.Classical{}, tt)
}

func TestAlphaBetaStartingPositionIsRoughlyBalanced(t *testing.T) {
	e := newEngine()
	pos := board.NewInitialPosition()

	score := e.AlphaBeta(pos, 3, 0, -eval.Mate-1, eval.Mate+1)
	assert.InDelta(t, 0, int(score), 80)
}

func TestAlphaBetaFindsLadderMateForWhite(t *testing.T) {
	e := newEngine()
	pos := mustDecode(t, "k7/7R/6R1/8/8/8/8/7K w - - 0 1")

	score := e.AlphaBeta(pos, 2, 0, -eval.Mate-1, eval.Mate+1)
	assert.Greater(t, int(score), 99000)
}

func TestAlphaBetaRecognizesLostPositionForWhite(t *testing.T) {
	e := newEngine()
	pos := mustDecode(t, "8/8/8/8/8/5k2/5q2/5K2 w - - 0 1")

	score := e.AlphaBeta(pos, 2, 0, -eval.Mate-1, eval.Mate+1)
	assert.LessOrEqual(t, int(score), -99000)
}

func TestAlphaBetaStalematePositionScoresZero(t *testing.T) {
	e := newEngine()
	pos := mustDecode(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	score := e.AlphaBeta(pos, 1, 0, -eval.Mate-1, eval.Mate+1)
	assert.Equal(t, eval.Centipawns(0), score)
}

func TestAlphaBetaCheckmatePositionScoresLoss(t *testing.T) {
	e := newEngine()
	pos := mustDecode(t, "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1")

	// Black, the side to move, is mated: a loss for Black is a large positive score from
	// White's point of view.
	score := e.AlphaBeta(pos, 1, 0, -eval.Mate-1, eval.Mate+1)
	assert.Greater(t, int(score), 99000)
}

func TestAlphaBetaFiftyMoveDrawScoresContempt(t *testing.T) {
	e := newEngine()
	pos := mustDecode(t, "4k3/8/8/8/8/8/8/4K2R w - - 100 60")

	score := e.AlphaBeta(pos, 2, 0, -eval.Mate-1, eval.Mate+1)
	assert.Equal(t, eval.DrawScore(board.White), score)
}

func TestAlphaBetaIsDeterministicAcrossRepeatedCalls(t *testing.T) {
	pos := mustDecode(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	e1 := newEngine()
	s1 := e1.AlphaBeta(pos, 3, 0, -eval.Mate-1, eval.Mate+1)

	e2 := newEngine()
	s2 := e2.AlphaBeta(pos, 3, 0, -eval.Mate-1, eval.Mate+1)

	assert.Equal(t, s1, s2)
}

func TestFenConstantRemainsParseable(t *testing.T) {
	_, err := fen.Decode(fen.Initial)
	assert.NoError(t, err)
}
