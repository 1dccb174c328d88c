package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greywing/caissa/pkg/board/fen"
	"github.com/greywing/caissa/pkg/engine"
	"github.com/greywing/caissa/pkg/eval"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(context.Background(), "caissa-test", "tester", eval.Classical{})
}

func TestNewEngineStartsAtInitialPosition(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineResetRejectsInvalidFEN(t *testing.T) {
	e := newTestEngine(t)
	err := e.Reset(context.Background(), "not a fen")
	assert.Error(t, err)
}

func TestEngineMoveRejectsIllegalMove(t *testing.T) {
	e := newTestEngine(t)
	err := e.Move(context.Background(), "e2e5")
	assert.Error(t, err)
}

func TestEngineMoveAppliesLegalMove(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Move(context.Background(), "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())
}

func TestPickMoveReturnsLegalRootMove(t *testing.T) {
	e := newTestEngine(t)

	result, err := e.PickMove(context.Background(), 3, time.Now().Add(5*time.Second))
	require.NoError(t, err)
	assert.NotZero(t, result.Move)
}

func TestPickMoveFailsOnCheckmatedPosition(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.Reset(context.Background(), "7k/6Q1/6K1/8/8/8/8/8 b - - 0 1"))

	_, err := e.PickMove(context.Background(), 3, time.Now().Add(5*time.Second))
	assert.ErrorIs(t, err, engine.ErrNoLegalMove)
}

func TestPickMoveReusesHintCacheAcrossCalls(t *testing.T) {
	h, err := engine.OpenHintCache(t.TempDir())
	require.NoError(t, err)
	defer h.Close()

	e := engine.New(context.Background(), "caissa-test", "tester", eval.Classical{}, engine.WithHintCache(h))

	result, err := e.PickMove(context.Background(), 3, time.Now().Add(5*time.Second))
	require.NoError(t, err)
	assert.NotZero(t, result.Move)

	// A second call to the same position should find a cached hint and still return a legal move.
	require.NoError(t, e.Reset(context.Background(), fen.Initial))
	result2, err := e.PickMove(context.Background(), 3, time.Now().Add(5*time.Second))
	require.NoError(t, err)
	assert.NotZero(t, result2.Move)
}

func TestPickMoveWithSampleSinkSucceeds(t *testing.T) {
	sink, err := engine.NewBadgerSampleSink(t.TempDir())
	require.NoError(t, err)
	defer sink.Close()

	e := engine.New(context.Background(), "caissa-test", "tester", eval.Classical{}, engine.WithSampleSink(sink))

	_, err = e.PickMove(context.Background(), 4, time.Now().Add(5*time.Second))
	require.NoError(t, err)
}
