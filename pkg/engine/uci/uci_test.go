package uci_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greywing/caissa/pkg/engine"
	"github.com/greywing/caissa/pkg/engine/uci"
	"github.com/greywing/caissa/pkg/eval"
)

func newDriver(t *testing.T) (*uci.Driver, chan<- string, <-chan string) {
	t.Helper()

	e := engine.New(context.Background(), "caissa-test", "tester", eval.Classical{})
	in := make(chan string, 64)
	d, out := uci.NewDriver(context.Background(), e, in)
	return d, in, out
}

func recvWithin(t *testing.T, out <-chan string, d time.Duration) string {
	t.Helper()
	select {
	case line, ok := <-out:
		require.True(t, ok, "output channel closed unexpectedly")
		return line
	case <-time.After(d):
		t.Fatal("timed out waiting for output line")
		return ""
	}
}

func TestHandshakeEmitsIDAndUciok(t *testing.T) {
	_, _, out := newDriver(t)

	assert.Contains(t, recvWithin(t, out, time.Second), "id name")
	assert.Contains(t, recvWithin(t, out, time.Second), "id author")
	assert.Equal(t, "uciok", recvWithin(t, out, time.Second))
}

func TestIsReadyRepliesReadyok(t *testing.T) {
	_, in, out := newDriver(t)
	drainHandshake(t, out)

	in <- "isready"
	assert.Equal(t, "readyok", recvWithin(t, out, time.Second))
}

func TestGoWithDepthReturnsBestmove(t *testing.T) {
	d, in, out := newDriver(t)
	drainHandshake(t, out)

	in <- "position startpos"
	in <- "go depth 3"

	line := recvWithin(t, out, 5*time.Second)
	assert.Contains(t, line, "bestmove")

	in <- "quit"
	<-d.Closed()
}

func TestPositionWithMovesThenGoReturnsBestmove(t *testing.T) {
	d, in, out := newDriver(t)
	drainHandshake(t, out)

	in <- "position startpos moves e2e4 e7e5"
	in <- "go depth 2"

	assert.Contains(t, recvWithin(t, out, 5*time.Second), "bestmove")

	in <- "quit"
	<-d.Closed()
}

func TestQuitClosesDriver(t *testing.T) {
	d, in, out := newDriver(t)
	drainHandshake(t, out)

	in <- "quit"
	select {
	case <-d.Closed():
	case <-time.After(time.Second):
		t.Fatal("driver did not close after quit")
	}
	_, ok := <-out
	assert.False(t, ok)
}

func drainHandshake(t *testing.T, out <-chan string) {
	t.Helper()
	recvWithin(t, out, time.Second)
	recvWithin(t, out, time.Second)
	recvWithin(t, out, time.Second)
}
