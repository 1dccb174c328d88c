// Package uci contains a minimal driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
//
// This driver is deliberately small next to a full UCI implementation: no ponder, no multi-PV,
// no time-management policy beyond a caller-supplied budget (spec section 1 Non-goals). Because
// the engine is single-threaded and cooperative rather than concurrent (spec section 5), "go"
// runs the search to completion on the same goroutine that reads commands; "stop" is a no-op by
// the time it could arrive, since there is no concurrent search left to interrupt.
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/seekerror/logw"

	"github.com/greywing/caissa/pkg/board/fen"
	"github.com/greywing/caissa/pkg/engine"
)

const ProtocolName = "uci"

// defaultMoveTime is used for "go" commands that specify neither depth nor movetime.
const defaultMoveTime = 3 * time.Second

// Driver implements a UCI driver for an Engine. It is activated once "uci" has been read from
// the input stream.
type Driver struct {
	e   *engine.Engine
	out chan<- string

	quit chan struct{}
}

// NewDriver starts processing in from the point "uci" was already consumed by the caller, and
// returns a channel of output lines to be written to the GUI.
func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 64)
	d := &Driver{e: e, out: out, quit: make(chan struct{})}

	go d.process(ctx, in)
	return d, out
}

// Closed reports when the driver has stopped processing (the input stream ended, or "quit" was
// received).
func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer close(d.quit)
	defer close(d.out)

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())
	d.out <- "uciok"

	for line := range in {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "isready":
			d.out <- "readyok"

		case "ucinewgame":
			_ = d.e.Reset(ctx, fen.Initial)

		case "position":
			d.handlePosition(ctx, parts[1:])

		case "go":
			d.handleGo(ctx, parts[1:])

		case "stop":
			// No-op: search already ran to completion synchronously.

		case "quit":
			return
		}
	}
}

func (d *Driver) handlePosition(ctx context.Context, args []string) {
	if len(args) == 0 {
		return
	}

	idx := 0
	switch args[0] {
	case "startpos":
		_ = d.e.Reset(ctx, fen.Initial)
		idx = 1
	case "fen":
		fields := args[1:]
		if len(fields) < 6 {
			return
		}
		if err := d.e.Reset(ctx, strings.Join(fields[:6], " ")); err != nil {
			logw.Errorf(ctx, "position fen: %v", err)
			return
		}
		idx = 7
	default:
		return
	}

	if idx < len(args) && args[idx] == "moves" {
		for _, mv := range args[idx+1:] {
			if err := d.e.Move(ctx, mv); err != nil {
				logw.Errorf(ctx, "position moves: %v", err)
				return
			}
		}
	}
}

func (d *Driver) handleGo(ctx context.Context, args []string) {
	depth := 0
	moveTime := time.Duration(0)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if v, err := strconv.Atoi(args[i+1]); err == nil {
					depth = v
				}
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				if v, err := strconv.Atoi(args[i+1]); err == nil {
					moveTime = time.Duration(v) * time.Millisecond
				}
				i++
			}
		}
	}
	if moveTime == 0 {
		moveTime = defaultMoveTime
	}

	result, err := d.e.PickMove(ctx, depth, time.Now().Add(moveTime))
	if err != nil {
		logw.Errorf(ctx, "go: %v", err)
		d.out <- "bestmove 0000"
		return
	}
	d.out <- fmt.Sprintf("bestmove %v", result.Move)
}
