// caissa is a simple command-line driver: given a FEN position it prints the engine's chosen
// move and score. Grounded on cmd/morlock/main.go's flag/logw setup.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/seekerror/logw"

	"github.com/greywing/caissa/pkg/board/fen"
	"github.com/greywing/caissa/pkg/engine"
	"github.com/greywing/caissa/pkg/eval"
)

var (
	position = flag.String("fen", fen.Initial, "Position to evaluate")
	depth    = flag.Int("depth", 6, "Search depth limit")
	timeMS   = flag.Int("time_ms", 3000, "Search time budget in milliseconds")
	hashMB   = flag.Uint("hash", 32, "Transposition table size in MB")
	neural   = flag.String("weights", "", "Path to a neural weight file (classical eval if empty)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: caissa [options]

caissa picks a best move for a FEN position and exits.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	ev := eval.Evaluator(eval.Classical{})
	if *neural != "" {
		ev = eval.LoadNeural(ctx, *neural, eval.Classical{})
	}

	e := engine.New(ctx, "caissa", "greywing", ev, engine.WithOptions(engine.Options{Hash: *hashMB}))

	if err := e.Reset(ctx, *position); err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", *position, err)
	}

	deadline := time.Now().Add(time.Duration(*timeMS) * time.Millisecond)
	result, err := e.PickMove(ctx, *depth, deadline)
	if err != nil {
		logw.Exitf(ctx, "PickMove failed: %v", err)
	}

	fmt.Printf("bestmove %v score %v depth %v nodes %v\n", result.Move, result.Score, result.Depth, result.Nodes)
}
