// caissa-uci is a minimal UCI front end for the engine. Grounded on cmd/morlock/main.go's
// flag/logw setup and protocol dispatch, scoped down to the UCI protocol only (spec section 1
// Non-goals: no xboard/console protocol).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"

	"github.com/greywing/caissa/pkg/engine"
	"github.com/greywing/caissa/pkg/engine/uci"
	"github.com/greywing/caissa/pkg/eval"
)

var (
	hashMB         = flag.Uint("hash", 32, "Transposition table size in MB")
	forceClassical = flag.Bool("classical", false, "Force classical evaluation even if neural weights are configured")
	weights        = flag.String("weights", "", "Path to a neural weight file")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: caissa-uci [options]

caissa-uci is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	ev := eval.Evaluator(eval.Classical{})
	if !*forceClassical && *weights != "" {
		ev = eval.LoadNeural(ctx, *weights, eval.Classical{})
	}

	e := engine.New(ctx, "caissa", "greywing", ev, engine.WithOptions(engine.Options{Hash: *hashMB}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
