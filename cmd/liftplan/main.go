package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	runner := NewRunner(RunnerOpts{})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		runner.logger.Fatalf("application error: %v", err)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "liftplan",
		Usage:    "Generate workout routines and push them to a LiftPlan server",
		Version:  Version,
		Commands: r.register(),
	}
}
