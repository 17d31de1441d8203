package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sandeepkv93/tally/internal/cli"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tally failed: %v\n", err)
		stop()
		os.Exit(1)
	}
}
