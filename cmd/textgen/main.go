// Command textgen trains a word-level Markov chain on text files and prints
// pseudo-random text generated from it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()
	if err != nil {
		// cobra has already printed the error.
		os.Exit(1)
	}
}
