// Package main is the entry point for the accent CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/japaniel/accent/cmd/accent/cmd"
)

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.NewRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
