package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Configuration is loaded from environment variables (J2S_*, LOG_*, see
	// internal/config); command-line flags override them.
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("json2struct failed", "error", err)
		cancel()
		os.Exit(1)
	}
}
