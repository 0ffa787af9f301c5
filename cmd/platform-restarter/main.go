package main

import (
	"context"
	"os"
	"time"

	"github.com/skillcoder/platform-restarter/internal/infra/shutdown"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	appStart := time.Now()
	// Start listening for signals immediately as first thing, before any other initialization
	signals := shutdown.Notify()
	ctx := context.Background()

	err := newRootCommand(signals, appStart).ExecuteContext(ctx)
	if err != nil {
		// cobra or the configured logger already reported it
		os.Exit(1)
	}
}
