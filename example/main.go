package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/climateboard"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// start mock sensor (see mock_server.go)
	go StartMockSensor(":9999", logger)
	time.Sleep(100 * time.Millisecond)

	b, err := climateboard.New(
		climateboard.WithSource("http://localhost:9999"),
		climateboard.WithTitle("Greenhouse"),
		climateboard.WithTimeout(2*time.Second),
		climateboard.WithLogger(logger),
		climateboard.WithResultCallback(func(r climateboard.PollResult) {
			if !r.OK() {
				logger.Info("sensor outage", "kind", r.Kind(), "cycle_id", r.CycleID)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create climateboard", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  climateboard demo")
	fmt.Println()
	fmt.Println("  Open http://localhost:8080 in your browser")
	fmt.Println("  The mock sensor drops out for 10s every minute")
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Start(ctx); err != nil {
		slog.Error("climateboard error", "error", err)
		os.Exit(1)
	}
}
