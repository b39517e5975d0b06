package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/snapwatch"
)

func main() {
	target := snapwatch.SnapshotCode(time.Now())

	// start mock server (see mock_server.go); the target shows up after 5s
	go StartMockManifestServer(":9999", target, 5*time.Second)
	time.Sleep(100 * time.Millisecond)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	w, err := snapwatch.New(
		snapwatch.WithTarget(target),
		snapwatch.WithURL("http://localhost:9999/mc/game/version_manifest.json"),
		snapwatch.WithInterval(time.Second),
		snapwatch.WithSuppressErrors(true),
		snapwatch.WithVerbose(true),
		snapwatch.WithLogger(logger),
		snapwatch.WithCheckCallback(func(r snapwatch.CheckResult) {
			logger.Info("attempt",
				"n", r.Attempt,
				"outcome", r.Outcome,
				"status_code", r.StatusCode,
				"latency_ms", r.Latency.Milliseconds(),
			)
		}),
	)
	if err != nil {
		slog.Error("failed to create watcher", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("  snapwatch demo: waiting for %s on the mock manifest\n", w.Target())
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := w.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		slog.Error("watch failed", "error", err)
		os.Exit(1)
	}

	slog.Info("done", "attempts", result.Attempt, "release_time", result.ReleaseTime)
}
