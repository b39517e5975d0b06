package snapwatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/jpalmerr/snapwatch/internal/poller"
)

const (
	// DefaultManifestURL is Mojang's launcher version manifest.
	DefaultManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

	// DefaultInterval is the delay between attempts when none is configured.
	DefaultInterval = 30 * time.Second

	// DefaultRequestTimeout bounds a single manifest request.
	DefaultRequestTimeout = poller.DefaultTimeout
)

var (
	// ErrCheckFailed is returned (wrapped around the cause) when a fetch or
	// decode error ends a watch because errors are not suppressed.
	ErrCheckFailed = errors.New("manifest check failed")

	// ErrNotFound is returned by [Watcher.Once] when the manifest does not
	// list the target. [Watcher.Run] never returns it.
	ErrNotFound = errors.New("target not found")
)

var errorPrefix = color.New(color.FgRed, color.Bold)

// Watcher polls a version manifest until a target identifier appears.
//
// Watcher is created using [New] with functional options and is immutable
// afterwards. All attempts run sequentially on the caller's goroutine:
// Run fetches, decodes and searches the manifest, then waits a fixed
// interval before the next attempt.
//
// The typical lifecycle is:
//
//	w, err := snapwatch.New(snapwatch.WithTarget("23w40a"))
//	if err != nil {
//	    slog.Error("failed to create watcher", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	if _, err := w.Run(ctx); err != nil {
//	    os.Exit(1)
//	}
type Watcher struct {
	target         string
	url            string
	interval       time.Duration
	requestTimeout time.Duration
	suppressErrors bool
	verbose        bool
	logger         *slog.Logger
	stdout         io.Writer
	stderr         io.Writer
	checkCallbacks []func(CheckResult)
}

// New creates a [Watcher] with the given options.
//
// Defaults:
//   - Target: the current week's snapshot code (see [SnapshotCode])
//   - URL: [DefaultManifestURL]
//   - Interval: 30 seconds
//   - Request timeout: 30 seconds
//   - Errors end the watch, output is not verbose
//
// The default target is resolved once, here, so a watch that runs across
// midnight on a Sunday keeps looking for the same code.
func New(opts ...Option) (*Watcher, error) {
	cfg := &watcherConfig{
		url:            DefaultManifestURL,
		interval:       DefaultInterval,
		requestTimeout: DefaultRequestTimeout,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		clock:          time.Now,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		target:         ResolveTarget(cfg.target, cfg.clock()),
		url:            cfg.url,
		interval:       cfg.interval,
		requestTimeout: cfg.requestTimeout,
		suppressErrors: cfg.suppressErrors,
		verbose:        cfg.verbose,
		logger:         logger,
		stdout:         cfg.stdout,
		stderr:         cfg.stderr,
		checkCallbacks: cfg.checkCallbacks,
	}, nil
}

// Target returns the resolved identifier being watched for.
func (w *Watcher) Target() string {
	return w.target
}

// URL returns the manifest URL being polled.
func (w *Watcher) URL() string {
	return w.url
}

// Interval returns the delay between attempts.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}

// Run polls the manifest until the target is found, an unsuppressed error
// occurs, or ctx is cancelled.
//
// Each attempt ends in one of three ways:
//
//   - Found: the release time is written to stdout and Run returns the
//     result with a nil error.
//   - Not found: a notice is written to stdout if verbose, then Run waits
//     for the interval and tries again.
//   - Error: the error is written to stderr. If errors are suppressed Run
//     waits and tries again; otherwise it returns an error wrapping both
//     [ErrCheckFailed] and the cause.
//
// There is no limit on the number of attempts. If ctx is cancelled Run
// returns the last result and ctx.Err().
func (w *Watcher) Run(ctx context.Context) (CheckResult, error) {
	logger := w.runLogger()

	if ctx.Err() != nil {
		return CheckResult{}, ctx.Err()
	}

	checker := poller.NewChecker(w.requestTimeout)
	defer checker.Close()

	logger.Info("watch started",
		"interval", w.interval.String(),
		"suppress_errors", w.suppressErrors,
	)

	for attempt := 1; ; attempt++ {
		result := w.attempt(ctx, checker, attempt, logger)

		switch result.Outcome {
		case OutcomeFound:
			w.printFound(result)
			logger.Info("target found",
				"attempt", attempt,
				"release_time", result.ReleaseTime,
			)
			return result, nil

		case OutcomeNotFound:
			if w.verbose {
				_, _ = fmt.Fprintf(w.stdout, "%s was not found. Retrying...\n", w.target)
			}

		case OutcomeError:
			// a fetch torn down by cancellation is not a check failure
			if ctx.Err() != nil {
				logger.Info("watch cancelled", "attempts", attempt)
				return result, ctx.Err()
			}
			w.printError(result.Error)
			if !w.suppressErrors {
				logger.Debug("watch stopped after error", "attempt", attempt)
				return result, fmt.Errorf("%w: %w", ErrCheckFailed, result.Error)
			}
			logger.Warn("check failed, retrying",
				"attempt", attempt,
				"error", result.Error.Error(),
			)
		}

		if err := wait(ctx, w.interval); err != nil {
			logger.Info("watch cancelled", "attempts", attempt)
			return result, err
		}
	}
}

// Once performs a single attempt with the same output as [Watcher.Run] but
// without waiting or retrying.
//
// Returns nil if the target was found, [ErrNotFound] if the manifest does
// not list it, and an error wrapping [ErrCheckFailed] on fetch or decode
// failure. The suppress setting has no effect.
func (w *Watcher) Once(ctx context.Context) (CheckResult, error) {
	logger := w.runLogger()

	if ctx.Err() != nil {
		return CheckResult{}, ctx.Err()
	}

	checker := poller.NewChecker(w.requestTimeout)
	defer checker.Close()

	result := w.attempt(ctx, checker, 1, logger)

	switch result.Outcome {
	case OutcomeFound:
		w.printFound(result)
		return result, nil
	case OutcomeNotFound:
		if w.verbose {
			_, _ = fmt.Fprintf(w.stdout, "%s was not found.\n", w.target)
		}
		return result, ErrNotFound
	default:
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		w.printError(result.Error)
		return result, fmt.Errorf("%w: %w", ErrCheckFailed, result.Error)
	}
}

// runLogger returns the watcher's logger tagged with a fresh run id.
func (w *Watcher) runLogger() *slog.Logger {
	return w.logger.With(
		"run_id", uuid.NewString(),
		"target", w.target,
		"url", w.url,
	)
}

// attempt performs one fetch-and-match, logs it and runs the callbacks.
func (w *Watcher) attempt(ctx context.Context, checker *poller.Checker, attempt int, logger *slog.Logger) CheckResult {
	r := checker.Check(ctx, w.url, w.target)

	result := CheckResult{
		Target:      w.target,
		URL:         w.url,
		Attempt:     attempt,
		ReleaseTime: r.ReleaseTime,
		StatusCode:  r.StatusCode,
		Latency:     r.Latency,
		CheckedAt:   time.Now(),
		Error:       r.Err,
	}
	switch {
	case r.Err != nil:
		result.Outcome = OutcomeError
	case r.Found:
		result.Outcome = OutcomeFound
	default:
		result.Outcome = OutcomeNotFound
	}

	logger.Debug("check completed",
		"attempt", attempt,
		"outcome", result.Outcome,
		"status_code", result.StatusCode,
		"latency_ms", result.Latency.Milliseconds(),
	)

	for _, cb := range w.checkCallbacks {
		invokeCallbackSafe(cb, result, logger)
	}

	return result
}

func (w *Watcher) printFound(result CheckResult) {
	if w.verbose {
		_, _ = fmt.Fprintf(w.stdout, "%s was released at %s\n", w.target, result.ReleaseTime)
		return
	}
	_, _ = fmt.Fprintln(w.stdout, result.ReleaseTime)
}

func (w *Watcher) printError(err error) {
	_, _ = errorPrefix.Fprintf(w.stderr, "Error happened while checking for %s:", w.target)
	_, _ = fmt.Fprintf(w.stderr, " %v\n", err)
}

// wait blocks for d or until ctx is cancelled.
func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// invokeCallbackSafe calls a check callback with panic recovery.
// The stack is logged under a correlation id; the panic does not propagate.
func invokeCallbackSafe(cb func(CheckResult), result CheckResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("check callback panicked",
				"correlation_id", uuid.NewString(),
				"panic", fmt.Sprintf("%v", r),
				"attempt", result.Attempt,
				"stack", string(debug.Stack()),
			)
		}
	}()
	cb(result)
}
