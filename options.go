package snapwatch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"
)

// watcherConfig holds mutable state during Watcher construction.
type watcherConfig struct {
	target         string
	url            string
	interval       time.Duration
	requestTimeout time.Duration
	suppressErrors bool
	verbose        bool
	logger         *slog.Logger
	stdout         io.Writer
	stderr         io.Writer
	clock          func() time.Time
	checkCallbacks []func(CheckResult)
}

// Option is a function that configures a [Watcher] during construction.
//
// Option implements the functional options pattern. Options return an error
// if validation fails, which [New] passes back to the caller.
type Option func(*watcherConfig) error

// WithTarget sets the identifier to watch for.
//
// The target is used verbatim: no trimming or case folding. An empty string
// leaves the default in place, which derives the current week's snapshot
// code (see [SnapshotCode]).
func WithTarget(target string) Option {
	return func(cfg *watcherConfig) error {
		cfg.target = target
		return nil
	}
}

// WithURL sets the manifest endpoint to poll.
//
// Defaults to [DefaultManifestURL]. Returns an error if the URL cannot be
// parsed or its scheme is not http or https.
func WithURL(rawURL string) Option {
	return func(cfg *watcherConfig) error {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid URL: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
		}
		if parsed.Host == "" {
			return errors.New("URL must include a host")
		}
		cfg.url = rawURL
		return nil
	}
}

// WithInterval sets the fixed delay between attempts.
//
// Defaults to 30 seconds. There is no backoff: every wait has the same length.
//
// Returns an error if the duration is zero or negative.
func WithInterval(d time.Duration) Option {
	return func(cfg *watcherConfig) error {
		if d <= 0 {
			return errors.New("interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithRequestTimeout sets the timeout for each manifest request, including
// reading the body. Defaults to 30 seconds.
//
// Returns an error if the duration is zero or negative.
func WithRequestTimeout(d time.Duration) Option {
	return func(cfg *watcherConfig) error {
		if d <= 0 {
			return errors.New("request timeout must be positive")
		}
		cfg.requestTimeout = d
		return nil
	}
}

// WithSuppressErrors controls what happens after a fetch or decode error.
//
// When enabled, the error is still printed and the watcher waits and tries
// again. When disabled (the default), the first error ends [Watcher.Run].
func WithSuppressErrors(suppress bool) Option {
	return func(cfg *watcherConfig) error {
		cfg.suppressErrors = suppress
		return nil
	}
}

// WithVerbose enables the "not found, retrying" notice and the annotated
// success line ("<target> was released at <time>").
func WithVerbose(verbose bool) Option {
	return func(cfg *watcherConfig) error {
		cfg.verbose = verbose
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for diagnostic logging.
//
// The logger only receives diagnostics; the success and error lines are
// written to the writers set by [WithStdout] and [WithStderr]. If not
// specified, [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *watcherConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithStdout sets where the release time and verbose notices are written.
// Defaults to [os.Stdout].
//
// Returns an error if w is nil.
func WithStdout(w io.Writer) Option {
	return func(cfg *watcherConfig) error {
		if w == nil {
			return errors.New("stdout writer cannot be nil")
		}
		cfg.stdout = w
		return nil
	}
}

// WithStderr sets where check errors are written. Defaults to [os.Stderr].
//
// Returns an error if w is nil.
func WithStderr(w io.Writer) Option {
	return func(cfg *watcherConfig) error {
		if w == nil {
			return errors.New("stderr writer cannot be nil")
		}
		cfg.stderr = w
		return nil
	}
}

// WithClock sets the function used to read the current time when deriving
// the default target. Defaults to [time.Now].
//
// Returns an error if clock is nil.
func WithClock(clock func() time.Time) Option {
	return func(cfg *watcherConfig) error {
		if clock == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clock = clock
		return nil
	}
}

// WithCheckCallback registers a function to be called after every attempt.
//
// The callback receives the [CheckResult] before the watcher prints output
// or decides whether to stop. Multiple callbacks run in registration order.
//
// Callbacks run synchronously on the watcher's goroutine and delay the next
// attempt while they run. Panics within callbacks are recovered and logged.
//
// Example:
//
//	w, err := snapwatch.New(
//	    snapwatch.WithCheckCallback(func(r snapwatch.CheckResult) {
//	        if r.Outcome == snapwatch.OutcomeError {
//	            metrics.Inc("manifest_errors")
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithCheckCallback(cb func(CheckResult)) Option {
	return func(cfg *watcherConfig) error {
		if cb == nil {
			return nil
		}
		cfg.checkCallbacks = append(cfg.checkCallbacks, cb)
		return nil
	}
}
