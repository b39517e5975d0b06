package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jpalmerr/snapwatch"
	"github.com/jpalmerr/snapwatch/config"
)

func addWatchFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("target", "t", "", "version to watch for (default: this week's snapshot code)")
	flags.IntP("interval", "i", 30, "seconds between checks")
	flags.BoolP("suppress", "s", false, "keep watching after connection or decode errors")
	flags.BoolP("verbose", "v", false, "print every failed lookup and annotate the result")
	flags.StringP("url", "u", snapwatch.DefaultManifestURL, "launcher manifest URL")
	flags.StringP("config", "c", "", "path to config file")
	flags.Duration("timeout", snapwatch.DefaultRequestTimeout, "timeout for each manifest request")
	flags.Bool("once", false, "check a single time instead of watching")
	flags.String("log-level", "error", "diagnostic log level (debug, info, warn, error)")
	flags.String("log-format", "text", "diagnostic log format (text, json)")
	flags.Bool("no-color", false, "disable colored error output")
}

// isTerminal reports whether w is a terminal. Anything that is not an
// *os.File, such as a buffer, is not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger creates the diagnostic logger. Diagnostics always go to stderr
// so stdout carries nothing but the result.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// watchSettings holds the resolved flag and config values for one run.
type watchSettings struct {
	opts      []snapwatch.Option
	logLevel  string
	logFormat string
}

// resolveSettings merges the optional config file with flags. Flags that
// were set explicitly win over the file, and the file wins over defaults.
func resolveSettings(cmd *cobra.Command) (*watchSettings, error) {
	flags := cmd.Flags()

	s := &watchSettings{
		logLevel:  "error",
		logFormat: "text",
	}

	if path, _ := flags.GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		s.opts = append(s.opts, config.BuildOptions(cfg)...)
		s.logLevel = cfg.LogLevel
		s.logFormat = cfg.LogFormat
	}

	if flags.Changed("target") {
		target, _ := flags.GetString("target")
		s.opts = append(s.opts, snapwatch.WithTarget(target))
	}
	if flags.Changed("interval") {
		secs, _ := flags.GetInt("interval")
		interval := time.Duration(secs) * time.Second
		if err := config.ValidateInterval(interval); err != nil {
			return nil, fmt.Errorf("--interval: %w", err)
		}
		s.opts = append(s.opts, snapwatch.WithInterval(interval))
	}
	if flags.Changed("suppress") {
		suppress, _ := flags.GetBool("suppress")
		s.opts = append(s.opts, snapwatch.WithSuppressErrors(suppress))
	}
	if flags.Changed("verbose") {
		verbose, _ := flags.GetBool("verbose")
		s.opts = append(s.opts, snapwatch.WithVerbose(verbose))
	}
	if flags.Changed("url") {
		url, _ := flags.GetString("url")
		if err := config.ValidateURL(url); err != nil {
			return nil, fmt.Errorf("--url: %w", err)
		}
		s.opts = append(s.opts, snapwatch.WithURL(url))
	}
	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		if timeout <= 0 {
			return nil, fmt.Errorf("--timeout must be positive, got %s", timeout)
		}
		s.opts = append(s.opts, snapwatch.WithRequestTimeout(timeout))
	}
	if flags.Changed("log-level") {
		s.logLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		s.logFormat, _ = flags.GetString("log-format")
		if s.logFormat != "text" && s.logFormat != "json" {
			return nil, fmt.Errorf("--log-format must be text or json, got %q", s.logFormat)
		}
	}

	return s, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	// color's own check looks at stdout, but the prefix goes to stderr
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || !isTerminal(cmd.ErrOrStderr()) {
		color.NoColor = true
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	level, err := config.ParseLogLevel(settings.logLevel)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), level, settings.logFormat)

	opts := append(settings.opts,
		snapwatch.WithLogger(logger),
		snapwatch.WithStdout(cmd.OutOrStdout()),
		snapwatch.WithStderr(cmd.ErrOrStderr()),
	)

	w, err := snapwatch.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}

	// cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if once, _ := cmd.Flags().GetBool("once"); once {
		_, err = w.Once(ctx)
		return err
	}

	_, err = w.Run(ctx)
	return err
}
