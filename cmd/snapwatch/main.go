// Package main is the entry point for the snapwatch CLI.
//
// snapwatch polls a version manifest until a version identifier appears,
// then prints its release time. Without a target it watches for this week's
// snapshot code.
//
// Usage:
//
//	snapwatch                          # Watch for this week's snapshot
//	snapwatch -t 1.21 -i 60 -s         # Watch for 1.21, retry past errors
//	snapwatch -c snapwatch.yaml        # Read defaults from a config file
//	snapwatch validate -c config.yaml  # Validate a config file
//	snapwatch code                     # Print this week's snapshot code
//	snapwatch version                  # Show version info
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/snapwatch"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// newRootCmd builds the command tree. The root command runs the watch
// itself; validate, code and version are subcommands.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapwatch",
		Short: "Wait for a version to appear in the launcher manifest",
		Long: `snapwatch polls a JSON version manifest at a fixed interval until the
target version appears, then prints its release time and exits.

Without --target, the target is this week's snapshot code: the last two
digits of the year, "w", the ISO week number and "a" (e.g. 24w05a).

Fetch and decode errors are printed to stderr and stop the watch unless
--suppress is given.

Exit codes:
  0   - Target found
  1   - Check failed, invalid flags or config, or --once did not find it
  130 - Interrupted

Example:
  snapwatch
  snapwatch --target 1.21 --interval 60 --suppress --verbose
  snapwatch -c snapwatch.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWatch,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.HiddenDefaultCmd = true

	addWatchFlags(cmd)

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newCodeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	root := newRootCmd(os.Stdout, os.Stderr)
	return exitCode(root.Execute(), os.Stderr)
}

// exitCode maps a command error to a process exit code, printing errors
// that have not already been reported.
func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.Is(err, snapwatch.ErrCheckFailed), errors.Is(err, snapwatch.ErrNotFound):
		// the watcher has already written its own output
		return exitFailure
	default:
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return exitFailure
	}
}

func main() {
	os.Exit(Execute())
}

// newVersionCmd prints version information.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of this snapwatch binary.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "snapwatch %s\n", version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
