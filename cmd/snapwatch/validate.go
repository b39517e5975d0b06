package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/snapwatch"
	"github.com/jpalmerr/snapwatch/config"
)

// newValidateCmd validates a config file without polling anything.
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config file",
		Long: `Validate a snapwatch configuration file without polling the manifest.

This command parses the YAML, expands environment variables, and validates
all fields. It prints the settings a watch would use.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  snapwatch validate -c snapwatch.yaml`,
		Args: cobra.NoArgs,
		RunE: runValidate,
	}

	cmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	w, err := snapwatch.New(config.BuildOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	timeout := snapwatch.DefaultRequestTimeout
	if cfg.Timeout != 0 {
		timeout = cfg.Timeout.Duration()
	}

	target := w.Target()
	if cfg.Target == "" {
		target += " (derived from " + time.Now().Format("2006-01-02") + ")"
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Config is valid!\n")
	_, _ = fmt.Fprintf(out, "  Target:    %s\n", target)
	_, _ = fmt.Fprintf(out, "  URL:       %s\n", w.URL())
	_, _ = fmt.Fprintf(out, "  Interval:  %s\n", w.Interval())
	_, _ = fmt.Fprintf(out, "  Timeout:   %s\n", timeout)
	_, _ = fmt.Fprintf(out, "  Suppress:  %t\n", cfg.Suppress)
	_, _ = fmt.Fprintf(out, "  Verbose:   %t\n", cfg.Verbose)
	_, _ = fmt.Fprintf(out, "  Logging:   %s (%s)\n", cfg.LogLevel, cfg.LogFormat)

	return nil
}
