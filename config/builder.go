package config

import (
	"github.com/jpalmerr/snapwatch"
)

// BuildOptions converts parsed configuration into watcher options.
//
// Only settings present in the file produce options; anything left empty
// or zero falls back to the watcher's defaults. Logging and output writers
// are not covered here and must be supplied by the caller.
func BuildOptions(cfg *Config) []snapwatch.Option {
	var opts []snapwatch.Option

	if cfg.Target != "" {
		opts = append(opts, snapwatch.WithTarget(cfg.Target))
	}

	if cfg.URL != "" {
		opts = append(opts, snapwatch.WithURL(cfg.URL))
	}

	if cfg.Interval != 0 {
		opts = append(opts, snapwatch.WithInterval(cfg.Interval.Duration()))
	}

	if cfg.Timeout != 0 {
		opts = append(opts, snapwatch.WithRequestTimeout(cfg.Timeout.Duration()))
	}

	if cfg.Suppress {
		opts = append(opts, snapwatch.WithSuppressErrors(true))
	}

	if cfg.Verbose {
		opts = append(opts, snapwatch.WithVerbose(true))
	}

	return opts
}
