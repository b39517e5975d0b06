// Package config provides YAML configuration parsing for snapwatch.
//
// A config file supplies defaults for the snapwatch binary; flags given on
// the command line take precedence over it.
//
// Example configuration:
//
//	target: 24w05a
//	url: ${MANIFEST_URL:-https://launchermeta.mojang.com/mc/game/version_manifest.json}
//	interval: 30s
//	timeout: 10s
//	suppress: true
//	verbose: false
//	log_level: info
//	log_format: json
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// minInterval and maxInterval bound the delay between attempts.
	minInterval = 1 * time.Second
	maxInterval = 24 * time.Hour

	minTimeout = 1 * time.Second

	defaultLogLevel  = "error"
	defaultLogFormat = "text"
)

// Config is the root configuration structure for snapwatch.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Target is the version identifier to watch for. Empty means the
	// current week's snapshot code. Supports environment variable
	// substitution.
	Target string `yaml:"target"`

	// URL is the manifest endpoint. Empty means Mojang's launcher manifest.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// Interval is the delay between attempts. Accepts duration strings like
	// "45s" or "2m", or a bare number of seconds. Zero means the default.
	// Must be between 1s and 24h.
	Interval Duration `yaml:"interval"`

	// Timeout is the per-request timeout. Zero means the default.
	Timeout Duration `yaml:"timeout"`

	// Suppress keeps watching after fetch or decode errors.
	Suppress bool `yaml:"suppress"`

	// Verbose prints not-found notices and the annotated success line.
	Verbose bool `yaml:"verbose"`

	// LogLevel is the diagnostic log level: debug, info, warn or error.
	// Defaults to error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is the diagnostic log format: text or json. Defaults to text.
	LogFormat string `yaml:"log_format"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
//
// Integer values are read as whole seconds so that `interval: 30` means the
// same as the --interval flag.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a string or number, got %v", node.Kind)
	}
	s := node.Value

	if secs, err := strconv.Atoi(s); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Target and URL. Defaults are
// applied for LogLevel (error) and LogFormat (text); zero Interval and
// Timeout are left for the watcher's own defaults.
//
// An empty document is valid and yields the defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	target, err := expandEnvVars(c.Target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	c.Target = target

	if c.URL != "" {
		expanded, err := expandEnvVars(c.URL)
		if err != nil {
			return fmt.Errorf("url: %w", err)
		}
		c.URL = expanded

		if err := ValidateURL(c.URL); err != nil {
			return fmt.Errorf("url: %w", err)
		}
	}

	if c.Interval != 0 {
		if err := ValidateInterval(c.Interval.Duration()); err != nil {
			return err
		}
	}

	if c.Timeout != 0 && c.Timeout.Duration() < minTimeout {
		return fmt.Errorf("timeout must be at least %s if specified, got %s", minTimeout, c.Timeout.Duration())
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}

	return nil
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme == "" {
		return errors.New("url must have a scheme (http:// or https://)")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("url must include a host")
	}
	return nil
}

// ValidateInterval checks that d lies between 1s and 24h.
func ValidateInterval(d time.Duration) error {
	if d < minInterval {
		return fmt.Errorf("interval must be at least %s, got %s", minInterval, d)
	}
	if d > maxInterval {
		return fmt.Errorf("interval must not exceed %s, got %s", maxInterval, d)
	}
	return nil
}

// ParseLogLevel maps a level name (debug, info, warn, error) to a slog.Level.
// Matching is case-insensitive.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level must be debug, info, warn or error, got %q", s)
	}
}
