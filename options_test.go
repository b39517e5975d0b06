package snapwatch

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	fixed := time.Date(2023, time.October, 4, 12, 0, 0, 0, time.Local)

	w, err := New(WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.Target() != "23w40a" {
		t.Errorf("Target() = %q, want %q", w.Target(), "23w40a")
	}
	if w.URL() != DefaultManifestURL {
		t.Errorf("URL() = %q, want %q", w.URL(), DefaultManifestURL)
	}
	if w.Interval() != 30*time.Second {
		t.Errorf("Interval() = %v, want 30s", w.Interval())
	}
	if w.requestTimeout != 30*time.Second {
		t.Errorf("requestTimeout = %v, want 30s", w.requestTimeout)
	}
	if w.suppressErrors {
		t.Error("suppressErrors should default to false")
	}
	if w.verbose {
		t.Error("verbose should default to false")
	}
	if w.logger == nil {
		t.Error("logger should default to slog.Default()")
	}
}

func TestNew_ExplicitTargetWinsOverClock(t *testing.T) {
	fixed := time.Date(2023, time.October, 4, 12, 0, 0, 0, time.Local)

	w, err := New(
		WithTarget("1.20.4"),
		WithClock(func() time.Time { return fixed }),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.Target() != "1.20.4" {
		t.Errorf("Target() = %q, want %q", w.Target(), "1.20.4")
	}
}

func TestNew_AllOptions(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	w, err := New(
		WithTarget("23w41a"),
		WithURL("http://localhost:9999/manifest.json"),
		WithInterval(5*time.Second),
		WithRequestTimeout(2*time.Second),
		WithSuppressErrors(true),
		WithVerbose(true),
		WithLogger(logger),
		WithStdout(&stdout),
		WithStderr(&stderr),
		WithCheckCallback(func(CheckResult) {}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if w.Target() != "23w41a" {
		t.Errorf("Target() = %q", w.Target())
	}
	if w.URL() != "http://localhost:9999/manifest.json" {
		t.Errorf("URL() = %q", w.URL())
	}
	if w.Interval() != 5*time.Second {
		t.Errorf("Interval() = %v", w.Interval())
	}
	if w.requestTimeout != 2*time.Second {
		t.Errorf("requestTimeout = %v", w.requestTimeout)
	}
	if !w.suppressErrors || !w.verbose {
		t.Errorf("suppressErrors = %v, verbose = %v, want both true", w.suppressErrors, w.verbose)
	}
	if w.logger != logger {
		t.Error("logger not applied")
	}
	if w.stdout != &stdout || w.stderr != &stderr {
		t.Error("writers not applied")
	}
	if len(w.checkCallbacks) != 1 {
		t.Errorf("len(checkCallbacks) = %d, want 1", len(w.checkCallbacks))
	}
}

func TestOptions_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr string
	}{
		{name: "zero interval", opt: WithInterval(0), wantErr: "interval must be positive"},
		{name: "negative interval", opt: WithInterval(-time.Second), wantErr: "interval must be positive"},
		{name: "zero timeout", opt: WithRequestTimeout(0), wantErr: "request timeout must be positive"},
		{name: "nil logger", opt: WithLogger(nil), wantErr: "logger cannot be nil"},
		{name: "nil stdout", opt: WithStdout(nil), wantErr: "stdout writer cannot be nil"},
		{name: "nil stderr", opt: WithStderr(nil), wantErr: "stderr writer cannot be nil"},
		{name: "nil clock", opt: WithClock(nil), wantErr: "clock cannot be nil"},
		{name: "no scheme", opt: WithURL("launchermeta.mojang.com/mc"), wantErr: "scheme must be http or https"},
		{name: "ftp scheme", opt: WithURL("ftp://example.com/manifest.json"), wantErr: "scheme must be http or https"},
		{name: "no host", opt: WithURL("http:///manifest.json"), wantErr: "must include a host"},
		{name: "unparseable", opt: WithURL("http://[::1"), wantErr: "invalid URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			if err == nil {
				t.Fatalf("New() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestWithTarget_EmptyKeepsDerivedDefault(t *testing.T) {
	fixed := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.Local)

	w, err := New(WithTarget(""), WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.Target() != "24w05a" {
		t.Errorf("Target() = %q, want %q", w.Target(), "24w05a")
	}
}

func TestWithCheckCallback_NilIsIgnored(t *testing.T) {
	w, err := New(WithCheckCallback(nil))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if len(w.checkCallbacks) != 0 {
		t.Errorf("len(checkCallbacks) = %d, want 0", len(w.checkCallbacks))
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeFound.String() != "found" || OutcomeNotFound.String() != "not_found" || OutcomeError.String() != "error" {
		t.Errorf("unexpected outcome strings: %q %q %q", OutcomeFound, OutcomeNotFound, OutcomeError)
	}
}
