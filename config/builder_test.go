package config

import (
	"testing"
	"time"

	"github.com/jpalmerr/snapwatch"
)

func TestBuildOptions_Empty(t *testing.T) {
	opts := BuildOptions(&Config{})
	if len(opts) != 0 {
		t.Errorf("len(opts) = %d, want 0", len(opts))
	}

	w, err := snapwatch.New(opts...)
	if err != nil {
		t.Fatalf("snapwatch.New() error = %v", err)
	}
	if w.URL() != snapwatch.DefaultManifestURL {
		t.Errorf("URL() = %q, want default", w.URL())
	}
	if w.Interval() != snapwatch.DefaultInterval {
		t.Errorf("Interval() = %v, want default", w.Interval())
	}
}

func TestBuildOptions_Full(t *testing.T) {
	cfg, err := Parse([]byte(`
target: 23w40a
url: http://localhost:9999/manifest.json
interval: 12
timeout: 3s
suppress: true
verbose: true
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	w, err := snapwatch.New(BuildOptions(cfg)...)
	if err != nil {
		t.Fatalf("snapwatch.New() error = %v", err)
	}

	if w.Target() != "23w40a" {
		t.Errorf("Target() = %q, want %q", w.Target(), "23w40a")
	}
	if w.URL() != "http://localhost:9999/manifest.json" {
		t.Errorf("URL() = %q", w.URL())
	}
	if w.Interval() != 12*time.Second {
		t.Errorf("Interval() = %v, want 12s", w.Interval())
	}
}

func TestBuildOptions_LaterOptionsOverride(t *testing.T) {
	cfg := &Config{Target: "from-config", Interval: Duration(time.Minute)}

	opts := append(BuildOptions(cfg),
		snapwatch.WithTarget("from-flag"),
		snapwatch.WithInterval(5*time.Second),
	)

	w, err := snapwatch.New(opts...)
	if err != nil {
		t.Fatalf("snapwatch.New() error = %v", err)
	}
	if w.Target() != "from-flag" {
		t.Errorf("Target() = %q, want %q", w.Target(), "from-flag")
	}
	if w.Interval() != 5*time.Second {
		t.Errorf("Interval() = %v, want 5s", w.Interval())
	}
}
