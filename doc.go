// Package snapwatch watches a version manifest until a given version
// identifier is published, then reports its release time.
//
// The default target is the current week's snapshot code ("24w05a" for ISO
// week 5 of 2024) and the default manifest is Mojang's launcher version
// manifest. Each attempt fetches the manifest afresh, decodes it against a
// fixed schema and looks for an entry whose id equals the target exactly.
//
// # Quick Start
//
//	w, _ := snapwatch.New(snapwatch.WithTarget("23w40a"))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	result, err := w.Run(ctx) // blocks until found, failed or cancelled
//
// On success Run writes the release time to stdout. Fetch and decode errors
// are written to stderr and end the watch, unless [WithSuppressErrors] is
// set, in which case the watcher keeps trying at the same fixed interval.
//
// # Configuration
//
//	w, err := snapwatch.New(
//	    snapwatch.WithTarget("1.21"),
//	    snapwatch.WithURL("http://localhost:9999/mc/game/version_manifest.json"),
//	    snapwatch.WithInterval(10 * time.Second),
//	    snapwatch.WithSuppressErrors(true),
//	    snapwatch.WithVerbose(true),
//	)
//
// # Architecture
//
//   - internal/manifest: manifest schema with required-field decoding
//   - internal/poller: HTTP client and the single fetch-and-match attempt
//   - config: YAML configuration for the snapwatch binary
//
// The internal packages are not part of the public API and may change
// without notice.
package snapwatch
