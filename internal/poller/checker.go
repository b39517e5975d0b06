package poller

import (
	"context"
	"fmt"
	"time"

	"github.com/jpalmerr/snapwatch/internal/manifest"
)

// DefaultTimeout is the per-request timeout used when none is configured.
const DefaultTimeout = 30 * time.Second

// Result is the outcome of a single [Checker.Check] call.
//
// Exactly one of three states holds: Err is non-nil (fetch or decode
// failed), Found is true (ReleaseTime is set), or neither (the target is not
// in the manifest yet).
type Result struct {
	// Found reports whether an entry with the target ID exists.
	Found bool

	// ReleaseTime is the matched entry's releaseTime. Empty unless Found.
	ReleaseTime string

	// StatusCode is the HTTP status code, or zero if no response arrived.
	StatusCode int

	// Latency is the time taken by the HTTP request.
	Latency time.Duration

	// Err is the transport, status or decode error, if any.
	Err error
}

// Checker runs fetch-and-match attempts against a manifest URL.
//
// A Checker holds only the HTTP client; every call decodes a fresh manifest
// and nothing is carried over between calls.
type Checker struct {
	client  *Client
	timeout time.Duration
}

// NewChecker creates a [Checker] with its own [Client].
// A non-positive timeout falls back to [DefaultTimeout].
func NewChecker(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Checker{
		client:  NewClient(),
		timeout: timeout,
	}
}

// Check fetches the manifest at url and looks for target in its versions.
//
// A non-2xx status is reported as an error, as is any body that does not
// decode into the manifest schema. A missing target is not an error.
func (c *Checker) Check(ctx context.Context, url, target string) Result {
	resp := c.client.Fetch(ctx, url, c.timeout)

	result := Result{
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
	}

	if resp.Error != nil {
		result.Err = resp.Error
		return result
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Err = fmt.Errorf("unexpected status code %d", resp.StatusCode)
		return result
	}

	m, err := manifest.Decode(resp.Body)
	if err != nil {
		result.Err = fmt.Errorf("failed to decode manifest: %w", err)
		return result
	}

	if v, ok := m.Find(target); ok {
		result.Found = true
		result.ReleaseTime = v.ReleaseTime
	}
	return result
}

// Close releases idle connections held by the checker's client.
func (c *Checker) Close() {
	if c == nil {
		return
	}
	c.client.Close()
}
