package snapwatch

import "time"

// Outcome is the result category of a single check against the manifest.
//
// Outcome is a string type so it logs and serializes readably. It holds one
// of [OutcomeFound], [OutcomeNotFound] or [OutcomeError].
type Outcome string

const (
	// OutcomeFound indicates the target identifier is present in the manifest.
	OutcomeFound Outcome = "found"

	// OutcomeNotFound indicates the manifest was fetched and decoded but does
	// not list the target yet. This is not an error.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeError indicates the manifest could not be fetched or decoded.
	OutcomeError Outcome = "error"
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	return string(o)
}

// CheckResult holds the outcome of one attempt of a [Watcher].
//
// CheckResult is immutable after creation. A new one is produced for every
// attempt; nothing from a previous attempt is reused.
type CheckResult struct {
	// Target is the identifier being watched for.
	Target string

	// URL is the manifest URL that was fetched.
	URL string

	// Attempt is the 1-based attempt number within a single Run.
	Attempt int

	// Outcome is the result category of the attempt.
	Outcome Outcome

	// ReleaseTime is the matched entry's releaseTime, verbatim from the
	// manifest. Empty unless Outcome is OutcomeFound.
	ReleaseTime string

	// StatusCode is the HTTP status code returned by the manifest endpoint.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the time taken to complete the HTTP request.
	Latency time.Duration

	// CheckedAt is the timestamp when the attempt finished.
	CheckedAt time.Time

	// Error is the fetch or decode error. nil unless Outcome is OutcomeError.
	Error error
}
