// Package poller fetches the version manifest and matches it against a
// target identifier.
//
// This package is internal to snapwatch. It performs a single attempt per
// call and holds no state between attempts; the looping, waiting and output
// live in the snapwatch package.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with timeout and size limits
//   - [Checker]: one fetch-decode-match attempt against a manifest URL
//   - [Result]: outcome of a single attempt
package poller
