// Package client is the client side plumbing for the HEVA auth backend.
//
// It provides the Client interface with its REST implementation (see
// HTTPClient) and the local store bootstrap used by the CLI (InitDatabase,
// RunMigrations, OpenStore).
//
// # Errors
//
// Requests that get no response are wrapped with ErrUnavailable. Non-2xx
// responses are returned as *StatusError, which unwraps to ErrUnauthorized,
// ErrConflict, ErrTooManyRequests or ErrRejected, so callers match them with
// errors.Is.
//
// HTTPClient is safe for concurrent use. Every call is bounded by the
// configured request timeout on top of the caller's context.
package client
