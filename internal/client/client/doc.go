// Package client talks to the DAM HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     metadata, search, previews, single asset downloads, rendition and
//     preset listings, and archive jobs.
//  2. A concrete HTTP implementation (see HTTPClient) that sends the fixed
//     DAM headers on every request, asks an auth.TokenProvider for the
//     bearer token and hands downloaded blobs to a sink.Sink through a
//     short lived object URL.
//
// # Error Handling
//
// Non-2xx responses become *APIError. Transport failures (*APIError and
// *url.Error) are wrapped in *OperationError, which reads
//
//	failed to <verb> <subject> "<id>": <original message>
//
// and unwraps to the original error. Any other error is returned as is.
// A 304 on a conditional metadata fetch is ErrNotModified. Some responses
// are soft failures and come back as a nil result with a nil error: a
// non-2xx on the download token endpoint, and a non-2xx on archive
// creation or archive status. Soft failures are logged at WARN.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation.
package client
