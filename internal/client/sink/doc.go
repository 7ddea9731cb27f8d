// Package sink turns fetched content into saved files.
//
// ObjectURLs hands out short lived URLs for in-memory blobs, the way a
// browser hands out object URLs. Every URL returned by Create must be
// released with exactly one Revoke by the caller that created it; Deliver
// does that on every path.
//
// A Sink receives a URL (an object URL or a remote archive file URL) and
// a filename and stores the content somewhere the user can reach it:
// FileSink writes into a local directory, S3Sink uploads into a bucket.
// Sinks fetch http and https URLs and read object URLs only through the
// ObjectURLs that issued them; a file:// URL from anywhere else is refused.
package sink
