// Package auth supplies bearer access tokens to the transfer client.
//
// The client never stores a token itself. It asks a TokenProvider before
// every request, so tests can swap in a Static token and long running
// sessions can use a CachedProvider that refreshes from its Source
// shortly before the current token expires.
package auth
