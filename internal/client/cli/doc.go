// Package cli provides the interactive asset browser command-line client.
//
// An App wraps the asset and cart services and an archive runner behind a
// read–eval–print loop. Searches are remembered so "next" can page through
// them, and every asset a search returns is kept so later commands reuse
// its name, format and cached rendition lists.
//
// Key features:
//   - Faceted asset search and collection search with paging
//   - Metadata, renditions and image presets of an asset
//   - Single downloads, archive downloads and a preview-backed cart
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command list.
package cli
