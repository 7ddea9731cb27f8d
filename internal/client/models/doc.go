// Package models defines the asset, rendition, search and archive types
// exchanged with the DAM service.
package models
