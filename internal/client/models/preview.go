package models

import "time"

// Preview is an optimized preview blob kept in the local cache.
type Preview struct {
	AssetID     string
	Name        string
	ContentType string
	Data        []byte
	// Digest is the BLAKE2b-256 of Data, set by the repository.
	Digest    []byte
	Size      int64
	CreatedAt time.Time
}

// Blob returns the preview content as a Blob.
func (p *Preview) Blob() *Blob {
	return &Blob{Data: p.Data, ContentType: p.ContentType}
}
