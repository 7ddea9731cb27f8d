package models

import (
	"encoding/base64"
	"strings"
)

// Blob is a fetched binary body and its declared content type.
type Blob struct {
	Data        []byte
	ContentType string
}

// DataURL encodes the blob as a base64 data URL.
func (b *Blob) DataURL() string {
	ct := b.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(b.Data)
}

// AssetMetadata is the metadata document of one asset together with the
// ETag to use for the next conditional fetch.
type AssetMetadata struct {
	AssetID            string         `json:"assetId"`
	RepositoryMetadata map[string]any `json:"repositoryMetadata,omitempty"`
	AssetMetadata      map[string]any `json:"assetMetadata,omitempty"`
	ETag               string         `json:"-"`
}
