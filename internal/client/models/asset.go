package models

import (
	"encoding/json"
	"fmt"
)

// OriginalRendition is the reserved rendition name present on every
// real asset.
const OriginalRendition = "original"

// Asset is a search hit. Known fields are decoded into typed members;
// every other property of the hit is kept verbatim in Extra.
//
// Renditions and ImagePresets are filled lazily, once fetched, and are
// not part of the hit itself.
type Asset struct {
	AssetID        string `json:"assetId"`
	Name           string `json:"repo-name,omitempty"`
	Format         string `json:"dc-format,omitempty"`
	URL            string `json:"url,omitempty"`
	Title          string `json:"dc-title,omitempty"`
	Description    string `json:"dc-description,omitempty"`
	Size           int64  `json:"repo-size,omitempty"`
	CreateDate     int64  `json:"repo-createDate,omitempty"`
	ModifyDate     int64  `json:"repo-modifyDate,omitempty"`
	ExpirationDate int64  `json:"pur-expirationDate,omitempty"`
	Rights         string `json:"xmpRights-UsageTerms,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`

	Renditions   []Rendition `json:"-"`
	ImagePresets []Rendition `json:"-"`
}

// assetFields is Asset without methods, used to avoid recursion while
// decoding the known members.
type assetFields Asset

var knownAssetKeys = map[string]struct{}{
	"assetId": {}, "repo-name": {}, "dc-format": {}, "url": {}, "dc-title": {},
	"dc-description": {}, "repo-size": {}, "repo-createDate": {},
	"repo-modifyDate": {}, "pur-expirationDate": {}, "xmpRights-UsageTerms": {},
}

func (a *Asset) UnmarshalJSON(b []byte) error {
	var known assetFields
	if err := json.Unmarshal(b, &known); err != nil {
		return fmt.Errorf("decode asset: %w", err)
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return fmt.Errorf("decode asset: %w", err)
	}

	for k := range knownAssetKeys {
		delete(all, k)
	}
	if len(all) > 0 {
		known.Extra = all
	}

	renditions, presets := a.Renditions, a.ImagePresets
	*a = Asset(known)
	a.Renditions, a.ImagePresets = renditions, presets
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Extra)+len(knownAssetKeys))
	for k, v := range a.Extra {
		out[k] = v
	}

	b, err := json.Marshal(assetFields(a))
	if err != nil {
		return nil, err
	}
	var known map[string]json.RawMessage
	if err := json.Unmarshal(b, &known); err != nil {
		return nil, err
	}
	for k, v := range known {
		out[k] = v
	}
	return json.Marshal(out)
}

// ExtraString returns an unrecognised hit property as a string, if it
// is one.
func (a *Asset) ExtraString(key string) (string, bool) {
	raw, ok := a.Extra[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// Collection is a hit from the collections index.
type Collection struct {
	CollectionID string   `json:"collectionId"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	AssetIDs     []string `json:"assetIds,omitempty"`
}
