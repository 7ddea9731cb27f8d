package models

// Dimensions is a pixel size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rendition describes either a stored rendition of an asset or a
// server-defined image preset.
//
// For stored renditions Format is MIME style ("image/jpeg"). For image
// presets it is comma delimited ("jpeg,rgb") and the first segment is the
// file extension.
type Rendition struct {
	Name       string      `json:"name"`
	Format     string      `json:"format,omitempty"`
	Size       int64       `json:"size,omitempty"`
	Dimensions *Dimensions `json:"dimensions,omitempty"`
}

// Original is the default rendition requested when none is given.
func Original() Rendition {
	return Rendition{Name: OriginalRendition}
}

// RenditionList is the envelope of the renditions and image presets
// endpoints.
type RenditionList struct {
	Items []Rendition `json:"items"`
}
