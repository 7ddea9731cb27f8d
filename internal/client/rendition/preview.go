package rendition

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// previewExtensions lists the source extensions the delivery endpoint
// cannot serve as previews and what it serves instead.
var previewExtensions = map[string]string{
	"png":  "webp",
	"mov":  "jpg",
	"m3u8": "jpg",
	"mp4":  "jpg",
	"mpeg": "jpg",
	"avi":  "jpg",
	"asf":  "jpg",
	"flv":  "jpg",
	"m4v":  "jpg",
	"tif":  "avif",
}

// PreviewName rewrites the extension of a repository file name to the one
// served by the optimized delivery endpoint. Other names are returned
// unchanged.
func PreviewName(repoName string) string {
	ext := path.Ext(repoName)
	if ext == "" {
		return repoName
	}
	to, ok := previewExtensions[strings.ToLower(ext[1:])]
	if !ok {
		return repoName
	}
	return strings.TrimSuffix(repoName, ext) + "." + to
}

// Preview resolves the optimized delivery preview of an asset at width
// pixels. A width of zero or less omits the width parameter.
func Preview(assetID, repoName string, width int) Target {
	name := PreviewName(repoName)
	q := url.Values{"preferwebp": {"true"}}
	if width > 0 {
		q.Set("width", strconv.Itoa(width))
	}
	return Target{
		Path:     AssetPath(assetID, "as", "preview-"+name),
		Query:    q,
		Filename: name,
	}
}
