package rendition

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
)

const assetsRoot = "/adobe/assets"

// Target is a resolved request: an escaped URL path relative to the
// DAM base URL, its query parameters and the filename to save under.
type Target struct {
	Path     string
	Query    url.Values
	Filename string
}

// URL joins the target with base.
func (t Target) URL(base string) string {
	u := strings.TrimRight(base, "/") + t.Path
	if len(t.Query) > 0 {
		u += "?" + t.Query.Encode()
	}
	return u
}

// AssetPath builds an escaped path under /adobe/assets from raw
// segments.
func AssetPath(segments ...string) string {
	var b strings.Builder
	b.WriteString(assetsRoot)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// Resolve computes the download request for one rendition of an asset.
// A rendition without a name means the original.
func Resolve(asset *models.Asset, r models.Rendition, isImagePreset bool) Target {
	if r.Name == "" {
		r.Name = models.OriginalRendition
	}

	base := DownloadFilename(asset, r)
	assetExt := path.Ext(base)
	stem := strings.TrimSuffix(base, assetExt)
	renditionExt := path.Ext(r.Name)
	renditionStem := strings.TrimSuffix(r.Name, renditionExt)

	if isImagePreset {
		ext := assetExt
		if fe := FormatExtension(r.Format); fe != "" {
			ext = "." + fe
		}
		filename := stem + "_" + renditionStem + ext
		return Target{
			Path:     AssetPath(asset.AssetID, "as", filename),
			Query:    url.Values{"preset": {r.Name}, "attachment": {"true"}},
			Filename: filename,
		}
	}

	ext := assetExt
	if renditionExt != "" {
		ext = renditionExt
	}
	filename := stem + "_" + renditionStem + ext
	return Target{
		Path:     AssetPath(asset.AssetID, "renditions", r.Name, "as", filename),
		Query:    url.Values{},
		Filename: filename,
	}
}

// DownloadFilename derives the file name of an asset for a rendition.
// It starts from the asset name, or "asset-<id>-<rendition>" plus the
// extension of the asset format when the asset has no name. When the
// rendition format differs from the asset format the extension is
// replaced by the rendition's.
func DownloadFilename(asset *models.Asset, r models.Rendition) string {
	name := asset.Name
	if name == "" {
		name = "asset-" + asset.AssetID + "-" + r.Name
		if ext := ExtensionForMIME(asset.Format); ext != "" {
			name += "." + ext
		}
	}

	if r.Format != "" && !sameFormat(r.Format, asset.Format) {
		if ext := FormatExtension(r.Format); ext != "" {
			name = ReplaceExtension(name, ext)
		}
	}
	return name
}

// ReplaceExtension swaps the extension of name for ext, appending it when
// name has none. Applying it twice yields the same result.
func ReplaceExtension(name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name)) + "." + ext
}

// WithToken adds a download token to q. A nil or empty token leaves q
// untouched.
func WithToken(q url.Values, tok *models.DownloadToken) url.Values {
	if tok == nil || tok.Token == "" {
		return q
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("token", tok.Token)
	q.Set("expiryTime", strconv.FormatInt(tok.ExpiryTime, 10))
	return q
}

func sameFormat(a, b string) bool {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return true
	}
	ea, eb := FormatExtension(a), FormatExtension(b)
	return ea != "" && ea == eb
}
