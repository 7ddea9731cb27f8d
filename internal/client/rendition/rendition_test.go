package rendition

import (
	"net/url"
	"testing"

	"github.com/dmitrijs2005/assetbrowser/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"clip.mp4", "clip.jpg"},
		{"photo.png", "photo.webp"},
		{"scan.tif", "scan.avif"},
		{"doc.pdf", "doc.pdf"},
		{"movie.MOV", "movie.jpg"},
		{"stream.m3u8", "stream.jpg"},
		{"archive.tar.flv", "archive.tar.jpg"},
		{"noext", "noext"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviewName(tt.in))
		})
	}
}

func TestPreview(t *testing.T) {
	target := Preview("urn:aaid:aem:1234", "clip.mp4", 350)

	assert.Equal(t, "/adobe/assets/urn:aaid:aem:1234/as/preview-clip.jpg", target.Path)
	assert.Equal(t, "350", target.Query.Get("width"))
	assert.Equal(t, "true", target.Query.Get("preferwebp"))
	assert.Equal(t, "clip.jpg", target.Filename)

	noWidth := Preview("a1", "doc.pdf", 0)
	assert.False(t, noWidth.Query.Has("width"))
}

func TestResolve_RegularOriginal(t *testing.T) {
	asset := &models.Asset{AssetID: "a1", Name: "photo.jpg", Format: "image/jpeg"}

	target := Resolve(asset, models.Rendition{}, false)

	assert.Equal(t, "photo_original.jpg", target.Filename)
	assert.Equal(t, "/adobe/assets/a1/renditions/original/as/photo_original.jpg", target.Path)
	assert.Empty(t, target.Query)
}

func TestResolve_RegularRenditionTakesExtensionFromItsName(t *testing.T) {
	asset := &models.Asset{AssetID: "a1", Name: "photo.jpg", Format: "image/jpeg"}
	r := models.Rendition{Name: "cq5dam.thumbnail.48.48.png", Format: "image/png"}

	target := Resolve(asset, r, false)

	assert.Equal(t, "photo_cq5dam.thumbnail.48.48.png", target.Filename)
	assert.Equal(t, "/adobe/assets/a1/renditions/cq5dam.thumbnail.48.48.png/as/photo_cq5dam.thumbnail.48.48.png", target.Path)
}

func TestResolve_RegularRenditionFallsBackToFormatExtension(t *testing.T) {
	asset := &models.Asset{AssetID: "a1", Name: "photo.tif", Format: "image/tiff"}
	r := models.Rendition{Name: "web", Format: "image/webp"}

	target := Resolve(asset, r, false)

	assert.Equal(t, "photo_web.webp", target.Filename)
}

func TestResolve_ImagePreset(t *testing.T) {
	asset := &models.Asset{AssetID: "a1", Name: "photo.png", Format: "image/png"}
	r := models.Rendition{Name: "Thumbnail", Format: "jpeg,rgb"}

	target := Resolve(asset, r, true)

	assert.Equal(t, "photo_Thumbnail.jpeg", target.Filename)
	assert.Equal(t, "/adobe/assets/a1/as/photo_Thumbnail.jpeg", target.Path)
	assert.Equal(t, url.Values{"preset": {"Thumbnail"}, "attachment": {"true"}}, target.Query)
}

func TestResolve_ImagePresetWithoutFormatKeepsAssetExtension(t *testing.T) {
	asset := &models.Asset{AssetID: "a1", Name: "photo.png", Format: "image/png"}

	target := Resolve(asset, models.Rendition{Name: "Web"}, true)

	assert.Equal(t, "photo_Web.png", target.Filename)
}

func TestResolve_NamelessAsset(t *testing.T) {
	asset := &models.Asset{AssetID: "a9", Format: "image/tiff"}

	assert.Equal(t, "asset-a9-original.tif", DownloadFilename(asset, models.Original()))
	assert.Equal(t, "asset-a9-original_original.tif", Resolve(asset, models.Original(), false).Filename)
}

func TestDownloadFilename(t *testing.T) {
	asset := &models.Asset{AssetID: "a1", Name: "photo.png", Format: "image/png"}

	assert.Equal(t, "photo.png", DownloadFilename(asset, models.Original()))
	assert.Equal(t, "photo.png", DownloadFilename(asset, models.Rendition{Name: "x", Format: "image/png"}))
	assert.Equal(t, "photo.jpg", DownloadFilename(asset, models.Rendition{Name: "x", Format: "image/jpeg"}))

	noExt := &models.Asset{AssetID: "a2", Name: "README", Format: "text/plain"}
	assert.Equal(t, "README.pdf", DownloadFilename(noExt, models.Rendition{Name: "x", Format: "application/pdf"}))
}

func TestDownloadFilename_IdempotentOnExtension(t *testing.T) {
	r := models.Rendition{Name: "x", Format: "image/jpeg"}
	asset := &models.Asset{AssetID: "a1", Name: "photo.png", Format: "image/png"}

	once := DownloadFilename(asset, r)
	asset.Name = once
	twice := DownloadFilename(asset, r)

	assert.Equal(t, once, twice)

	for _, name := range []string{"a.b.png", "plain", "x.jpg"} {
		first := ReplaceExtension(name, "jpg")
		require.Equal(t, first, ReplaceExtension(first, "jpg"), name)
	}
}

func TestReplaceExtension(t *testing.T) {
	assert.Equal(t, "a.jpg", ReplaceExtension("a.png", "jpg"))
	assert.Equal(t, "a.jpg", ReplaceExtension("a", ".jpg"))
	assert.Equal(t, "a.png", ReplaceExtension("a.png", ""))
}

func TestExtensionForMIME(t *testing.T) {
	assert.Equal(t, "jpg", ExtensionForMIME("image/jpeg"))
	assert.Equal(t, "jpg", ExtensionForMIME("Image/JPEG; q=1"))
	assert.Equal(t, "mov", ExtensionForMIME("video/quicktime"))
	assert.Equal(t, "", ExtensionForMIME(""))
	assert.Equal(t, "", ExtensionForMIME("application/x-definitely-unknown"))
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "jpeg", FormatExtension("JPEG, rgb"))
	assert.Equal(t, "png", FormatExtension("image/png"))
	assert.Equal(t, "", FormatExtension(""))
}

func TestWithToken(t *testing.T) {
	q := url.Values{"preset": {"p"}}
	assert.Equal(t, url.Values{"preset": {"p"}}, WithToken(q, nil))
	assert.Equal(t, url.Values{"preset": {"p"}}, WithToken(q, &models.DownloadToken{}))

	got := WithToken(nil, &models.DownloadToken{Token: "t0k", ExpiryTime: 1700000000000})
	assert.Equal(t, "t0k", got.Get("token"))
	assert.Equal(t, "1700000000000", got.Get("expiryTime"))
}

func TestTargetURL(t *testing.T) {
	target := Target{Path: "/adobe/assets/a1/as/x.jpg", Query: url.Values{"preset": {"Thumbnail"}, "attachment": {"true"}}}
	assert.Equal(t, "https://host/adobe/assets/a1/as/x.jpg?attachment=true&preset=Thumbnail", target.URL("https://host/"))

	bare := Target{Path: "/adobe/assets/a1"}
	assert.Equal(t, "https://host/adobe/assets/a1", bare.URL("https://host"))
}
