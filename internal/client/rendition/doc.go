// Package rendition resolves what to request when an asset is previewed
// or downloaded.
//
// Two delivery paths exist. Regular renditions are stored variants of an
// asset and are fetched from
//
//	/adobe/assets/{assetId}/renditions/{name}/as/{filename}
//
// Image presets are server side transformation profiles and are fetched
// from
//
//	/adobe/assets/{assetId}/as/{filename}?preset={name}&attachment=true
//
// Both paths share the filename rules implemented by DownloadFilename and
// the final "<asset>_<rendition><ext>" construction in Resolve. Optimized
// previews go through Preview, which coerces the source extension to one
// the delivery endpoint can serve.
package rendition
