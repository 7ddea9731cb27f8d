package rendition

import (
	"mime"
	"strings"
)

// knownExtensions maps the formats the DAM reports to the extension used
// for downloaded files. Formats missing here fall back to the system MIME
// table.
var knownExtensions = map[string]string{
	"image/jpeg":                    "jpg",
	"image/jpg":                     "jpg",
	"image/png":                     "png",
	"image/gif":                     "gif",
	"image/webp":                    "webp",
	"image/avif":                    "avif",
	"image/tiff":                    "tif",
	"image/bmp":                     "bmp",
	"image/svg+xml":                 "svg",
	"image/vnd.adobe.photoshop":     "psd",
	"image/x-raw-adobe":             "dng",
	"application/pdf":               "pdf",
	"application/postscript":        "ai",
	"application/zip":               "zip",
	"application/json":              "json",
	"application/vnd.apple.mpegurl": "m3u8",
	"application/x-mpegurl":         "m3u8",
	"video/mp4":                     "mp4",
	"video/quicktime":               "mov",
	"video/mpeg":                    "mpeg",
	"video/x-msvideo":               "avi",
	"video/x-ms-asf":                "asf",
	"video/x-flv":                   "flv",
	"video/x-m4v":                   "m4v",
	"audio/mpeg":                    "mp3",
	"audio/wav":                     "wav",
	"text/plain":                    "txt",
	"text/csv":                      "csv",
	"text/html":                     "html",
	"application/msword":            "doc",

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   "docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "pptx",
}

// ExtensionForMIME returns the extension, without the leading dot, for a
// MIME type. Parameters such as "; charset=utf-8" are ignored. It returns
// "" when the type is unknown.
func ExtensionForMIME(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if mt == "" {
		return ""
	}
	if ext, ok := knownExtensions[mt]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(mt)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return strings.TrimPrefix(exts[0], ".")
}

// FormatExtension returns the extension a rendition format maps to. MIME
// style formats go through ExtensionForMIME; comma delimited preset
// formats use their first segment.
func FormatExtension(format string) string {
	format = strings.TrimSpace(format)
	if format == "" {
		return ""
	}
	if strings.Contains(format, "/") {
		return ExtensionForMIME(format)
	}
	first, _, _ := strings.Cut(format, ",")
	return strings.ToLower(strings.TrimSpace(first))
}
