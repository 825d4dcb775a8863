// Package mimetype resolves MIME types for clipboard image payloads.
package mimetype

import (
	"path/filepath"
	"strings"

	sniff "github.com/gabriel-vasile/mimetype"
)

// Fallback is used when neither the path nor the bytes identify the type.
const Fallback = "application/octet-stream"

// PNG is the canonical type for clipboard-native pixel data.
const PNG = "image/png"

var byExtension = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/vnd.microsoft.icon",
}

// FromExtension maps a file extension (with or without the leading dot) to
// a known image MIME type.
func FromExtension(ext string) (string, bool) {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	mime, ok := byExtension[strings.ToLower(ext)]
	return mime, ok
}

// FromBytes sniffs the MIME type from content.
func FromBytes(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	return sniff.Detect(data).String(), true
}

// Resolve determines the MIME type for an image payload: extension first,
// then content sniffing, then the generic binary fallback.
func Resolve(path string, data []byte) string {
	if path != "" {
		if mime, ok := FromExtension(filepath.Ext(path)); ok {
			return mime
		}
	}
	if mime, ok := FromBytes(data); ok {
		return mime
	}
	return Fallback
}
