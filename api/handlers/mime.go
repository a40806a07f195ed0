package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// imageExtensions maps the image MIME types produced by the mobile clients
// and the analysis pipeline to canonical file extensions. Unknown image
// subtypes fall back to a generic binary extension.
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/heic": "heic",
	"image/heif": "heif",
	"image/gif":  "gif",
}

// extensionForMIME resolves an image MIME type to a file extension.
// Non-image MIME types are rejected.
func extensionForMIME(mimeType string) (string, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("unsupported mime type %q, only image types are accepted", mimeType)
	}
	if ext, ok := imageExtensions[mimeType]; ok {
		return ext, nil
	}
	return "bin", nil
}

// pageAndLimit reads the 1-based page and limit query parameters.
// Bounds are applied later by databases.Clamp.
func pageAndLimit(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
