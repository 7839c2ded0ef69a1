// Package validation checks uploaded files before any bytes reach the
// generation core: extension allow-list, MIME sniffing and a full raster
// decode.
package validation

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	apperrors "github.com/dishcovery/api/internal/errors"
)

// AllowedExtension reports whether the filename carries one of the allowed
// extensions (compared without the leading dot, case-insensitively).
func AllowedExtension(filename string, allowed []string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

// ValidateImage verifies that the upload is acceptable: allowed extension,
// image MIME type, and bytes that decode as a real raster image. Returns the
// sniffed MIME type on success.
func ValidateImage(filename string, data []byte, allowed []string) (string, error) {
	if !AllowedExtension(filename, allowed) {
		return "", apperrors.NewValidationError(
			fmt.Sprintf("File type not allowed: %s", filepath.Ext(filename)),
			"invalid_file_type",
			fmt.Sprintf("Allowed file types: %s", strings.Join(allowed, ", ")),
		)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", apperrors.NewValidationError(
			"Uploaded file is not a valid image",
			"invalid_image",
			"Upload a real photo in one of the allowed formats.",
		)
	}

	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", apperrors.NewValidationError(
			"Uploaded file could not be decoded as an image",
			"invalid_image",
			"Upload a real photo in one of the allowed formats.",
		)
	}

	return mimeType, nil
}
