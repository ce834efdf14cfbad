package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateRange checks that value lies in [lo, hi].
// The returned error is an *Error with code INVALID_CONFIG wrapping a *RangeError.
func ValidateRange(field string, value, lo, hi float64) error {
	if value >= lo && value <= hi {
		return nil
	}
	re := &RangeError{Field: field, Value: value, Min: lo, Max: hi}
	return Wrap(re.Code(), re, "invalid %s", field)
}

// ValidatePath validates a local file path given on the command line.
//
// The rules are intentionally conservative:
//   - No empty paths
//   - No null bytes or control characters
//   - Maximum length of 500 characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// imageExtensions are the still-image formats the snapshot command can write.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true,
}

// ValidateImagePath validates path and requires a supported image extension.
func ValidateImagePath(path string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !imageExtensions[ext] {
		return New(ErrCodeInvalidFormat, "unsupported image format %q (use png, jpg, gif, bmp or tiff)", ext)
	}
	return nil
}
