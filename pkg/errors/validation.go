package errors

import (
	"strings"
	"unicode"
)

// ValidateOutputPath validates a user-supplied output path for safety.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 500 characters
func ValidateOutputPath(path string) error {
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

// ValidateItemID validates a block provenance item ID.
// Item IDs end up in cache keys and output attributes, so they must be
// printable and bounded.
func ValidateItemID(id string) error {
	if len(id) > 256 {
		return New(ErrCodeInvalidDocument, "item id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDocument, "item id contains invalid control characters")
		}
	}
	if strings.Contains(id, "\x00") {
		return New(ErrCodeInvalidDocument, "item id contains null bytes")
	}
	return nil
}
