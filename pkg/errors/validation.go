package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateAttributeKey validates the key of a graph, vertex or edge attribute.
//
// Keys arrive from untrusted input files, so the rules reject anything that
// would be unprintable or ambiguous once exported again:
//   - No empty keys
//   - Valid UTF-8 only
//   - No control characters
//   - Maximum length of 256 bytes
func ValidateAttributeKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidArgument, "attribute key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidArgument, "attribute key too long (max 256 bytes)")
	}

	if !utf8.ValidString(key) {
		return New(ErrCodeClassCast, "attribute key is not valid UTF-8")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "attribute key contains control characters: %q", key)
		}
	}

	return nil
}

// ValidateDelimiter validates a CSV field delimiter.
// The delimiter must be a single printable rune that cannot occur inside
// quoting or line structure.
func ValidateDelimiter(r rune) error {
	if r == 0 {
		return New(ErrCodeInvalidArgument, "delimiter cannot be empty")
	}
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return New(ErrCodeInvalidArgument, "invalid delimiter: %q", r)
	}
	if r != '\t' && unicode.IsControl(r) {
		return New(ErrCodeInvalidArgument, "delimiter cannot be a control character")
	}
	return nil
}

// ValidatePath validates an input file path received over the network.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidArgument, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidArgument, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidArgument, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidArgument, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidArgument, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidArgument, "path cannot contain backslashes")
	}

	return nil
}
