package errors

import (
	"strings"
	"unicode"
)

// maxPropLength bounds a "key[=value]" string.
const maxPropLength = 4096

// ValidateProp validates a "key[=value]" property string.
//
// Validation rules:
//   - Must not be empty and must not start with '='
//   - Maximum length of 4096 bytes
//   - No control characters in the key
//   - No null bytes anywhere
func ValidateProp(prop string) error {
	if prop == "" {
		return New(ErrCodeInvalidProp, "property cannot be empty")
	}
	if prop[0] == '=' {
		return New(ErrCodeInvalidProp, "property key cannot be empty")
	}
	if len(prop) > maxPropLength {
		return New(ErrCodeInvalidProp, "property too long (max %d bytes)", maxPropLength)
	}
	if strings.IndexByte(prop, 0) >= 0 {
		return New(ErrCodeInvalidProp, "property contains a null byte")
	}
	key, _, _ := strings.Cut(prop, "=")
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProp, "property key contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a file path inside a history directory for safety.
// It prevents path traversal attacks and ensures reasonable path length.
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateHistoryName validates the name of a commit history.
// Names are used as directory names, cache keys and database keys, so only
// letters, digits, '-', '_' and '.' are accepted, and the name may not start
// with a dot.
func ValidateHistoryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "history name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "history name too long (max 128 characters)")
	}
	if name[0] == '.' {
		return New(ErrCodeInvalidInput, "history name cannot start with a dot")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return New(ErrCodeInvalidInput, "history name contains invalid character %q", r)
		}
	}
	return nil
}
