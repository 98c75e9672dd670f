package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds group and node labels taken from input documents.
const maxLabelLength = 256

// ValidateLabel validates a group or node label from an input document.
// kind names the label in error messages ("group", "node").
//
// Labels must be non-empty, at most 256 bytes and free of control characters.
func ValidateLabel(kind, label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "%s label cannot be empty", kind)
	}
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "%s label too long (max %d characters)", kind, maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s label %q contains control characters", kind, label)
		}
	}
	return nil
}

// ValidatePath validates an input or output file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
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

// ValidateColor performs a light sanity check on a colour value taken from an
// input document. Any CSS colour string is accepted; only characters that
// would break out of an SVG attribute are rejected.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if strings.ContainsAny(color, "\"'<>&") {
		return New(ErrCodeInvalidInput, "invalid colour %q", color)
	}
	return nil
}
