package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// maxTextLength bounds labels, category names and leaf texts.
const maxTextLength = 2000

// ValidateText validates a display string such as a category name or leaf text.
//
// The rules are intentionally conservative:
//   - No empty or whitespace-only strings
//   - No control characters other than newline and tab
//   - Maximum length of 2000 runes
func ValidateText(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidDataset, "%s cannot be empty", field)
	}

	if n := len([]rune(s)); n > maxTextLength {
		return New(ErrCodeInvalidDataset, "%s too long (%d runes, max %d)", field, n, maxTextLength)
	}

	for _, r := range s {
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateRatio validates a completion ratio in the closed range [0, 1].
func ValidateRatio(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDataset, "%s must be a finite number", field)
	}
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidDataset, "%s must be between 0 and 1, got %g", field, v)
	}
	return nil
}

// hexColorRegex matches #rgb and #rrggbb CSS colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor validates a CSS hex color. An empty string is accepted and
// means "use the theme default".
func ValidateColor(field, c string) error {
	if c == "" {
		return nil
	}
	if !hexColorRegex.MatchString(c) {
		return New(ErrCodeInvalidDataset, "%s must be a hex color like #cd7f32, got %q", field, c)
	}
	return nil
}

// ValidateDimension validates a layout constant that must be finite and
// non-negative. Zero is allowed and means "use the default".
func ValidateDimension(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidConfig, "%s must be a finite number", field)
	}
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s cannot be negative, got %g", field, v)
	}
	return nil
}

// ValidateOutputPath validates a file path given on the command line.
// It rejects empty paths and paths containing null bytes.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "path cannot contain null bytes")
	}
	return nil
}
