package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds submol names and marker prefixes.
const maxNameLength = 64

// texReserved are characters that would break out of a TeX argument.
const texReserved = `{}\%#$&^_~`

// ValidateSubmolName validates a name used in \definesubmol{name}{...}.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No whitespace or control characters
//   - No TeX special characters (braces, backslash, percent, ...)
//   - Maximum length of 64 characters
func ValidateSubmolName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidSubmol, "submol name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidSubmol, "submol name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidSubmol, "submol name contains whitespace or control characters")
		}
	}
	if i := strings.IndexAny(name, texReserved); i >= 0 {
		return New(ErrCodeInvalidSubmol, "submol name contains invalid character: %q", name[i])
	}
	return nil
}

// ValidateMarkerPrefix validates the prefix used for @{...} atom and
// bond markers. Markers end up inside TikZ node names, so only ASCII
// letters and digits are accepted.
func ValidateMarkerPrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidOption, "marker prefix cannot be empty")
	}
	if len(prefix) > maxNameLength {
		return New(ErrCodeInvalidOption, "marker prefix too long (max %d characters)", maxNameLength)
	}
	for _, r := range prefix {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidOption, "marker prefix must be alphanumeric: %q", prefix)
		}
	}
	return nil
}
