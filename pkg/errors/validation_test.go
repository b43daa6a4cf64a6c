package errors

import (
	"strings"
	"testing"
)

func TestValidateSubmolName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "acid", false},
		{"valid with digits", "ring6", false},
		{"valid with dash", "aryl-ring", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space", "my acid", true},
		{"newline", "acid\n", true},
		{"brace", "acid}", true},
		{"backslash", `\acid`, true},
		{"percent", "acid%", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmolName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSubmolName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSubmol) {
				t.Errorf("ValidateSubmolName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidSubmol)
			}
		})
	}
}

func TestValidateMarkerPrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"letters", "a", false},
		{"alphanumeric", "mol2", false},

		{"empty", "", true},
		{"dash", "a-b", true},
		{"brace", "a}", true},
		{"non ascii", "ä", true},
		{"too long", strings.Repeat("m", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMarkerPrefix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMarkerPrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
