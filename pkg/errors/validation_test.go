package errors

import (
	"strings"
	"testing"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"valid simple", "u1", ""},
		{"valid with dash", "user-42", ""},
		{"valid with dot", "john.doe", ""},
		{"valid email-like", "a@b.c", ""},

		{"empty", "", ErrCodeMissingInput},
		{"whitespace only", "   ", ErrCodeMissingInput},
		{"too long", strings.Repeat("x", 300), ErrCodeInvalidInput},
		{"slash", "foo/bar", ErrCodeInvalidInput},
		{"backslash", "foo\\bar", ErrCodeInvalidInput},
		{"null byte", "foo\x00bar", ErrCodeInvalidInput},
		{"newline", "foo\nbar", ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserID(tt.input)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateUserID(%q) error = %v, want nil", tt.input, err)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ValidateUserID(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeMissingInput, ErrCodeInvalidInput,
		ErrCodeNetwork, ErrCodeBackend,
		ErrCodeMalformedPayload, ErrCodeMissingPayload,
		ErrCodeFileNotFound, ErrCodeInvalidFormat, ErrCodeInvalidConfig,
		ErrCodeInternal, ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, c := range codes {
		if seen[c] {
			t.Errorf("duplicate error code: %s", c)
		}
		seen[c] = true
	}
}
