package errors

import (
	"strings"
	"unicode"
)

// maxUserIDLen bounds user identifiers before they are placed in a URL path.
const maxUserIDLen = 256

// ValidateUserID checks a user identifier before any network call is made.
//
// An empty (or all-whitespace) identifier yields ErrCodeMissingInput, which
// callers surface as a local prompt. Identifiers with control characters, path
// separators or excessive length yield ErrCodeInvalidInput.
func ValidateUserID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeMissingInput, "please enter a user ID")
	}

	if len(id) > maxUserIDLen {
		return New(ErrCodeInvalidInput, "user ID too long (max %d characters)", maxUserIDLen)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "user ID contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "user ID cannot contain path separators")
	}

	return nil
}
