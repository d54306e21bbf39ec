package styles

import (
	"bytes"
	"encoding/xml"
)

const ellipsis = "..."

// WrapText truncates s to at most n characters. Strings that fit are returned
// unchanged; longer ones keep their first n-3 characters followed by "...", so
// the result is exactly n characters long. Lengths count runes, not bytes.
//
// Budgets below the ellipsis length cannot hold a suffix; the text is cut to
// n characters instead.
func WrapText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n < len(ellipsis) {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-len(ellipsis)]) + ellipsis
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
