// pkg/plistutil/base64.go
// Package plistutil holds the byte-level conversions every codec in
// pkg/codec shares: base64 (XML <data>), UTF-16BE surrogate-pair handling
// (binary string records), and Apple/Unix date formatting (XML <date>).
package plistutil

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64 decodes s, ignoring any whitespace interleaved in the input
// (spec.md §4.3: "base64 with whitespace ignored").
func DecodeBase64(s string) ([]byte, error) {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return base64.StdEncoding.DecodeString(b.String())
}

// EncodeBase64 is the inverse of DecodeBase64, with no embedded whitespace;
// callers wrap the result to their own column width (the XML writer wraps
// at ~76 columns per spec.md §4.3).
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// WrapBase64 rewraps an unbroken base64 string into lines of at most width
// characters, used by the XML writer's <data> element formatting.
func WrapBase64(encoded string, width int) []string {
	if width <= 0 || len(encoded) <= width {
		return []string{encoded}
	}
	lines := make([]string, 0, (len(encoded)+width-1)/width)
	for i := 0; i < len(encoded); i += width {
		end := i + width
		if end > len(encoded) {
			end = len(encoded)
		}
		lines = append(lines, encoded[i:end])
	}
	return lines
}
