// pkg/plist/sniff.go
package plist

import "strings"

const binaryMagic = "bplist00"

// Sniff identifies a byte slice's plist format per spec.md §4.6: the
// literal "bplist00" magic selects binary; otherwise, after skipping
// leading whitespace, the first non-whitespace byte drives the rest of
// the dispatch.
func Sniff(data []byte) (Format, error) {
	if strings.HasPrefix(string(data), binaryMagic) {
		return FormatBinary, nil
	}
	start := skipLeadingWS(data)
	if start >= len(data) {
		return 0, parseErr("empty or all-whitespace input; cannot sniff plist format")
	}
	rest := data[start:]
	switch rest[0] {
	case '<':
		// A non-hex follower triad means this is an XML tag opener
		// ("<?xml", "<plist", "<!--", ...); a hex triad means it's an
		// OpenStep `<hex bytes>` data literal instead.
		if isHexTriad(rest[1:]) {
			return FormatOpenStep, nil
		}
		return FormatXML, nil
	case '[':
		return FormatJSON, nil
	case '(':
		return FormatOpenStep, nil
	case '{':
		if looksLikeJSONObject(rest) {
			return FormatJSON, nil
		}
		return FormatOpenStep, nil
	default:
		return FormatOpenStep, nil
	}
}

func skipLeadingWS(data []byte) int {
	i := 0
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

// isHexTriad reports whether the first three bytes of follower are all
// valid hex digits; used to tell a bareword-starting-with-letters XML tag
// from an OpenStep hex data literal immediately after the leading '<'.
func isHexTriad(follower []byte) bool {
	if len(follower) < 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		c := follower[i]
		isHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
		if !isHex {
			return false
		}
	}
	return true
}

// looksLikeJSONObject peeks past '{' and whitespace for a JSON `"key":`
// signature: a quoted string immediately followed (after whitespace) by
// a colon. OpenStep dict syntax uses '=' in that position instead, so
// the two are unambiguous once a key is found.
func looksLikeJSONObject(rest []byte) bool {
	i := 1
	for i < len(rest) && isWS(rest[i]) {
		i++
	}
	if i >= len(rest) || rest[i] != '"' {
		return false
	}
	i++
	for i < len(rest) {
		if rest[i] == '\\' {
			i += 2
			continue
		}
		if rest[i] == '"' {
			i++
			break
		}
		i++
	}
	for i < len(rest) && isWS(rest[i]) {
		i++
	}
	return i < len(rest) && rest[i] == ':'
}

func isWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
