// pkg/plistutil/utf16.go
package plistutil

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrOddUTF16Length reports a UTF-16BE byte buffer with a trailing odd byte.
var ErrOddUTF16Length = errors.New("plistutil: odd-length UTF-16BE buffer")

// DecodeUTF16BE converts big-endian UTF-16 code units (as the binary codec's
// 0x6_ string records store them) to a UTF-8 string, explicitly combining
// surrogate pairs (spec.md §9 DESIGN NOTES).
func DecodeUTF16BE(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", ErrOddUTF16Length
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
	}
	return string(utf16.Decode(units)), nil
}

// EncodeUTF16BE converts a UTF-8 string to big-endian UTF-16 code units,
// producing surrogate pairs for supplementary-plane runes.
func EncodeUTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		out[2*i] = byte(u >> 8)
		out[2*i+1] = byte(u)
	}
	return out
}

// IsASCII7 reports whether s is pure 7-bit ASCII, the condition the binary
// writer uses to choose the compact 0x5_ ASCII string record over the
// 0x6_ UTF-16BE form (spec.md §4.2).
func IsASCII7(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Latin1ToUTF8 widens a byte-per-character Latin-1/ASCII buffer (the
// binary codec's 0x5_ records) to UTF-8, tolerating bytes >= 0x80 as single
// Latin-1 code points the way the reference reader does (spec.md §4.2
// point 4).
func Latin1ToUTF8(b []byte) string {
	var buf []byte
	for _, c := range b {
		buf = utf8.AppendRune(buf, rune(c))
	}
	return string(buf)
}
