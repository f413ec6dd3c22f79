// pkg/plistutil/real.go
package plistutil

import (
	"math"
	"strconv"
	"strings"
)

// FormatReal renders a double the way the XML writer does: fixed
// precision "integer.sixdigits", never exponential notation, rounding the
// 7th digit half-away-from-zero (spec.md §4.3).
func FormatReal(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}

	neg := math.Signbit(v)
	av := math.Abs(v)

	// strconv's 'f' verb with explicit precision rounds the exact binary
	// value; Apple's writer rounds the decimal 7th digit half-away-from-zero,
	// so format with 7 fractional digits first and then round that 7th
	// digit by hand below.
	rounded := strconv.FormatFloat(av, 'f', 7, 64)
	dot := strings.IndexByte(rounded, '.')
	intPart := rounded[:dot]
	frac := rounded[dot+1:]

	// frac has exactly 7 digits; round-half-away-from-zero on the 7th.
	keep := []byte(frac[:6])
	if frac[6] >= '5' {
		keep = roundUpDecimal(keep)
		if len(keep) > 6 {
			// Carried out of the fractional part into the integer part.
			intPart = incrementDecimalString(intPart)
			keep = keep[1:]
		}
	}

	out := intPart + "." + string(keep)
	if neg && av != 0 {
		out = "-" + out
	}
	return out
}

// roundUpDecimal adds one to the decimal digit string b, possibly growing
// it by one leading digit on carry-out (e.g. "999999" -> "1000000").
func roundUpDecimal(b []byte) []byte {
	out := append([]byte(nil), b...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] < '9' {
			out[i]++
			return out
		}
		out[i] = '0'
	}
	return append([]byte{'1'}, out...)
}

func incrementDecimalString(s string) string {
	b := roundUpDecimal([]byte(s))
	return string(b)
}
