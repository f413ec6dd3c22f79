// pkg/plistutil/date.go
package plistutil

import (
	"errors"
	"fmt"
	"time"
)

// MacEpochOffset is the number of seconds the Apple/Mac reference date
// (2001-01-01T00:00:00Z) sits after the Unix epoch.
const MacEpochOffset = 978307200

// ErrDateLength reports an XML <date> element outside the accepted
// length range (spec.md §4.3: "Lengths outside 11..31 are rejected").
var ErrDateLength = errors.New("plistutil: date string has invalid length")

const iso8601Layout = "2006-01-02T15:04:05Z"

// ParseISO8601 parses the Apple XML plist date format (a restricted ISO
// 8601: "YYYY-MM-DDTHH:MM:SSZ") into seconds since the Apple epoch, using a
// 64-bit-safe calendar routine (time.Time already carries an int64 second
// count, so no separate widening is needed in Go).
func ParseISO8601(s string) (float64, error) {
	if len(s) < 11 || len(s) > 31 {
		return 0, ErrDateLength
	}
	t, err := time.Parse(iso8601Layout, s)
	if err != nil {
		return 0, fmt.Errorf("plistutil: parse date %q: %w", s, err)
	}
	return float64(t.Unix()) - MacEpochOffset, nil
}

// FormatISO8601 formats seconds-since-Apple-epoch as "YYYY-MM-DDTHH:MM:SSZ".
func FormatISO8601(secondsSinceMacEpoch float64) string {
	sec := int64(secondsSinceMacEpoch) + MacEpochOffset
	return time.Unix(sec, 0).UTC().Format(iso8601Layout)
}
