// pkg/codec/jsonplist/jsonplist.go
// Package jsonplist implements a JSON reader/writer compatible with the
// subset/superset of RFC 8259 Apple's NSJSONSerialization accepts: object
// or array at the top level, with an optional lossy "coerce" mode for the
// plist variants JSON cannot natively express. The scanner is hand-written
// rather than built on encoding/json so escape handling (surrogate pairs,
// "\/") and the coerce/Format-rejection behavior stay exact.
package jsonplist

import (
	"io"
	"log"

	"plist/pkg/node"
)

func parseErr(msg string) error  { return node.NewError(node.KindParse, msg) }
func formatErr(msg string) error { return node.NewError(node.KindFormat, msg) }

// Logger receives diagnostics the writer emits about lossy coercions
// (precision loss on integers outside JSON's safe range); silent by
// default, the way pkg/dbfile/metadata.go's package logger is in the
// teacher repo.
var Logger = log.New(io.Discard, "", 0)

// SetLogger installs a non-nil logger for jsonplist diagnostics.
func SetLogger(l *log.Logger) {
	if l != nil {
		Logger = l
	}
}

// WriteOptions controls the JSON writer's output shape and coercion policy.
type WriteOptions struct {
	// Compact disables pretty-printing (two-space indent, one member per
	// line) in favor of the most compact valid encoding.
	Compact bool
	// Coerce permits lossy mappings for Data, Date, and Uid nodes that
	// JSON cannot natively express. Without it, a tree containing any of
	// those kinds fails the whole write with Format.
	Coerce bool
}

// jsonSafeIntegerLimit is 2^53, the largest integer magnitude a JSON
// number round-trips through an IEEE-754 double without loss.
const jsonSafeIntegerLimit = 1 << 53
