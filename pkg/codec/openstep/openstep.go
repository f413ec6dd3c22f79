// pkg/codec/openstep/openstep.go
// Package openstep implements the OpenStep/GNUstep ASCII property list
// dialect: `{ key = value; }` dicts, `( v, v )` arrays, bareword/quoted
// strings, `<hex>` data, and the GNUstep `<*I.../*R.../*B.../*D...>`
// typed-literal extensions. Like the other codecs in this module, the
// scanner is hand-written rather than built on a generic tokenizer so the
// bareword charset and octal-escape rules stay exact.
package openstep

import (
	"io"
	"log"

	"plist/pkg/node"
)

func parseErr(msg string) error  { return node.NewError(node.KindParse, msg) }
func formatErr(msg string) error { return node.NewError(node.KindFormat, msg) }

// Logger is this package's diagnostic hook, kept so SetLogger matches the
// package logging convention used throughout this module; the reader and
// writer do not currently log anything to it.
var Logger = log.New(io.Discard, "", 0)

// SetLogger installs a non-nil logger for openstep diagnostics.
func SetLogger(l *log.Logger) {
	if l != nil {
		Logger = l
	}
}

// WriteOptions controls the OpenStep writer's output shape.
type WriteOptions struct {
	// Compact removes newlines and redundant spaces in favor of the most
	// compact valid encoding.
	Compact bool
}

// gnuStepDateLayout matches the literal `<*DYYYY-MM-DD HH:MM:SS Z>` shape;
// the trailing "Z" is a fixed literal, not a timezone offset token.
const gnuStepDateLayout = "2006-01-02 15:04:05 Z"

// barewordRune reports whether r may appear in an unquoted bareword
// string per spec.md §4.5: `[A-Za-z0-9._/$]`.
func barewordRune(r byte) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '/' || r == '$':
		return true
	default:
		return false
	}
}
