// pkg/codec/xmlplist/xmlplist.go
// Package xmlplist implements the Apple XML property list format
// (plist version 1.0): a hand-written scanner and recursive-descent parser,
// not a generic encoding/xml decoder, since the format's entity/CDATA/
// DOCTYPE handling and single-root-value rule need exact control. The
// scanner style follows pkg/sql/lexer's byte-slice-plus-position approach
// in the teacher repo.
package xmlplist

import (
	"io"
	"log"

	"plist/pkg/node"
)

func parseErr(msg string) error  { return node.NewError(node.KindParse, msg) }
func formatErr(msg string) error { return node.NewError(node.KindFormat, msg) }

// Logger receives verbose parser diagnostics (the reader logs each CF$UID
// promotion); silent by default, enabled by the CLI's -d flag and
// by PLIST_XML_DEBUG=1 (spec.md §6), matching the package-logger
// convention used by jsonplist and openstep.
var Logger = log.New(io.Discard, "", 0)

// SetLogger installs a non-nil logger for xmlplist diagnostics.
func SetLogger(l *log.Logger) {
	if l != nil {
		Logger = l
	}
}

// WriteOptions controls the XML writer's output shape.
type WriteOptions struct {
	// Compact strips the pretty-printed indentation and newlines between
	// elements when true.
	Compact bool
}
