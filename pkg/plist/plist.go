// pkg/plist/plist.go
// Package plist is the public surface over the four codec packages: a
// single format-sniffing reader, a format-dispatching writer, and two
// human-readable debug print writers. Callers build/inspect trees via
// pkg/node directly; this package only handles format detection and
// routing between pkg/node and the codec packages.
package plist

import (
	"plist/pkg/node"
)

// Format identifies one of the four serialization formats this module
// reads and writes.
type Format int

const (
	FormatBinary Format = iota
	FormatXML
	FormatJSON
	FormatOpenStep
)

// String implements fmt.Stringer, following pkg/sql/lexer's TokenType
// precedent for an enum surfaced across a package boundary.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	case FormatOpenStep:
		return "openstep"
	default:
		return "unknown"
	}
}

// WriteOptions controls every codec's writer through one call-site
// options struct, matching the teacher's avoidance of a config framework
// in favor of plain structs (dbfile.Header, pager.Options). Fields that
// don't apply to the selected Format are ignored (Coerce only affects
// FormatJSON).
type WriteOptions struct {
	// Compact disables pretty-printing for every format that supports it
	// (all but binary, which has no textual layout).
	Compact bool
	// Sort recursively sorts every Dict by key before writing, without
	// mutating the caller's tree (node.Sort runs on a Copy).
	Sort bool
	// Coerce permits JSON's lossy Data/Date/Uid mappings; ignored by the
	// other three codecs.
	Coerce bool
}

func parseErr(msg string) error { return node.NewError(node.KindParse, msg) }
