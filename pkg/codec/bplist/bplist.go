// pkg/codec/bplist/bplist.go
// Package bplist implements the Apple binary property list format
// (bplist00): object records, an offset table, and a fixed 32-byte
// trailer. Layout constants and the read/write split mirror
// pkg/dbfile/header.go's treatment of the TurDB file header in the
// teacher repo this module grew out of.
package bplist

import "plist/pkg/node"

// Magic identifies a bplist00 stream.
const Magic = "bplist00"

// TrailerSize is the fixed size, in bytes, of the trailer that closes
// every bplist00 stream.
const TrailerSize = 32

func parseErr(msg string) error       { return node.NewError(node.KindParse, msg) }
func parseErrWrap(msg string, cause error) error {
	return node.Wrap(node.KindParse, msg, cause)
}
func formatErr(msg string) error { return node.NewError(node.KindFormat, msg) }
func circularErr() error         { return node.NewError(node.KindCircularRef, "circular object reference detected") }

// bytesNeeded returns the smallest power-of-two byte width (1, 2, 4, or 8)
// able to hold v, used for both offset_size and object_ref_size
// (spec.md §4.2 writer step 2).
func bytesNeeded(v uint64) int {
	switch {
	case v < 1<<8:
		return 1
	case v < 1<<16:
		return 2
	case v < 1<<32:
		return 4
	default:
		return 8
	}
}
