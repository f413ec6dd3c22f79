// pkg/plist/write.go
package plist

import (
	"plist/pkg/codec/bplist"
	"plist/pkg/codec/jsonplist"
	"plist/pkg/codec/openstep"
	"plist/pkg/codec/xmlplist"
	"plist/pkg/node"
)

// Write serializes tree in the given format. If opts.Sort is set, a
// sorted copy is written instead of mutating the caller's tree in place
// (node.Sort is otherwise an in-place operation).
func Write(tree *node.Node, format Format, opts WriteOptions) ([]byte, error) {
	root := tree
	if opts.Sort {
		sorted, err := node.Copy(tree)
		if err != nil {
			return nil, err
		}
		node.Sort(sorted)
		root = sorted
	}
	switch format {
	case FormatBinary:
		return bplist.Write(root)
	case FormatXML:
		return xmlplist.Write(root, xmlplist.WriteOptions{Compact: opts.Compact})
	case FormatJSON:
		return jsonplist.Write(root, jsonplist.WriteOptions{Compact: opts.Compact, Coerce: opts.Coerce})
	case FormatOpenStep:
		return openstep.Write(root, openstep.WriteOptions{Compact: opts.Compact})
	default:
		return nil, parseErr("unknown plist format")
	}
}
