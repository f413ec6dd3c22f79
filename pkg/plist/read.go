// pkg/plist/read.go
package plist

import (
	"plist/pkg/codec/bplist"
	"plist/pkg/codec/jsonplist"
	"plist/pkg/codec/openstep"
	"plist/pkg/codec/xmlplist"
	"plist/pkg/node"
)

// ReadFromMemory sniffs data's format and parses it into a Node tree,
// returning the format detected alongside the tree (the CLI uses it as the
// output format when -f/--format is not given explicitly).
func ReadFromMemory(data []byte) (*node.Node, Format, error) {
	format, err := Sniff(data)
	if err != nil {
		return nil, 0, err
	}
	root, err := readAs(data, format)
	if err != nil {
		return nil, format, err
	}
	return root, format, nil
}

// readAs parses data as an explicitly chosen format, bypassing Sniff. It
// backs both ReadFromMemory (after sniffing) and the exported Read.
func readAs(data []byte, format Format) (*node.Node, error) {
	switch format {
	case FormatBinary:
		return bplist.Read(data)
	case FormatXML:
		return xmlplist.Read(data)
	case FormatJSON:
		return jsonplist.Read(data)
	case FormatOpenStep:
		return openstep.Read(data)
	default:
		return nil, parseErr("unknown plist format")
	}
}

// Read parses data as the explicitly given format.
func Read(data []byte, format Format) (*node.Node, error) {
	return readAs(data, format)
}
