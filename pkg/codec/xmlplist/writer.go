// pkg/codec/xmlplist/writer.go
package xmlplist

import (
	"strconv"
	"strings"

	"plist/pkg/node"
	"plist/pkg/plistutil"
)

const (
	header  = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>"
	doctype = "<!DOCTYPE plist PUBLIC \"-//Apple//DTD PLIST 1.0//EN\" \"http://www.apple.com/DTDs/PropertyList-1.0.dtd\">"
)

// dataWrapWidth is the column width the writer wraps base64 <data> text to.
const dataWrapWidth = 76

// Write serializes a Node tree as an Apple XML plist document.
func Write(root *node.Node, opts WriteOptions) ([]byte, error) {
	var b strings.Builder
	b.WriteString(header)
	if !opts.Compact {
		b.WriteByte('\n')
	}
	b.WriteString(doctype)
	if !opts.Compact {
		b.WriteByte('\n')
	}
	b.WriteString("<plist version=\"1.0\">")
	if !opts.Compact {
		b.WriteByte('\n')
	}
	if err := writeValue(&b, root, 1, opts); err != nil {
		return nil, err
	}
	if !opts.Compact {
		b.WriteByte('\n')
	}
	b.WriteString("</plist>")
	if !opts.Compact {
		b.WriteByte('\n')
	}
	return []byte(b.String()), nil
}

func indent(b *strings.Builder, depth int, opts WriteOptions) {
	if opts.Compact {
		return
	}
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
}

func writeValue(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	switch node.GetType(n) {
	case node.KindBool:
		if node.GetBoolVal(n) {
			b.WriteString("<true/>")
		} else {
			b.WriteString("<false/>")
		}
	case node.KindInt:
		b.WriteString("<integer>")
		if node.GetWidth(n) == node.Width128 {
			b.WriteString(strconv.FormatUint(node.GetUintVal(n), 10))
		} else {
			b.WriteString(strconv.FormatInt(node.GetIntVal(n), 10))
		}
		b.WriteString("</integer>")
	case node.KindReal:
		b.WriteString("<real>")
		b.WriteString(plistutil.FormatReal(node.GetRealVal(n)))
		b.WriteString("</real>")
	case node.KindString, node.KindKey:
		b.WriteString("<string>")
		b.WriteString(escapeText(node.GetStringVal(n)))
		b.WriteString("</string>")
	case node.KindData:
		return writeData(b, node.GetDataPtr(n), depth, opts)
	case node.KindDate:
		b.WriteString("<date>")
		b.WriteString(plistutil.FormatISO8601(node.GetDateVal(n)))
		b.WriteString("</date>")
	case node.KindUid:
		return writeUID(b, node.GetUidVal(n), depth, opts)
	case node.KindNull:
		// No dedicated XML element exists for Null in Apple's DTD; the
		// writer emits an empty string as the closest faithful shape.
		b.WriteString("<string></string>")
	case node.KindArray:
		return writeArray(b, n, depth, opts)
	case node.KindDict:
		return writeDict(b, n, depth, opts)
	default:
		return formatErr("node kind cannot be written as XML")
	}
	return nil
}

func writeArray(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	size := node.GetSize(n)
	if size == 0 {
		b.WriteString("<array/>")
		return nil
	}
	b.WriteString("<array>")
	for i := 0; i < size; i++ {
		if !opts.Compact {
			b.WriteByte('\n')
		}
		indent(b, depth+1, opts)
		if err := writeValue(b, node.GetItem(n, i), depth+1, opts); err != nil {
			return err
		}
	}
	if !opts.Compact {
		b.WriteByte('\n')
	}
	indent(b, depth, opts)
	b.WriteString("</array>")
	return nil
}

func writeDict(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	if node.GetSize(n) == 0 {
		b.WriteString("<dict/>")
		return nil
	}
	b.WriteString("<dict>")
	it := node.NewDictIterator(n)
	for {
		key, val, more, err := it.Next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if !opts.Compact {
			b.WriteByte('\n')
		}
		indent(b, depth+1, opts)
		b.WriteString("<key>")
		b.WriteString(escapeText(key))
		b.WriteString("</key>")
		if !opts.Compact {
			b.WriteByte('\n')
		}
		indent(b, depth+1, opts)
		if err := writeValue(b, val, depth+1, opts); err != nil {
			return err
		}
	}
	if !opts.Compact {
		b.WriteByte('\n')
	}
	indent(b, depth, opts)
	b.WriteString("</dict>")
	return nil
}

// writeUID writes the inverse of the reader's CF$UID promotion: a
// single-entry dict binding "CF$UID" to the Uid's integer value.
func writeUID(b *strings.Builder, v uint64, depth int, opts WriteOptions) error {
	b.WriteString("<dict>")
	if !opts.Compact {
		b.WriteByte('\n')
	}
	indent(b, depth+1, opts)
	b.WriteString("<key>CF$UID</key>")
	if !opts.Compact {
		b.WriteByte('\n')
	}
	indent(b, depth+1, opts)
	b.WriteString("<integer>")
	b.WriteString(strconv.FormatUint(v, 10))
	b.WriteString("</integer>")
	if !opts.Compact {
		b.WriteByte('\n')
	}
	indent(b, depth, opts)
	b.WriteString("</dict>")
	return nil
}

func writeData(b *strings.Builder, raw []byte, depth int, opts WriteOptions) error {
	encoded := plistutil.EncodeBase64(raw)
	if opts.Compact {
		b.WriteString("<data>")
		b.WriteString(encoded)
		b.WriteString("</data>")
		return nil
	}
	lines := plistutil.WrapBase64(encoded, dataWrapWidth)
	b.WriteString("<data>")
	for _, line := range lines {
		b.WriteByte('\n')
		indent(b, depth+1, opts)
		b.WriteString(line)
	}
	b.WriteByte('\n')
	indent(b, depth, opts)
	b.WriteString("</data>")
	return nil
}

// escapeText escapes '<', '>', '&' only — not quotes — matching the
// writer rule for string/key text content (spec.md §4.3).
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
