// pkg/codec/openstep/writer.go
package openstep

import (
	"strconv"
	"strings"

	"plist/pkg/node"
)

// Write serializes a Node tree as OpenStep/GNUstep ASCII. Types the
// classic OpenStep grammar has no syntax for (Int, Real, Bool, Date, Uid)
// are written using the GNUstep typed-literal extensions; Null has no
// GNUstep extension and fails the write with Format.
func Write(root *node.Node, opts WriteOptions) ([]byte, error) {
	var b strings.Builder
	if err := writeValue(&b, root, 0, opts); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeValue(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	switch node.GetType(n) {
	case node.KindNull:
		return formatErr("OpenStep has no representation for a Null node")
	case node.KindBool:
		if node.GetBoolVal(n) {
			b.WriteString("<*BY>")
		} else {
			b.WriteString("<*BN>")
		}
	case node.KindInt:
		b.WriteString("<*I")
		if node.GetWidth(n) == node.Width128 {
			b.WriteString(strconv.FormatUint(node.GetUintVal(n), 10))
		} else {
			b.WriteString(strconv.FormatInt(node.GetIntVal(n), 10))
		}
		b.WriteByte('>')
	case node.KindReal:
		b.WriteString("<*R")
		b.WriteString(strconv.FormatFloat(node.GetRealVal(n), 'g', -1, 64))
		b.WriteByte('>')
	case node.KindString, node.KindKey:
		writeString(b, node.GetStringVal(n))
	case node.KindData:
		writeData(b, node.GetDataPtr(n), opts)
	case node.KindDate:
		b.WriteString("<*D")
		b.WriteString(node.GetUnixDateVal(n).UTC().Format(gnuStepDateLayout))
		b.WriteByte('>')
	case node.KindUid:
		return writeUID(b, n, depth, opts)
	case node.KindArray:
		return writeArray(b, n, depth, opts)
	case node.KindDict:
		return writeDict(b, n, depth, opts)
	default:
		return formatErr("node kind cannot be written as OpenStep")
	}
	return nil
}

// writeUID has no native OpenStep syntax; it is written the same
// one-entry-dict shape the XML and JSON codecs use for NSKeyedArchiver
// UID references, for consistency across this module's codecs.
func writeUID(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	b.WriteByte('{')
	newline(b, opts)
	pad(b, depth+1, opts)
	writeString(b, "CF$UID")
	b.WriteString(" = ")
	b.WriteString(strconv.FormatUint(node.GetUidVal(n), 10))
	b.WriteByte(';')
	newline(b, opts)
	pad(b, depth, opts)
	b.WriteByte('}')
	return nil
}

func writeArray(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	size := node.GetSize(n)
	b.WriteByte('(')
	if size == 0 {
		b.WriteByte(')')
		return nil
	}
	for i := 0; i < size; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		newline(b, opts)
		pad(b, depth+1, opts)
		if err := writeValue(b, node.GetItem(n, i), depth+1, opts); err != nil {
			return err
		}
	}
	newline(b, opts)
	pad(b, depth, opts)
	b.WriteByte(')')
	return nil
}

func writeDict(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	b.WriteByte('{')
	if node.GetSize(n) == 0 {
		b.WriteByte('}')
		return nil
	}
	it := node.NewDictIterator(n)
	for {
		key, val, more, err := it.Next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		newline(b, opts)
		pad(b, depth+1, opts)
		writeString(b, key)
		b.WriteString(" = ")
		if err := writeValue(b, val, depth+1, opts); err != nil {
			return err
		}
		b.WriteByte(';')
	}
	newline(b, opts)
	pad(b, depth, opts)
	b.WriteByte('}')
	return nil
}

func newline(b *strings.Builder, opts WriteOptions) {
	if !opts.Compact {
		b.WriteByte('\n')
	}
}

func pad(b *strings.Builder, depth int, opts WriteOptions) {
	if opts.Compact {
		return
	}
	for i := 0; i < depth; i++ {
		b.WriteByte('\t')
	}
}

// writeString chooses bareword when the text matches [A-Za-z0-9._/$]+
// and is non-empty, else a double-quoted escaped form (spec.md §4.5).
func writeString(b *strings.Builder, s string) {
	if isBareword(s) {
		b.WriteString(s)
		return
	}
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteByte('\\')
				b.WriteString(octal3(c))
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
}

func octal3(c byte) string {
	const digits = "01234567"
	return string([]byte{digits[(c>>6)&7], digits[(c>>3)&7], digits[c&7]})
}

func isBareword(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !barewordRune(s[i]) {
			return false
		}
	}
	return true
}

// writeData emits `<hex bytes>`, space-separated one byte per pair in
// pretty mode and contiguous in compact mode.
func writeData(b *strings.Builder, data []byte, opts WriteOptions) {
	const hex = "0123456789abcdef"
	b.WriteByte('<')
	for i, c := range data {
		if i > 0 && !opts.Compact {
			b.WriteByte(' ')
		}
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0xF])
	}
	b.WriteByte('>')
}
