// pkg/codec/jsonplist/writer.go
package jsonplist

import (
	"math"
	"strconv"
	"strings"

	"plist/pkg/node"
	"plist/pkg/plistutil"
)

// Write serializes a Node tree as JSON. Without WriteOptions.Coerce, a
// tree containing Data, Date, or Uid fails the whole write with Format
// (spec.md §4.4): that check runs as a pre-pass so a caller never
// receives a partially written document.
func Write(root *node.Node, opts WriteOptions) ([]byte, error) {
	if !opts.Coerce {
		if err := rejectUncoercible(root, 0); err != nil {
			return nil, err
		}
	}
	var b strings.Builder
	if err := writeValue(&b, root, 0, opts); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func rejectUncoercible(n *node.Node, depth int) error {
	if depth > node.MaxDepth {
		return node.ErrMaxNesting()
	}
	switch node.GetType(n) {
	case node.KindData, node.KindDate, node.KindUid:
		return formatErr("tree contains a " + node.GetType(n).String() + " value; JSON cannot represent it without coerce")
	case node.KindArray:
		for i := 0; i < node.GetSize(n); i++ {
			if err := rejectUncoercible(node.GetItem(n, i), depth+1); err != nil {
				return err
			}
		}
	case node.KindDict:
		it := node.NewDictIterator(n)
		for {
			_, val, more, err := it.Next()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			if err := rejectUncoercible(val, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeValue(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	switch node.GetType(n) {
	case node.KindNull:
		b.WriteString("null")
	case node.KindBool:
		if node.GetBoolVal(n) {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case node.KindInt:
		writeInteger(b, n, opts)
	case node.KindReal:
		v := node.GetRealVal(n)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return formatErr("real value has no JSON representation: " + plistutil.FormatReal(v))
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case node.KindString, node.KindKey:
		writeJSONString(b, node.GetStringVal(n))
	case node.KindData:
		writeJSONString(b, plistutil.EncodeBase64(node.GetDataPtr(n)))
	case node.KindDate:
		writeJSONString(b, plistutil.FormatISO8601(node.GetDateVal(n)))
	case node.KindUid:
		b.WriteByte('{')
		newline(b, opts)
		pad(b, depth+1, opts)
		writeJSONString(b, "CF$UID")
		b.WriteByte(':')
		space(b, opts)
		b.WriteString(strconv.FormatUint(node.GetUidVal(n), 10))
		newline(b, opts)
		pad(b, depth, opts)
		b.WriteByte('}')
	case node.KindArray:
		return writeArray(b, n, depth, opts)
	case node.KindDict:
		return writeDict(b, n, depth, opts)
	default:
		return formatErr("node kind cannot be written as JSON")
	}
	return nil
}

func writeInteger(b *strings.Builder, n *node.Node, opts WriteOptions) {
	var text string
	var magnitude uint64
	if node.GetWidth(n) == node.Width128 {
		v := node.GetUintVal(n)
		text = strconv.FormatUint(v, 10)
		magnitude = v
	} else {
		v := node.GetIntVal(n)
		text = strconv.FormatInt(v, 10)
		if v < 0 {
			magnitude = uint64(-v)
		} else {
			magnitude = uint64(v)
		}
	}
	b.WriteString(text)
	if opts.Coerce && magnitude > jsonSafeIntegerLimit {
		Logger.Printf("jsonplist: integer %s exceeds JSON's safe range (2^53); precision loss possible in downstream JSON consumers", text)
	}
}

func writeArray(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	size := node.GetSize(n)
	b.WriteByte('[')
	if size == 0 {
		b.WriteByte(']')
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
	b.WriteByte(']')
	return nil
}

func writeDict(b *strings.Builder, n *node.Node, depth int, opts WriteOptions) error {
	b.WriteByte('{')
	if node.GetSize(n) == 0 {
		b.WriteByte('}')
		return nil
	}
	it := node.NewDictIterator(n)
	first := true
	for {
		key, val, more, err := it.Next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		newline(b, opts)
		pad(b, depth+1, opts)
		writeJSONString(b, key)
		b.WriteByte(':')
		space(b, opts)
		if err := writeValue(b, val, depth+1, opts); err != nil {
			return err
		}
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
		b.WriteString("  ")
	}
}

func space(b *strings.Builder, opts WriteOptions) {
	if !opts.Compact {
		b.WriteByte(' ')
	}
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				const hex = "0123456789abcdef"
				b.WriteString("\\u00")
				b.WriteByte(hex[(r>>4)&0xF])
				b.WriteByte(hex[r&0xF])
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
