// pkg/codec/xmlplist/reader.go
package xmlplist

import (
	"math"
	"strconv"
	"strings"

	"plist/pkg/node"
	"plist/pkg/plistutil"
)

// Read parses a complete Apple XML plist document into a Node tree.
func Read(data []byte) (*node.Node, error) {
	s := newScanner(data)
	if err := s.skipMisc(); err != nil {
		return nil, err
	}
	rootName, err := s.readTagName()
	if err != nil {
		return nil, err
	}
	if rootName != "plist" {
		return nil, parseErr("missing <plist> root element, found <" + rootName + ">")
	}
	selfClosed, err := s.skipAttributesAndClose()
	if err != nil {
		return nil, err
	}
	if selfClosed {
		return nil, parseErr("empty <plist/> has no root value")
	}

	if err := s.skipMisc(); err != nil {
		return nil, err
	}
	if s.hasPrefix("</plist>") {
		return nil, parseErr("<plist> has no value child")
	}
	root, err := parseValue(s, 0)
	if err != nil {
		return nil, err
	}

	if err := s.skipMisc(); err != nil {
		return nil, err
	}
	if !s.hasPrefix("</plist>") {
		return nil, parseErr("second value child of <plist>, or unterminated root")
	}
	if err := s.expectLiteral("</plist>"); err != nil {
		return nil, err
	}
	return root, nil
}

func parseValue(s *scanner, depth int) (*node.Node, error) {
	if depth > node.MaxDepth {
		return nil, node.ErrMaxNesting()
	}
	if err := s.skipMisc(); err != nil {
		return nil, err
	}
	name, err := s.readTagName()
	if err != nil {
		return nil, err
	}
	switch name {
	case "true", "false":
		if _, err := s.skipAttributesAndClose(); err != nil {
			return nil, err
		}
		return node.NewBool(name == "true"), nil
	case "integer":
		selfClosed, err := s.skipAttributesAndClose()
		if err != nil {
			return nil, err
		}
		if selfClosed {
			return node.NewInt(0), nil
		}
		text, err := s.readElementText("integer")
		if err != nil {
			return nil, err
		}
		bits, width, err := parseIntegerText(text)
		if err != nil {
			return nil, err
		}
		return node.NewUintWidth(bits, width), nil
	case "real":
		text, err := consumeTextElement(s, "real")
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, parseErr("malformed real literal " + strconv.Quote(text))
		}
		return node.NewReal(v), nil
	case "string":
		text, err := consumeTextElement(s, "string")
		if err != nil {
			return nil, err
		}
		return node.NewString(text), nil
	case "data":
		text, err := consumeTextElement(s, "data")
		if err != nil {
			return nil, err
		}
		raw, err := plistutil.DecodeBase64(text)
		if err != nil {
			return nil, parseErr("malformed base64 data")
		}
		return node.NewData(raw), nil
	case "date":
		text, err := consumeTextElement(s, "date")
		if err != nil {
			return nil, err
		}
		v, err := plistutil.ParseISO8601(strings.TrimSpace(text))
		if err != nil {
			return nil, parseErr("malformed date " + strconv.Quote(text))
		}
		return node.NewDate(v), nil
	case "array":
		return parseArray(s, depth)
	case "dict":
		return parseDict(s, depth)
	default:
		return nil, parseErr("unrecognized element <" + name + ">")
	}
}

// consumeTextElement handles the common case of "<name attrs?>text</name>"
// with no self-closing form expected.
func consumeTextElement(s *scanner, name string) (string, error) {
	selfClosed, err := s.skipAttributesAndClose()
	if err != nil {
		return "", err
	}
	if selfClosed {
		return "", nil
	}
	return s.readElementText(name)
}

func parseArray(s *scanner, depth int) (*node.Node, error) {
	selfClosed, err := s.skipAttributesAndClose()
	if err != nil {
		return nil, err
	}
	arr := node.NewArray()
	if selfClosed {
		return arr, nil
	}
	for {
		if err := s.skipMisc(); err != nil {
			return nil, err
		}
		if s.hasPrefix("</array>") {
			if err := s.expectLiteral("</array>"); err != nil {
				return nil, err
			}
			return arr, nil
		}
		item, err := parseValue(s, depth+1)
		if err != nil {
			return nil, err
		}
		if err := node.AppendItem(arr, item); err != nil {
			return nil, err
		}
	}
}

func parseDict(s *scanner, depth int) (*node.Node, error) {
	selfClosed, err := s.skipAttributesAndClose()
	if err != nil {
		return nil, err
	}
	dict := node.NewDict()
	if selfClosed {
		return dict, nil
	}
	seen := make(map[string]bool)
	duplicate := false
	for {
		if err := s.skipMisc(); err != nil {
			return nil, err
		}
		if s.hasPrefix("</dict>") {
			if err := s.expectLiteral("</dict>"); err != nil {
				return nil, err
			}
			if duplicate {
				return nil, parseErr("dict contains a duplicate key")
			}
			promoted := promoteUID(dict)
			if promoted != dict {
				Logger.Printf("xmlplist: promoted single-entry CF$UID dict to Uid(%d)", node.GetUidVal(promoted))
			}
			return promoted, nil
		}
		tagName, err := s.readTagName()
		if err != nil {
			return nil, err
		}
		if tagName != "key" {
			return nil, parseErr("expected <key> in <dict>, found <" + tagName + ">")
		}
		key, err := consumeTextElement(s, "key")
		if err != nil {
			return nil, err
		}
		if seen[key] {
			duplicate = true
		}
		seen[key] = true
		val, err := parseValue(s, depth+1)
		if err != nil {
			return nil, err
		}
		// Last-wins during construction; a trailing duplicate check above
		// fails the whole parse once the dict is complete (spec.md §9 open
		// question: the source is inconsistent, this codec takes the
		// "tolerate then fail" position explicitly attributed there).
		if err := node.DictSetItem(dict, key, val); err != nil {
			return nil, err
		}
	}
}

// promoteUID rewrites a single-entry {"CF$UID": integer} dict into a Uid
// node, the XML encoding NSKeyedArchiver uses for object references
// (spec.md §4.3).
func promoteUID(dict *node.Node) *node.Node {
	if node.GetSize(dict) != 1 {
		return dict
	}
	v := node.DictGetItem(dict, "CF$UID")
	if v == nil || node.GetType(v) != node.KindInt {
		return dict
	}
	return node.NewUid(node.GetUintVal(v))
}

func parseIntegerText(raw string) (bits uint64, width node.IntWidth, err error) {
	text := strings.TrimSpace(raw)
	neg := false
	switch {
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	case strings.HasPrefix(text, "-"):
		neg = true
		text = text[1:]
	}
	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		base = 16
		text = text[2:]
	}
	mag, perr := strconv.ParseUint(text, base, 64)
	if perr != nil {
		return 0, node.Width64, parseErr("malformed integer literal " + strconv.Quote(raw))
	}
	if neg {
		return uint64(-int64(mag)), node.Width64, nil
	}
	if mag > math.MaxInt64 {
		return mag, node.Width128, nil
	}
	return mag, node.Width64, nil
}
