// pkg/codec/jsonplist/reader.go
package jsonplist

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"plist/pkg/node"
)

// Read parses a JSON document into a Node tree. The top-level value must
// be an object or an array, matching NSJSONSerialization (spec.md §4.4).
func Read(data []byte) (*node.Node, error) {
	s := &scanner{data: data}
	s.skipWS()
	if s.eof() {
		return nil, parseErr("empty JSON input")
	}
	switch s.data[s.pos] {
	case '{', '[':
	default:
		return nil, parseErr("top-level JSON value must be an object or array")
	}
	root, err := s.parseValue(0)
	if err != nil {
		return nil, err
	}
	s.skipWS()
	if !s.eof() {
		return nil, parseErr("trailing data after JSON value")
	}
	return root, nil
}

type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) eof() bool { return s.pos >= len(s.data) }

func (s *scanner) skipWS() {
	for !s.eof() {
		switch s.data[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) parseValue(depth int) (*node.Node, error) {
	if depth > node.MaxDepth {
		return nil, node.ErrMaxNesting()
	}
	s.skipWS()
	if s.eof() {
		return nil, parseErr("unexpected end of JSON input")
	}
	switch c := s.data[s.pos]; {
	case c == '{':
		return s.parseObject(depth)
	case c == '[':
		return s.parseArray(depth)
	case c == '"':
		str, err := s.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		return node.NewString(str), nil
	case c == 't':
		if err := s.expectLiteral("true"); err != nil {
			return nil, err
		}
		return node.NewBool(true), nil
	case c == 'f':
		if err := s.expectLiteral("false"); err != nil {
			return nil, err
		}
		return node.NewBool(false), nil
	case c == 'n':
		if err := s.expectLiteral("null"); err != nil {
			return nil, err
		}
		return node.NewNull(), nil
	case c == '-' || (c >= '0' && c <= '9'):
		return s.parseNumber()
	default:
		return nil, parseErr("unexpected character in JSON value")
	}
}

func (s *scanner) expectLiteral(lit string) error {
	if !strings.HasPrefix(string(s.data[s.pos:]), lit) {
		return parseErr("malformed literal, expected " + strconv.Quote(lit))
	}
	s.pos += len(lit)
	return nil
}

func (s *scanner) parseObject(depth int) (*node.Node, error) {
	s.pos++ // consume '{'
	dict := node.NewDict()
	s.skipWS()
	if !s.eof() && s.data[s.pos] == '}' {
		s.pos++
		return dict, nil
	}
	for {
		s.skipWS()
		if s.eof() || s.data[s.pos] != '"' {
			return nil, parseErr("expected string key in JSON object")
		}
		key, err := s.parseStringLiteral()
		if err != nil {
			return nil, err
		}
		s.skipWS()
		if s.eof() || s.data[s.pos] != ':' {
			return nil, parseErr("expected ':' after object key")
		}
		s.pos++
		val, err := s.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := node.DictSetItem(dict, key, val); err != nil {
			return nil, err
		}
		s.skipWS()
		if s.eof() {
			return nil, parseErr("unterminated JSON object")
		}
		switch s.data[s.pos] {
		case ',':
			s.pos++
			continue
		case '}':
			s.pos++
			return dict, nil
		default:
			return nil, parseErr("expected ',' or '}' in JSON object")
		}
	}
}

func (s *scanner) parseArray(depth int) (*node.Node, error) {
	s.pos++ // consume '['
	arr := node.NewArray()
	s.skipWS()
	if !s.eof() && s.data[s.pos] == ']' {
		s.pos++
		return arr, nil
	}
	for {
		val, err := s.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := node.AppendItem(arr, val); err != nil {
			return nil, err
		}
		s.skipWS()
		if s.eof() {
			return nil, parseErr("unterminated JSON array")
		}
		switch s.data[s.pos] {
		case ',':
			s.pos++
			continue
		case ']':
			s.pos++
			return arr, nil
		default:
			return nil, parseErr("expected ',' or ']' in JSON array")
		}
	}
}

func (s *scanner) parseStringLiteral() (string, error) {
	if s.eof() || s.data[s.pos] != '"' {
		return "", parseErr("expected '\"'")
	}
	s.pos++
	var b strings.Builder
	for {
		if s.eof() {
			return "", parseErr("unterminated JSON string")
		}
		c := s.data[s.pos]
		switch {
		case c == '"':
			s.pos++
			return b.String(), nil
		case c == '\\':
			s.pos++
			if s.eof() {
				return "", parseErr("unterminated escape sequence")
			}
			esc := s.data[s.pos]
			switch esc {
			case '"':
				b.WriteByte('"')
				s.pos++
			case '\\':
				b.WriteByte('\\')
				s.pos++
			case '/':
				b.WriteByte('/')
				s.pos++
			case 'b':
				b.WriteByte('\b')
				s.pos++
			case 'f':
				b.WriteByte('\f')
				s.pos++
			case 'n':
				b.WriteByte('\n')
				s.pos++
			case 'r':
				b.WriteByte('\r')
				s.pos++
			case 't':
				b.WriteByte('\t')
				s.pos++
			case 'u':
				r, err := s.readUnicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", parseErr("unknown escape sequence in JSON string")
			}
		case c < 0x20:
			return "", parseErr("unescaped control character in JSON string")
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
}

func (s *scanner) readUnicodeEscape() (rune, error) {
	// s.pos is at 'u'; consume it and the four hex digits.
	s.pos++
	u1, err := s.readHex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(u1)) {
		if s.pos+1 < len(s.data) && s.data[s.pos] == '\\' && s.data[s.pos+1] == 'u' {
			save := s.pos
			s.pos += 2
			u2, err := s.readHex4()
			if err == nil {
				if r := utf16.DecodeRune(rune(u1), rune(u2)); r != utf8.RuneError {
					return r, nil
				}
			}
			s.pos = save
		}
		return utf8.RuneError, nil
	}
	return rune(u1), nil
}

func (s *scanner) readHex4() (uint16, error) {
	if s.pos+4 > len(s.data) {
		return 0, parseErr("truncated \\u escape")
	}
	v, err := strconv.ParseUint(string(s.data[s.pos:s.pos+4]), 16, 16)
	if err != nil {
		return 0, parseErr("malformed \\u escape")
	}
	s.pos += 4
	return uint16(v), nil
}

func (s *scanner) parseNumber() (*node.Node, error) {
	start := s.pos
	if !s.eof() && s.data[s.pos] == '-' {
		s.pos++
	}
	for !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
	}
	isFloat := false
	if !s.eof() && s.data[s.pos] == '.' {
		isFloat = true
		s.pos++
		for !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
		}
	}
	if !s.eof() && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		isFloat = true
		s.pos++
		if !s.eof() && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		for !s.eof() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
		}
	}
	text := string(s.data[start:s.pos])
	if text == "" || text == "-" {
		return nil, parseErr("malformed number literal")
	}
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, parseErr("malformed number literal " + strconv.Quote(text))
		}
		return node.NewReal(v), nil
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return node.NewInt(v), nil
	}
	if v, err := strconv.ParseUint(text, 10, 64); err == nil {
		return node.NewUintWidth(v, node.Width128), nil
	}
	return nil, parseErr("integer literal exceeds supported range: " + text)
}
