// pkg/codec/openstep/reader.go
package openstep

import (
	"strconv"
	"time"

	"plist/pkg/node"
)

// Read parses an OpenStep/GNUstep ASCII property list into a Node tree.
func Read(data []byte) (*node.Node, error) {
	s := &scanner{data: data}
	root, err := s.parseValue(0)
	if err != nil {
		return nil, err
	}
	s.skipWS()
	if !s.eof() {
		return nil, parseErr("trailing data after OpenStep value")
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
		return nil, parseErr("unexpected end of OpenStep input")
	}
	switch s.data[s.pos] {
	case '{':
		return s.parseDict(depth)
	case '(':
		return s.parseArray(depth)
	case '<':
		return s.parseAngle()
	case '"':
		str, err := s.parseQuotedString()
		if err != nil {
			return nil, err
		}
		return node.NewString(str), nil
	default:
		if !barewordRune(s.data[s.pos]) {
			return nil, parseErr("unexpected character in OpenStep value")
		}
		return node.NewString(s.parseBareword()), nil
	}
}

func (s *scanner) parseDict(depth int) (*node.Node, error) {
	s.pos++ // consume '{'
	dict := node.NewDict()
	for {
		s.skipWS()
		if s.eof() {
			return nil, parseErr("unterminated OpenStep dict")
		}
		if s.data[s.pos] == '}' {
			s.pos++
			return dict, nil
		}
		key, err := s.parseKeyString()
		if err != nil {
			return nil, err
		}
		s.skipWS()
		if s.eof() || s.data[s.pos] != '=' {
			return nil, parseErr("expected '=' after OpenStep dict key")
		}
		s.pos++
		val, err := s.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		s.skipWS()
		if s.eof() || s.data[s.pos] != ';' {
			return nil, parseErr("expected ';' after OpenStep dict value")
		}
		s.pos++
		if err := node.DictSetItem(dict, key, val); err != nil {
			return nil, err
		}
	}
}

func (s *scanner) parseArray(depth int) (*node.Node, error) {
	s.pos++ // consume '('
	arr := node.NewArray()
	s.skipWS()
	if !s.eof() && s.data[s.pos] == ')' {
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
			return nil, parseErr("unterminated OpenStep array")
		}
		switch s.data[s.pos] {
		case ',':
			s.pos++
			s.skipWS()
			if !s.eof() && s.data[s.pos] == ')' {
				s.pos++
				return arr, nil
			}
		case ')':
			s.pos++
			return arr, nil
		default:
			return nil, parseErr("expected ',' or ')' in OpenStep array")
		}
	}
}

// parseKeyString reads a dict key, which per spec.md §4.5 is a bareword or
// quoted string just like a string value.
func (s *scanner) parseKeyString() (string, error) {
	s.skipWS()
	if s.eof() {
		return "", parseErr("expected OpenStep dict key")
	}
	if s.data[s.pos] == '"' {
		return s.parseQuotedString()
	}
	if !barewordRune(s.data[s.pos]) {
		return "", parseErr("expected OpenStep dict key")
	}
	return s.parseBareword(), nil
}

func (s *scanner) parseBareword() string {
	start := s.pos
	for !s.eof() && barewordRune(s.data[s.pos]) {
		s.pos++
	}
	return string(s.data[start:s.pos])
}

// parseQuotedString decodes a double-quoted string with the escapes
// `\\ \" \n \r \t` and a three-digit octal escape `\NNN`.
func (s *scanner) parseQuotedString() (string, error) {
	s.pos++ // consume opening '"'
	var out []byte
	for {
		if s.eof() {
			return "", parseErr("unterminated OpenStep quoted string")
		}
		c := s.data[s.pos]
		switch {
		case c == '"':
			s.pos++
			return string(out), nil
		case c == '\\':
			s.pos++
			if s.eof() {
				return "", parseErr("unterminated escape in OpenStep quoted string")
			}
			esc := s.data[s.pos]
			switch esc {
			case '\\':
				out = append(out, '\\')
				s.pos++
			case '"':
				out = append(out, '"')
				s.pos++
			case 'n':
				out = append(out, '\n')
				s.pos++
			case 'r':
				out = append(out, '\r')
				s.pos++
			case 't':
				out = append(out, '\t')
				s.pos++
			case '0', '1', '2', '3', '4', '5', '6', '7':
				if s.pos+3 > len(s.data) {
					return "", parseErr("truncated octal escape in OpenStep quoted string")
				}
				v, err := strconv.ParseUint(string(s.data[s.pos:s.pos+3]), 8, 8)
				if err != nil {
					return "", parseErr("malformed octal escape in OpenStep quoted string")
				}
				out = append(out, byte(v))
				s.pos += 3
			default:
				return "", parseErr("unknown escape sequence in OpenStep quoted string")
			}
		default:
			out = append(out, c)
			s.pos++
		}
	}
}

// parseAngle handles both `<hex bytes>` data and the GNUstep typed
// literals `<*I...>`, `<*R...>`, `<*B.>`, `<*D...>`.
func (s *scanner) parseAngle() (*node.Node, error) {
	if s.pos+1 < len(s.data) && s.data[s.pos+1] == '*' {
		return s.parseGNUstepLiteral()
	}
	return s.parseHexData()
}

func (s *scanner) parseHexData() (*node.Node, error) {
	s.pos++ // consume '<'
	var nibbles []byte
	for {
		if s.eof() {
			return nil, parseErr("unterminated OpenStep data literal")
		}
		c := s.data[s.pos]
		switch {
		case c == '>':
			s.pos++
			if len(nibbles)%2 != 0 {
				return nil, parseErr("OpenStep data literal has an odd number of hex digits")
			}
			out := make([]byte, len(nibbles)/2)
			for i := range out {
				out[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
			}
			return node.NewData(out), nil
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		default:
			v, ok := hexNibble(c)
			if !ok {
				return nil, parseErr("invalid hex digit in OpenStep data literal")
			}
			nibbles = append(nibbles, v)
			s.pos++
		}
	}
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func (s *scanner) parseGNUstepLiteral() (*node.Node, error) {
	s.pos += 2 // consume "<*"
	if s.eof() {
		return nil, parseErr("truncated GNUstep typed literal")
	}
	kind := s.data[s.pos]
	s.pos++
	start := s.pos
	for !s.eof() && s.data[s.pos] != '>' {
		s.pos++
	}
	if s.eof() {
		return nil, parseErr("unterminated GNUstep typed literal")
	}
	content := string(s.data[start:s.pos])
	s.pos++ // consume '>'

	switch kind {
	case 'I':
		if v, err := strconv.ParseInt(content, 10, 64); err == nil {
			return node.NewInt(v), nil
		}
		v, err := strconv.ParseUint(content, 10, 64)
		if err != nil {
			return nil, parseErr("malformed GNUstep integer literal " + strconv.Quote(content))
		}
		return node.NewUintWidth(v, node.Width128), nil
	case 'R':
		v, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return nil, parseErr("malformed GNUstep real literal " + strconv.Quote(content))
		}
		return node.NewReal(v), nil
	case 'B':
		switch content {
		case "Y":
			return node.NewBool(true), nil
		case "N":
			return node.NewBool(false), nil
		default:
			return nil, parseErr("malformed GNUstep bool literal " + strconv.Quote(content))
		}
	case 'D':
		t, err := time.Parse(gnuStepDateLayout, content)
		if err != nil {
			return nil, parseErr("malformed GNUstep date literal " + strconv.Quote(content))
		}
		return node.NewUnixDate(t), nil
	default:
		return nil, parseErr("unknown GNUstep typed literal kind " + strconv.QuoteRune(rune(kind)))
	}
}
