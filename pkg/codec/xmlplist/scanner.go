// pkg/codec/xmlplist/scanner.go
package xmlplist

import (
	"strconv"
	"strings"
)

// scanner walks a byte slice by hand, the way pkg/sql/lexer's Lexer does,
// rather than driving a generic XML tokenizer: the grammar this codec
// accepts (PIs, DOCTYPE with an optional internal subset, comments,
// CDATA, numeric/named entities) is small and fixed enough that a direct
// scan is simpler to get byte-exact than adapting a general parser.
type scanner struct {
	data []byte
	pos  int
}

func newScanner(data []byte) *scanner { return &scanner{data: data} }

func (s *scanner) eof() bool { return s.pos >= len(s.data) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.data[s.pos]
}

func (s *scanner) hasPrefix(lit string) bool {
	return strings.HasPrefix(string(s.data[s.pos:]), lit)
}

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

// skipMisc skips whitespace, processing instructions, comments, and a
// DOCTYPE declaration (with its optional bracketed internal subset)
// wherever they may appear between elements (spec.md §4.3 parser rules).
func (s *scanner) skipMisc() error {
	for {
		s.skipWS()
		switch {
		case s.hasPrefix("<?"):
			end := strings.Index(string(s.data[s.pos:]), "?>")
			if end < 0 {
				return parseErr("unterminated processing instruction")
			}
			s.pos += end + 2
		case s.hasPrefix("<!--"):
			end := strings.Index(string(s.data[s.pos+4:]), "-->")
			if end < 0 {
				return parseErr("unterminated comment")
			}
			s.pos += 4 + end + 3
		case s.hasPrefix("<!DOCTYPE"):
			if err := s.skipDoctype(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *scanner) skipDoctype() error {
	s.pos += len("<!DOCTYPE")
	depth := 0
	for !s.eof() {
		c := s.data[s.pos]
		switch c {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth <= 0 {
				s.pos++
				return nil
			}
		}
		s.pos++
	}
	return parseErr("unterminated DOCTYPE declaration")
}

// expectLiteral consumes lit from the current position or fails.
func (s *scanner) expectLiteral(lit string) error {
	if !s.hasPrefix(lit) {
		return parseErr("expected " + strconv.Quote(lit))
	}
	s.pos += len(lit)
	return nil
}

// readTagName consumes "<name" and returns name; it stops before any
// attributes, whitespace, '/' or '>'.
func (s *scanner) readTagName() (string, error) {
	if s.peek() != '<' {
		return "", parseErr("expected '<'")
	}
	s.pos++
	start := s.pos
	for !s.eof() {
		c := s.data[s.pos]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '/' || c == '>' {
			break
		}
		s.pos++
	}
	if s.pos == start {
		return "", parseErr("empty tag name")
	}
	return string(s.data[start:s.pos]), nil
}

// skipAttributesAndClose consumes up to and including the next '>' or
// "/>"; reports whether the tag was self-closing.
func (s *scanner) skipAttributesAndClose() (selfClosed bool, err error) {
	for !s.eof() {
		c := s.data[s.pos]
		switch c {
		case '>':
			s.pos++
			return selfClosed, nil
		case '/':
			if s.pos+1 < len(s.data) && s.data[s.pos+1] == '>' {
				s.pos += 2
				return true, nil
			}
			s.pos++
		default:
			s.pos++
		}
	}
	return false, parseErr("unterminated start tag")
}

// readClosingTag consumes "</name>" exactly.
func (s *scanner) readClosingTag(name string) error {
	return s.expectLiteral("</" + name + ">")
}

// readElementText reads mixed text/entity/CDATA content up to (and
// consuming) the matching "</name>" close tag, decoding entities in
// plain-text runs and passing CDATA runs through verbatim (spec.md §4.3).
func (s *scanner) readElementText(name string) (string, error) {
	var buf strings.Builder
	closeTag := "</" + name + ">"
	for {
		idx := strings.IndexByte(string(s.data[s.pos:]), '<')
		if idx < 0 {
			return "", parseErr("unterminated element " + strconv.Quote(name))
		}
		if idx > 0 {
			decoded, err := decodeEntities(string(s.data[s.pos : s.pos+idx]))
			if err != nil {
				return "", err
			}
			buf.WriteString(decoded)
			s.pos += idx
		}
		switch {
		case s.hasPrefix("<![CDATA["):
			s.pos += len("<![CDATA[")
			end := strings.Index(string(s.data[s.pos:]), "]]>")
			if end < 0 {
				return "", parseErr("unterminated CDATA section")
			}
			buf.Write(s.data[s.pos : s.pos+end])
			s.pos += end + 3
		case s.hasPrefix("<!--"):
			end := strings.Index(string(s.data[s.pos+4:]), "-->")
			if end < 0 {
				return "", parseErr("unterminated comment")
			}
			s.pos += 4 + end + 3
		case s.hasPrefix(closeTag):
			s.pos += len(closeTag)
			return buf.String(), nil
		default:
			return "", parseErr("unexpected markup inside " + strconv.Quote(name))
		}
	}
}

// decodeEntities decodes &amp; &lt; &gt; &apos; &quot; and numeric
// character references (&#NN; &#xNN;) in a text run with no CDATA
// sections. Any malformed reference is a hard parse failure (spec.md §9
// open question: this module takes the strict position).
func decodeEntities(s string) (string, error) {
	if !strings.ContainsRune(s, '&') {
		return s, nil
	}
	var buf strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '&' {
			buf.WriteByte(s[i])
			i++
			continue
		}
		j := strings.IndexByte(s[i:], ';')
		if j < 0 {
			return "", parseErr("unterminated entity reference")
		}
		ent := s[i+1 : i+j]
		switch {
		case ent == "amp":
			buf.WriteByte('&')
		case ent == "lt":
			buf.WriteByte('<')
		case ent == "gt":
			buf.WriteByte('>')
		case ent == "apos":
			buf.WriteByte('\'')
		case ent == "quot":
			buf.WriteByte('"')
		case strings.HasPrefix(ent, "#x") || strings.HasPrefix(ent, "#X"):
			v, err := strconv.ParseInt(ent[2:], 16, 32)
			if err != nil || v < 1 || v > 0x10FFFF {
				return "", parseErr("invalid numeric character reference &" + ent + ";")
			}
			buf.WriteRune(rune(v))
		case strings.HasPrefix(ent, "#"):
			v, err := strconv.ParseInt(ent[1:], 10, 32)
			if err != nil || v < 1 || v > 0x10FFFF {
				return "", parseErr("invalid numeric character reference &" + ent + ";")
			}
			buf.WriteRune(rune(v))
		default:
			return "", parseErr("unknown entity reference &" + ent + ";")
		}
		i += j + 1
	}
	return buf.String(), nil
}
