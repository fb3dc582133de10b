package walker

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/platinummonkey/i18nlint/pkg/catalog"
)

// SyntaxError reports malformed JSON input
type SyntaxError struct {
	Pos catalog.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// JSON walks JSON documents. Comments, trailing commas, single-quoted
// strings and unquoted identifier keys are tolerated.
type JSON struct{}

// Format implements Walker
func (JSON) Format() catalog.Format { return catalog.FormatJSON }

// Walk implements Walker
func (JSON) Walk(src []byte, b *catalog.Builder) error {
	return WalkJSON(src, b)
}

// WalkJSON feeds the nodes of a JSON document to b
func WalkJSON(src []byte, b *catalog.Builder) error {
	s := &jsonScanner{src: src, line: 1, col: 1}
	if err := s.skipSpace(); err != nil {
		return err
	}
	if s.eof() {
		return nil
	}
	if err := s.value(b); err != nil {
		return err
	}
	if err := s.skipSpace(); err != nil {
		return err
	}
	if !s.eof() {
		return s.errorf("unexpected %q after top-level value", s.peek())
	}
	return nil
}

// jsonScanner is a recursive-descent reader that tracks positions
type jsonScanner struct {
	src  []byte
	pos  int
	line int
	col  int
}

func (s *jsonScanner) eof() bool { return s.pos >= len(s.src) }

func (s *jsonScanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *jsonScanner) position() catalog.Position {
	return catalog.Position{Offset: s.pos, Line: s.line, Column: s.col}
}

// advance consumes one byte; columns count runes, not bytes
func (s *jsonScanner) advance() {
	c := s.src[s.pos]
	s.pos++
	switch {
	case c == '\n':
		s.line++
		s.col = 1
	case c&0xC0 != 0x80:
		s.col++
	}
}

func (s *jsonScanner) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Pos: s.position(), Msg: fmt.Sprintf(format, args...)}
}

func (s *jsonScanner) expect(c byte) error {
	if s.peek() != c || s.eof() {
		return s.errorf("expected %q", c)
	}
	s.advance()
	return nil
}

// skipSpace skips whitespace and comments
func (s *jsonScanner) skipSpace() error {
	for !s.eof() {
		c := s.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.advance()
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/':
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*':
			start := s.position()
			s.advance()
			s.advance()
			for {
				if s.eof() {
					return &SyntaxError{Pos: start, Msg: "unterminated comment"}
				}
				if s.peek() == '*' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/' {
					s.advance()
					s.advance()
					break
				}
				s.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

// value parses any JSON value. A nil builder parses without building.
func (s *jsonScanner) value(b *catalog.Builder) error {
	switch c := s.peek(); {
	case c == '{':
		return s.object(b)
	case c == '[':
		return s.array(b)
	case c == '"' || c == '\'':
		str, err := s.str()
		if err != nil {
			return err
		}
		if b != nil {
			b.SetValue(str)
		}
		return nil
	default:
		lit := s.literal()
		if lit == "" {
			return s.errorf("unexpected %q", c)
		}
		if !isJSONLiteral(lit) {
			return s.errorf("invalid literal %q", lit)
		}
		if b != nil && lit != "null" {
			b.SetValue(lit)
		}
		return nil
	}
}

func (s *jsonScanner) object(b *catalog.Builder) error {
	s.advance() // {
	for {
		if err := s.skipSpace(); err != nil {
			return err
		}
		if s.peek() == '}' {
			s.advance()
			return nil
		}

		start := s.position()
		key, err := s.key()
		if err != nil {
			return err
		}
		keySpan := catalog.Span{Start: start, End: s.position()}

		if err := s.skipSpace(); err != nil {
			return err
		}
		if err := s.expect(':'); err != nil {
			return err
		}
		if err := s.skipSpace(); err != nil {
			return err
		}

		if b != nil && b.EnterKey(key, keySpan) {
			if err := s.value(b); err != nil {
				return err
			}
			b.Leave()
		} else if err := s.value(nil); err != nil {
			return err
		}

		if done, err := s.separator('}'); err != nil || done {
			return err
		}
	}
}

func (s *jsonScanner) array(b *catalog.Builder) error {
	s.advance() // [
	for i := 0; ; i++ {
		if err := s.skipSpace(); err != nil {
			return err
		}
		if s.peek() == ']' {
			s.advance()
			return nil
		}

		// scan the element once to learn its end, then rewind
		mark := *s
		if err := s.value(nil); err != nil {
			return err
		}
		elemSpan := catalog.Span{Start: mark.position(), End: s.position()}
		if b != nil && b.EnterIndex(i, elemSpan) {
			end := *s
			*s = mark
			if err := s.value(b); err != nil {
				return err
			}
			*s = end
			b.Leave()
		}

		if done, err := s.separator(']'); err != nil || done {
			return err
		}
	}
}

// separator consumes ',' or the closing byte. It reports done when the
// container was closed.
func (s *jsonScanner) separator(closing byte) (bool, error) {
	if err := s.skipSpace(); err != nil {
		return false, err
	}
	switch s.peek() {
	case ',':
		s.advance()
		return false, nil
	case closing:
		s.advance()
		return true, nil
	}
	if s.eof() {
		return false, s.errorf("unexpected end of input")
	}
	return false, s.errorf("expected ',' or %q", closing)
}

func (s *jsonScanner) key() (string, error) {
	c := s.peek()
	if c == '"' || c == '\'' {
		return s.str()
	}
	ident := s.literal()
	if ident == "" {
		return "", s.errorf("expected object key")
	}
	return ident, nil
}

// literal reads a bare token: numbers, true/false/null or an identifier key
func (s *jsonScanner) literal() string {
	start := s.pos
	for !s.eof() {
		r, size := utf8.DecodeRune(s.src[s.pos:])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_$+-.", r)) {
			break
		}
		for i := 0; i < size; i++ {
			s.advance()
		}
	}
	return string(s.src[start:s.pos])
}

func isJSONLiteral(lit string) bool {
	switch lit {
	case "true", "false", "null":
		return true
	}
	_, err := strconv.ParseFloat(lit, 64)
	return err == nil
}

func (s *jsonScanner) str() (string, error) {
	start := s.position()
	quote := s.peek()
	s.advance()

	var sb strings.Builder
	for {
		if s.eof() {
			return "", &SyntaxError{Pos: start, Msg: "unterminated string"}
		}
		c := s.peek()
		switch {
		case c == quote:
			s.advance()
			return sb.String(), nil
		case c == '\n':
			return "", s.errorf("newline in string")
		case c == '\\':
			s.advance()
			if err := s.escape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteByte(c)
			s.advance()
		}
	}
}

func (s *jsonScanner) escape(sb *strings.Builder) error {
	if s.eof() {
		return s.errorf("unterminated escape")
	}
	c := s.peek()
	s.advance()
	switch c {
	case '"', '\'', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := s.hex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) && s.peek() == '\\' && s.pos+1 < len(s.src) && s.src[s.pos+1] == 'u' {
			s.advance()
			s.advance()
			r2, err := s.hex4()
			if err != nil {
				return err
			}
			r = utf16.DecodeRune(r, r2)
		}
		sb.WriteRune(r)
	default:
		return s.errorf("invalid escape %q", c)
	}
	return nil
}

func (s *jsonScanner) hex4() (rune, error) {
	if s.pos+4 > len(s.src) {
		return 0, s.errorf("short unicode escape")
	}
	v, err := strconv.ParseUint(string(s.src[s.pos:s.pos+4]), 16, 32)
	if err != nil {
		return 0, s.errorf("invalid unicode escape")
	}
	for i := 0; i < 4; i++ {
		s.advance()
	}
	return rune(v), nil
}
