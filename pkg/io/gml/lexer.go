package gml

import (
	"bufio"
	"io"
	"strconv"

	"github.com/matzehuels/graphkit/pkg/io/stream"
)

type kind int

const (
	eof kind = iota
	key
	integer
	floating
	str
	open
	closing
)

func (k kind) String() string {
	return [...]string{"end of input", "key", "integer", "real", "string", "'['", "']'"}[k]
}

type token struct {
	kind kind
	text string
	line int
}

// lexer splits GML into tokens. Comments run from '#' to the end of the
// line.
type lexer struct {
	r    *bufio.Reader
	line int
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

func (l *lexer) errorf(msg string, args ...any) error {
	return stream.Errorf(Format, l.line, msg, args...)
}

func (l *lexer) next() (token, error) {
	c, err := l.skip()
	if err == io.EOF {
		return token{kind: eof, line: l.line}, nil
	}
	if err != nil {
		return token{}, err
	}
	switch {
	case c == '[':
		return token{kind: open, text: "[", line: l.line}, nil
	case c == ']':
		return token{kind: closing, text: "]", line: l.line}, nil
	case c == '"':
		return l.quoted()
	case isLetter(c):
		return l.word(c)
	case c == '+' || c == '-' || c == '.' || isDigit(c):
		return l.number(c)
	}
	return token{}, l.errorf("unexpected character %q", c)
}

func (l *lexer) skip() (byte, error) {
	for {
		c, err := l.r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case '\n':
			l.line++
		case ' ', '\t', '\r':
		case '#':
			if _, err := l.r.ReadString('\n'); err != nil {
				return 0, err
			}
			l.line++
		default:
			return c, nil
		}
	}
}

func (l *lexer) word(first byte) (token, error) {
	buf := []byte{first}
	for {
		c, err := l.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if !isLetter(c) && !isDigit(c) {
			_ = l.r.UnreadByte()
			break
		}
		buf = append(buf, c)
	}
	return token{kind: key, text: string(buf), line: l.line}, nil
}

func (l *lexer) number(first byte) (token, error) {
	buf := []byte{first}
	for {
		c, err := l.r.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token{}, err
		}
		if !isDigit(c) && c != '.' && c != 'e' && c != 'E' && c != '+' && c != '-' {
			_ = l.r.UnreadByte()
			break
		}
		buf = append(buf, c)
	}
	text := string(buf)
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return token{kind: integer, text: text, line: l.line}, nil
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return token{kind: floating, text: text, line: l.line}, nil
	}
	return token{}, l.errorf("malformed number %q", text)
}

// quoted reads a string literal. Backslash escapes are decoded; a literal
// that does not decode is kept verbatim.
func (l *lexer) quoted() (token, error) {
	start := l.line
	buf := []byte{'"'}
	escaped := false
	for {
		c, err := l.r.ReadByte()
		if err == io.EOF {
			return token{}, stream.Errorf(Format, start, "unterminated string")
		}
		if err != nil {
			return token{}, err
		}
		if c == '\n' {
			l.line++
		}
		buf = append(buf, c)
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			raw := string(buf)
			if s, err := strconv.Unquote(raw); err == nil {
				return token{kind: str, text: s, line: start}, nil
			}
			return token{kind: str, text: raw[1 : len(raw)-1], line: start}, nil
		}
	}
}

func isLetter(c byte) bool { return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
