// SPDX-License-Identifier: MPL-2.0

package confdoc

import (
	"strings"
	"unicode/utf8"
)

// lexer turns descriptor source text into a token stream. It is line/column
// aware so every token (and therefore every diagnostic) carries a position.
type lexer struct {
	src  string
	file string
	off  int
	line int
	col  int
}

func newLexer(src, file string) *lexer {
	return &lexer{src: src, file: file, line: 1, col: 1}
}

func (l *lexer) pos() Position {
	return Position{File: l.file, Line: l.line, Col: l.col}
}

func (l *lexer) peek() byte {
	if l.off >= len(l.src) {
		return 0
	}
	return l.src[l.off]
}

func (l *lexer) peekAt(n int) byte {
	if l.off+n >= len(l.src) {
		return 0
	}
	return l.src[l.off+n]
}

func (l *lexer) advance() byte {
	c := l.src[l.off]
	l.off++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

// next returns the next token. Whitespace (other than newlines) and comments
// are skipped. Errors are syntax errors: unterminated strings and stray
// characters.
func (l *lexer) next() (token, error) {
	tok, err := l.lexToken()
	if err != nil {
		return token{}, err
	}
	tok.end = l.pos()
	return tok, nil
}

func (l *lexer) lexToken() (token, error) {
	l.skipSpaceAndComments()

	pos := l.pos()
	if l.off >= len(l.src) {
		return token{kind: tokEOF, pos: pos}, nil
	}

	switch c := l.peek(); c {
	case '\n':
		l.advance()
		return token{kind: tokNewline, pos: pos}, nil
	case '{':
		l.advance()
		return token{kind: tokLBrace, pos: pos}, nil
	case '}':
		l.advance()
		return token{kind: tokRBrace, pos: pos}, nil
	case '[':
		l.advance()
		return token{kind: tokLBracket, pos: pos}, nil
	case ']':
		l.advance()
		return token{kind: tokRBracket, pos: pos}, nil
	case '(':
		l.advance()
		return token{kind: tokLParen, pos: pos}, nil
	case ')':
		l.advance()
		return token{kind: tokRParen, pos: pos}, nil
	case ',':
		l.advance()
		return token{kind: tokComma, pos: pos}, nil
	case '=', ':':
		l.advance()
		return token{kind: tokSeparator, value: string(c), pos: pos}, nil
	case '$':
		return l.lexSubstitution(pos)
	case '"':
		return l.lexString(pos)
	default:
		return l.lexUnquoted(pos)
	}
}

func (l *lexer) skipSpaceAndComments() {
	for l.off < len(l.src) {
		c := l.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '#':
			l.skipToEOL()
		case c == '/' && l.peekAt(1) == '/':
			l.skipToEOL()
		default:
			return
		}
	}
}

func (l *lexer) skipToEOL() {
	for l.off < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// lexSubstitution consumes `${path}` or `${?path}`. A `$` not followed by `{`
// is a syntax error; the dialect has no other use for it.
func (l *lexer) lexSubstitution(pos Position) (token, error) {
	l.advance() // $
	if l.peek() != '{' {
		return token{}, syntaxErrorf(pos, "expected '{' after '$'")
	}
	l.advance() // {

	optional := false
	if l.peek() == '?' {
		optional = true
		l.advance()
	}

	var sb strings.Builder
	for {
		if l.off >= len(l.src) || l.peek() == '\n' {
			return token{}, syntaxErrorf(pos, "unterminated substitution")
		}
		c := l.advance()
		if c == '}' {
			break
		}
		sb.WriteByte(c)
	}

	path := strings.TrimSpace(sb.String())
	if path == "" {
		return token{}, syntaxErrorf(pos, "empty substitution path")
	}
	return token{kind: tokSubst, value: path, optional: optional, pos: pos}, nil
}

func (l *lexer) lexString(pos Position) (token, error) {
	if strings.HasPrefix(l.src[l.off:], `"""`) {
		return l.lexTripleString(pos)
	}

	l.advance() // opening quote
	var sb strings.Builder
	for {
		if l.off >= len(l.src) || l.peek() == '\n' {
			return token{}, syntaxErrorf(pos, "unterminated string")
		}
		c := l.advance()
		if c == '"' {
			return token{kind: tokString, value: sb.String(), pos: pos}, nil
		}
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		if l.off >= len(l.src) {
			return token{}, syntaxErrorf(pos, "unterminated escape sequence")
		}
		esc := l.advance()
		switch esc {
		case '"', '\\', '/':
			sb.WriteByte(esc)
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
			r, err := l.lexUnicodeEscape(pos)
			if err != nil {
				return token{}, err
			}
			sb.WriteRune(r)
		default:
			return token{}, syntaxErrorf(pos, "invalid escape sequence '\\%c'", esc)
		}
	}
}

func (l *lexer) lexUnicodeEscape(pos Position) (rune, error) {
	if l.off+4 > len(l.src) {
		return 0, syntaxErrorf(pos, "truncated unicode escape")
	}
	var r rune
	for i := 0; i < 4; i++ {
		c := l.advance()
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, syntaxErrorf(pos, "invalid unicode escape digit '%c'", c)
		}
		r = r<<4 | d
	}
	if !utf8.ValidRune(r) {
		return 0, syntaxErrorf(pos, "invalid unicode escape")
	}
	return r, nil
}

// lexTripleString consumes a `"""..."""` block. The content is taken verbatim;
// no escape processing applies inside triple quotes.
func (l *lexer) lexTripleString(pos Position) (token, error) {
	l.advance()
	l.advance()
	l.advance()
	start := l.off
	for l.off < len(l.src) {
		if strings.HasPrefix(l.src[l.off:], `"""`) {
			value := l.src[start:l.off]
			l.advance()
			l.advance()
			l.advance()
			return token{kind: tokString, value: value, pos: pos}, nil
		}
		l.advance()
	}
	return token{}, syntaxErrorf(pos, "unterminated triple-quoted string")
}

// isUnquotedChar reports whether c may appear in an unquoted value. The
// excluded set mirrors HOCON's forbidden characters: structural punctuation,
// quotes, substitution markers, and whitespace.
func isUnquotedChar(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '{', '}', '[', ']', '(', ')', ',', '=', ':', '"', '$', '#':
		return false
	}
	return c > 0x20
}

func (l *lexer) lexUnquoted(pos Position) (token, error) {
	var sb strings.Builder
	for l.off < len(l.src) {
		c := l.peek()
		if !isUnquotedChar(c) {
			break
		}
		// A `//` inside an unquoted run starts a comment, per HOCON.
		if c == '/' && l.peekAt(1) == '/' {
			break
		}
		sb.WriteByte(l.advance())
	}
	if sb.Len() == 0 {
		return token{}, syntaxErrorf(pos, "unexpected character %q", l.peek())
	}
	return token{kind: tokUnquoted, value: sb.String(), pos: pos}, nil
}
