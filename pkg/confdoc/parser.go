// SPDX-License-Identifier: MPL-2.0

package confdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type (
	// Includer loads the target of an `include` statement. Load returns the
	// file contents and the display name to use in diagnostics. A nil
	// Includer treats every include target as missing.
	Includer interface {
		Load(name string) (data []byte, display string, err error)
	}

	// FileIncluder resolves include targets relative to a base directory.
	FileIncluder struct {
		Dir string
	}

	// ParseOption configures parsing behavior.
	ParseOption func(*parseOptions)

	parseOptions struct {
		includer Includer
		depth    int
	}
)

// maxIncludeDepth bounds include nesting to catch include cycles.
const maxIncludeDepth = 16

// Load implements Includer.
func (f FileIncluder) Load(name string) ([]byte, string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.Dir, name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, err
	}
	return data, path, nil
}

// WithIncluder sets the loader for `include` statements.
func WithIncluder(inc Includer) ParseOption {
	return func(o *parseOptions) {
		o.includer = inc
	}
}

// ParseFile reads and parses a descriptor file. Includes resolve relative to
// the file's directory.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	return Parse(data, path, WithIncluder(FileIncluder{Dir: filepath.Dir(path)}))
}

// Parse parses descriptor source. The file argument is used for positions in
// diagnostics only.
func Parse(data []byte, file string, opts ...ParseOption) (*Document, error) {
	options := parseOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	p := &parser{lex: newLexer(string(data), file), opts: options}
	if err := p.advance(); err != nil {
		return nil, err
	}

	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, File: file}, nil
}

// parser is a recursive-descent parser over the lexer's token stream with a
// single token of lookahead.
type parser struct {
	lex  *lexer
	tok  token
	opts parseOptions
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) skipNewlines() error {
	for p.tok.kind == tokNewline {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// parseRoot parses the top-level object. The surrounding braces are optional:
// both `{ a = 1 }` and a bare `a = 1` body are accepted.
func (p *parser) parseRoot() (*Object, error) {
	if err := p.skipNewlines(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokLBrace {
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		obj, err := p.parseObjectBody(pos, tokRBrace)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil { // consume }
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokEOF {
			return nil, syntaxErrorf(p.tok.pos, "unexpected %s after closing '}'", p.tok.kind)
		}
		return obj, nil
	}

	return p.parseObjectBody(p.tok.pos, tokEOF)
}

// parseObjectBody parses field assignments until the terminator token. The
// terminator itself is left unconsumed.
func (p *parser) parseObjectBody(pos Position, terminator tokenKind) (*Object, error) {
	obj := &Object{pos: pos}

	for {
		// Newlines and commas both separate fields.
		for p.tok.kind == tokNewline || p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}

		if p.tok.kind == terminator {
			return obj, nil
		}
		if p.tok.kind == tokEOF {
			return nil, syntaxErrorf(p.tok.pos, "unexpected end of file, expected %s", terminator)
		}

		if p.tok.kind == tokUnquoted && p.tok.value == "include" {
			fields, err := p.parseInclude()
			if err != nil {
				return nil, err
			}
			obj.Fields = append(obj.Fields, fields...)
			continue
		}

		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		obj.Fields = append(obj.Fields, field)
	}
}

// parseField parses one `key = value`, `key : value`, `key { ... }`, or
// `key += element` assignment.
func (p *parser) parseField() (*Field, error) {
	keyPos := p.tok.pos
	path, err := p.parseKey()
	if err != nil {
		return nil, err
	}

	switch p.tok.kind {
	case tokSeparator:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &Field{pos: keyPos, Path: path, Value: value}, nil

	case tokLBrace:
		// `key { ... }` object merge shorthand.
		bracePos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseObjectBody(bracePos, tokRBrace)
		if err != nil {
			return nil, err
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Field{pos: keyPos, Path: path, Value: inner}, nil

	case tokUnquoted:
		// `key += element` desugars to `key = ${?key} [element]`.
		if p.tok.value == "+" {
			plusPos := p.tok.pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind != tokSeparator || p.tok.value != "=" {
				return nil, syntaxErrorf(plusPos, "expected '=' after '+'")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.skipNewlines(); err != nil {
				return nil, err
			}
			elem, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			appended := &Concat{
				pos: keyPos,
				Parts: []Node{
					&Substitution{pos: keyPos, Path: strings.Join(path, "."), Optional: true},
					&List{pos: elem.Pos(), Elems: []Node{elem}},
				},
				Gaps: []bool{false, true},
			}
			return &Field{pos: keyPos, Path: path, Value: appended}, nil
		}
		return nil, syntaxErrorf(p.tok.pos, "expected '=', ':', or '{' after key, got %q", p.tok.value)

	default:
		return nil, syntaxErrorf(p.tok.pos, "expected '=', ':', or '{' after key, got %s", p.tok.kind)
	}
}

// parseKey consumes a field key. Unquoted keys split on '.' into path
// segments; quoted keys are a single literal segment.
func (p *parser) parseKey() ([]string, error) {
	switch p.tok.kind {
	case tokString:
		key := p.tok.value
		if err := p.advance(); err != nil {
			return nil, err
		}
		if key == "" {
			return nil, syntaxErrorf(p.tok.pos, "empty key")
		}
		return []string{key}, nil

	case tokUnquoted:
		raw := p.tok.value
		pos := p.tok.pos
		if err := p.advance(); err != nil {
			return nil, err
		}
		segments := strings.Split(raw, ".")
		for _, seg := range segments {
			if seg == "" {
				return nil, syntaxErrorf(pos, "invalid key %q: empty path segment", raw)
			}
		}
		return segments, nil

	default:
		return nil, syntaxErrorf(p.tok.pos, "expected key, got %s", p.tok.kind)
	}
}

// parseInclude handles `include "file"` and `include required("file")`. The
// included document's fields are spliced in at the include site.
func (p *parser) parseInclude() ([]*Field, error) {
	incPos := p.tok.pos
	if err := p.advance(); err != nil { // consume `include`
		return nil, err
	}

	required := false
	var target string

	switch {
	case p.tok.kind == tokString:
		target = p.tok.value
		if err := p.advance(); err != nil {
			return nil, err
		}
	case p.tok.kind == tokUnquoted && p.tok.value == "required":
		required = true
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokLParen {
			return nil, syntaxErrorf(p.tok.pos, "expected '(' after 'required'")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokString {
			return nil, syntaxErrorf(p.tok.pos, "expected quoted file name in required(...)")
		}
		target = p.tok.value
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, syntaxErrorf(p.tok.pos, "expected ')' to close required(...)")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	default:
		return nil, syntaxErrorf(p.tok.pos, "expected quoted file name or required(...) after include")
	}

	if p.opts.depth >= maxIncludeDepth {
		return nil, syntaxErrorf(incPos, "includes nested too deeply (likely an include cycle)")
	}

	if p.opts.includer == nil {
		if required {
			return nil, &ResolveError{Pos: incPos, Msg: fmt.Sprintf("cannot load required include %q", target), Cause: ErrMissingInclude}
		}
		return nil, nil
	}

	data, display, err := p.opts.includer.Load(target)
	if err != nil {
		if required {
			return nil, &ResolveError{Pos: incPos, Msg: fmt.Sprintf("cannot load required include %q: %v", target, err), Cause: ErrMissingInclude}
		}
		return nil, nil
	}

	sub := parseOptions{includer: p.opts.includer, depth: p.opts.depth + 1}
	if f, ok := p.opts.includer.(FileIncluder); ok {
		sub.includer = FileIncluder{Dir: filepath.Dir(filepath.Join(f.Dir, target))}
	}

	inner := &parser{lex: newLexer(string(data), display), opts: sub}
	if err := inner.advance(); err != nil {
		return nil, err
	}
	root, err := inner.parseRoot()
	if err != nil {
		return nil, err
	}
	return root.Fields, nil
}

// parseValue parses a field or list-element value: one or more adjacent value
// parts up to the next newline, comma, or closing bracket/brace. Multiple
// parts form a Concat.
func (p *parser) parseValue() (Node, error) {
	var (
		parts []Node
		gaps  []bool
		prev  *token
	)

	gapBefore := func(tok token) bool {
		if prev == nil {
			return false
		}
		return tok.pos.Line != prev.end.Line || tok.pos.Col != prev.end.Col
	}

	for {
		switch p.tok.kind {
		case tokNewline, tokComma, tokRBracket, tokRBrace, tokRParen, tokEOF:
			switch len(parts) {
			case 0:
				return nil, syntaxErrorf(p.tok.pos, "expected value, got %s", p.tok.kind)
			case 1:
				return parts[0], nil
			default:
				return &Concat{pos: parts[0].Pos(), Parts: parts, Gaps: gaps}, nil
			}

		case tokString:
			tok := p.tok
			gaps = append(gaps, gapBefore(tok))
			parts = append(parts, &Literal{pos: tok.pos, Val: tok.value})
			prev = &tok
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokUnquoted:
			tok := p.tok
			gaps = append(gaps, gapBefore(tok))
			parts = append(parts, &Literal{pos: tok.pos, Val: interpretScalar(tok.value)})
			prev = &tok
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokSubst:
			tok := p.tok
			gaps = append(gaps, gapBefore(tok))
			parts = append(parts, &Substitution{pos: tok.pos, Path: tok.value, Optional: tok.optional})
			prev = &tok
			if err := p.advance(); err != nil {
				return nil, err
			}

		case tokLBracket:
			gaps = append(gaps, gapBefore(p.tok))
			list, end, err := p.parseList()
			if err != nil {
				return nil, err
			}
			parts = append(parts, list)
			closing := token{end: end}
			prev = &closing

		case tokLBrace:
			bracePos := p.tok.pos
			gaps = append(gaps, gapBefore(p.tok))
			if err := p.advance(); err != nil {
				return nil, err
			}
			inner, err := p.parseObjectBody(bracePos, tokRBrace)
			if err != nil {
				return nil, err
			}
			end := p.tok.end
			if err := p.advance(); err != nil {
				return nil, err
			}
			parts = append(parts, inner)
			closing := token{end: end}
			prev = &closing

		default:
			return nil, syntaxErrorf(p.tok.pos, "unexpected %s in value", p.tok.kind)
		}
	}
}

// parseList parses `[...]`, returning the list node and the position just
// after the closing bracket.
func (p *parser) parseList() (*List, Position, error) {
	list := &List{pos: p.tok.pos}
	if err := p.advance(); err != nil { // consume [
		return nil, Position{}, err
	}

	for {
		for p.tok.kind == tokNewline || p.tok.kind == tokComma {
			if err := p.advance(); err != nil {
				return nil, Position{}, err
			}
		}
		if p.tok.kind == tokRBracket {
			end := p.tok.end
			if err := p.advance(); err != nil {
				return nil, Position{}, err
			}
			return list, end, nil
		}
		if p.tok.kind == tokEOF {
			return nil, Position{}, syntaxErrorf(p.tok.pos, "unterminated list")
		}

		elem, err := p.parseValue()
		if err != nil {
			return nil, Position{}, err
		}
		list.Elems = append(list.Elems, elem)
	}
}

// interpretScalar maps a single unquoted token to its typed value. Anything
// that is not an integer, float, boolean, or null stays a string.
func interpretScalar(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
