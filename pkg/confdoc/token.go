// SPDX-License-Identifier: MPL-2.0

package confdoc

import "fmt"

// Position identifies a location in a source file. Lines and columns are
// 1-based; a zero Position means "unknown".
type Position struct {
	File string
	Line int
	Col  int
}

// String returns the position in file:line:col form.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// IsZero reports whether the position carries no location information.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Col == 0
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokLBrace    // {
	tokRBrace    // }
	tokLBracket  // [
	tokRBracket  // ]
	tokLParen    // (
	tokRParen    // )
	tokComma     // ,
	tokSeparator // = or :
	tokString    // quoted string, value already unescaped
	tokUnquoted  // run of unquoted characters (may be a number, bool, bare word, or path)
	tokSubst     // ${path} or ${?path}, value holds the path
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokNewline:
		return "newline"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokSeparator:
		return "'='"
	case tokString:
		return "string"
	case tokUnquoted:
		return "value"
	case tokSubst:
		return "substitution"
	}
	return "unknown token"
}

// token is a single lexical element with its source position. For tokSubst
// the optional flag records the `${?path}` form.
type token struct {
	kind     tokenKind
	value    string
	optional bool
	pos      Position
	end      Position // position just past the token, used for adjacency checks
}
