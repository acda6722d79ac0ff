// SPDX-License-Identifier: MPL-2.0

package confdoc

type (
	// Node is an unresolved value in the parsed document tree.
	Node interface {
		Pos() Position
	}

	// Object is an ordered sequence of field assignments. Order matters:
	// later assignments to the same path override or merge with earlier ones
	// during resolution.
	Object struct {
		pos    Position
		Fields []*Field
	}

	// Field is a single `path = value` assignment. Dotted keys are expanded
	// at parse time, so Path always holds the individual key segments.
	Field struct {
		pos   Position
		Path  []string
		Value Node
	}

	// List is a `[...]` value.
	List struct {
		pos   Position
		Elems []Node
	}

	// Literal is a scalar: string, int64, float64, bool, or nil.
	Literal struct {
		pos Position
		Val any
	}

	// Substitution is a `${path}` or `${?path}` reference. Paths beginning
	// with "env." resolve from the environment at resolution time.
	Substitution struct {
		pos      Position
		Path     string
		Optional bool
	}

	// Concat is a sequence of adjacent values forming one field value, such
	// as `${app.inputs} ["extra"]` or `"v" ${app.version}`. Resolution
	// decides whether the parts combine as lists, objects, or strings.
	Concat struct {
		pos   Position
		Parts []Node
		// Gaps records, per part, whether whitespace separated it from the
		// previous part. String concatenation turns each gap into a single
		// space; Gaps[0] is always false.
		Gaps []bool
	}

	// Document is a parsed descriptor file: the root object plus the source
	// file name it was parsed from.
	Document struct {
		Root *Object
		File string
	}
)

func (o *Object) Pos() Position       { return o.pos }
func (f *Field) Pos() Position        { return f.pos }
func (l *List) Pos() Position         { return l.pos }
func (l *Literal) Pos() Position      { return l.pos }
func (s *Substitution) Pos() Position { return s.pos }
func (c *Concat) Pos() Position       { return c.pos }
