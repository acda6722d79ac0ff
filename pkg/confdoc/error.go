// SPDX-License-Identifier: MPL-2.0

package confdoc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax is the sentinel wrapped by every SyntaxError.
	ErrSyntax = errors.New("syntax error")
	// ErrUnresolvedSubstitution is returned when a required `${path}`
	// substitution has no value in the document or environment.
	ErrUnresolvedSubstitution = errors.New("unresolved substitution")
	// ErrSubstitutionCycle is returned when substitution resolution loops.
	ErrSubstitutionCycle = errors.New("substitution cycle")
	// ErrMissingInclude is returned when an `include required(...)` target
	// cannot be loaded.
	ErrMissingInclude = errors.New("missing required include")
)

type (
	// SyntaxError is a position-tagged parse error. It wraps ErrSyntax for
	// errors.Is() compatibility.
	SyntaxError struct {
		Pos Position
		Msg string
	}

	// ResolveError is a position-tagged resolution failure (bad substitution,
	// type mismatch in a concatenation, and so on). Cause, when set, is one
	// of the sentinel errors above.
	ResolveError struct {
		Pos   Position
		Path  string
		Msg   string
		Cause error
	}

	// CycleError reports a substitution cycle with the full chain of paths
	// that participated in it. It wraps ErrSubstitutionCycle.
	CycleError struct {
		Pos   Position
		Chain []string
	}
)

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func (e *ResolveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *ResolveError) Unwrap() error {
	return e.Cause
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: substitution cycle: %s", e.Pos, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrSubstitutionCycle
}

// syntaxErrorf builds a SyntaxError at pos.
func syntaxErrorf(pos Position, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
