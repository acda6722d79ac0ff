// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"strings"
)

const (
	// SeverityError indicates a problem that makes the descriptor unusable.
	SeverityError ValidationSeverity = iota
	// SeverityWarning indicates a likely mistake that the packaging tool
	// would tolerate.
	SeverityWarning
)

type (
	// ValidationSeverity is the severity level of a validation finding.
	ValidationSeverity int

	// ValidatorName identifies the validator that produced a finding
	// (e.g. "structure", "machines").
	ValidatorName string

	// ValidationError is a single finding from descriptor validation.
	ValidationError struct {
		// Validator names the validator that produced this finding.
		Validator ValidatorName
		// Field is the descriptor path involved (e.g. "app.machines[1]").
		Field string
		// Message is the human-readable description.
		Message string
		// Severity classifies the finding.
		Severity ValidationSeverity
		// Suggestion is an optional fix hint.
		Suggestion string
	}

	// ValidationErrors collects findings across all validators. It
	// implements error so a failed validation can be returned directly.
	ValidationErrors []ValidationError

	// ValidationContext carries the inputs validators need beyond the
	// descriptor itself.
	ValidationContext struct {
		// DocumentedEnv lists environment variable names the project
		// documents for packagers. References outside this set are flagged.
		DocumentedEnv []string
		// StrictMode treats warnings as errors when counting failures.
		StrictMode bool
	}

	// Validator checks one aspect of a descriptor and returns every finding,
	// never stopping at the first. Callers display all findings together.
	Validator interface {
		// Name returns a unique identifier for this validator.
		Name() ValidatorName
		// Validate checks the descriptor and returns all findings.
		Validate(ctx *ValidationContext, d *Descriptor) []ValidationError
	}

	// FieldPath builds descriptor paths for findings, e.g.
	// NewFieldPath("app").Key("machines").Index(1) renders "app.machines[1]".
	FieldPath struct {
		buf strings.Builder
	}
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Severity, e.Field, e.Message)
}

// Error implements the error interface, one finding per line.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	lines := make([]string, len(ve))
	for i, e := range ve {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// HasErrors reports whether any finding has error severity, or, in strict
// mode, whether there is any finding at all.
func (ve ValidationErrors) HasErrors(strict bool) bool {
	for _, e := range ve {
		if e.Severity == SeverityError || strict {
			return true
		}
	}
	return false
}

// Count returns the number of error- and warning-severity findings.
func (ve ValidationErrors) Count() (errors, warnings int) {
	for _, e := range ve {
		if e.Severity == SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

// NewFieldPath starts a path at the given root segment.
func NewFieldPath(root string) *FieldPath {
	fp := &FieldPath{}
	fp.buf.WriteString(root)
	return fp
}

// Key appends a ".name" segment.
func (fp *FieldPath) Key(name string) *FieldPath {
	out := &FieldPath{}
	out.buf.WriteString(fp.buf.String())
	out.buf.WriteString(".")
	out.buf.WriteString(name)
	return out
}

// Index appends an "[i]" segment.
func (fp *FieldPath) Index(i int) *FieldPath {
	out := &FieldPath{}
	out.buf.WriteString(fp.buf.String())
	fmt.Fprintf(&out.buf, "[%d]", i)
	return out
}

func (fp *FieldPath) String() string {
	return fp.buf.String()
}

// Validators returns the full validator set in execution order.
func Validators() []Validator {
	return []Validator{
		&structureValidator{},
		&machinesValidator{},
		&inputsValidator{},
		&siteValidator{},
		&iconsValidator{},
		&envValidator{},
	}
}

// Validate runs every validator and returns the combined findings. A nil or
// empty result means the descriptor passed.
func (d *Descriptor) Validate(ctx *ValidationContext) ValidationErrors {
	if ctx == nil {
		ctx = &ValidationContext{}
	}
	var out ValidationErrors
	for _, v := range Validators() {
		out = append(out, v.Validate(ctx, d)...)
	}
	return out
}
