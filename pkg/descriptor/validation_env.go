// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"strings"
)

// defaultDocumentedEnv lists variable names that count as documented without
// project-specific configuration, because the descriptor format's own
// documentation establishes them.
var defaultDocumentedEnv = []string{"GITHUB_TOKEN"}

// DefaultDocumentedEnv returns the variable names that count as documented
// without project-specific configuration.
func DefaultDocumentedEnv() []string {
	out := make([]string, len(defaultDocumentedEnv))
	copy(out, defaultDocumentedEnv)
	return out
}

// envValidator checks the environment-variable references recorded during
// resolution: every referenced variable should be documented for packagers,
// and required references that were unset at parse time are surfaced.
type envValidator struct{}

func (v *envValidator) Name() ValidatorName {
	return "env"
}

func (v *envValidator) Validate(ctx *ValidationContext, d *Descriptor) []ValidationError {
	documented := map[string]bool{}
	for _, name := range defaultDocumentedEnv {
		documented[name] = true
	}
	for _, name := range ctx.DocumentedEnv {
		documented[strings.TrimSpace(name)] = true
	}

	var errs []ValidationError
	reportedUnknown := map[string]bool{}

	for _, ref := range d.EnvRefs {
		if !documented[ref.Name] && !reportedUnknown[ref.Name] {
			reportedUnknown[ref.Name] = true
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      fmt.Sprintf("${env.%s} (%s)", ref.Name, ref.Pos),
				Message:    "referenced environment variable is not documented",
				Severity:   SeverityWarning,
				Suggestion: "add it to the documented-env list in the packvet config, or document it in the project README",
			})
		}

		if !ref.Set && !ref.Optional {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      fmt.Sprintf("${env.%s} (%s)", ref.Name, ref.Pos),
				Message:    "required environment variable is not set",
				Severity:   SeverityWarning,
				Suggestion: fmt.Sprintf("the packaging tool would fail here; export %s before building", ref.Name),
			})
		}
	}

	return errs
}
