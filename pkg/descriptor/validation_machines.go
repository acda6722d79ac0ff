// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
)

// machinesValidator checks the declared target machine identifiers: the list
// must be present, every entry must be in the known set, and duplicates
// (including alias duplicates like linux.amd64 vs linux.amd64.glibc) are
// flagged.
type machinesValidator struct{}

func (v *machinesValidator) Name() ValidatorName {
	return "machines"
}

func (v *machinesValidator) Validate(_ *ValidationContext, d *Descriptor) []ValidationError {
	var errs []ValidationError
	field := NewFieldPath("app").Key("machines")

	if len(d.App.Machines) == 0 {
		return []ValidationError{{
			Validator:  v.Name(),
			Field:      field.String(),
			Message:    "no target machines declared",
			Severity:   SeverityError,
			Suggestion: "declare at least one target, e.g. machines = [ mac.aarch64, mac.amd64, windows.amd64 ]",
		}}
	}

	seen := map[Machine]int{}
	for i, m := range d.App.Machines {
		entry := field.Index(i)

		if err := m.Validate(); err != nil {
			finding := ValidationError{
				Validator: v.Name(),
				Field:     entry.String(),
				Message:   err.Error(),
				Severity:  SeverityError,
			}
			if hint := suggestMachine(m); hint != "" {
				finding.Suggestion = fmt.Sprintf("did you mean %q?", hint)
			}
			errs = append(errs, finding)
			continue
		}

		canonical := m.Canonical()
		if first, dup := seen[canonical]; dup {
			errs = append(errs, ValidationError{
				Validator: v.Name(),
				Field:     entry.String(),
				Message:   fmt.Sprintf("duplicate machine %q (already declared at %s)", m, field.Index(first)),
				Severity:  SeverityWarning,
			})
			continue
		}
		seen[canonical] = i
	}

	// A per-OS section without a matching machine is dead configuration.
	targets := map[string]bool{}
	for _, os := range d.App.TargetOSes() {
		targets[os] = true
	}
	for _, os := range []string{OSMac, OSWindows, OSLinux} {
		if d.App.Section(os) != nil && !targets[os] {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      NewFieldPath("app").Key(os).String(),
				Message:    fmt.Sprintf("section is configured but no %s machine is declared", os),
				Severity:   SeverityWarning,
				Suggestion: fmt.Sprintf("add a %s.* entry to app.machines or drop the section", os),
			})
		}
	}

	return errs
}
