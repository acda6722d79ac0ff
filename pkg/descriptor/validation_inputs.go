// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"strings"
)

// inputsValidator checks every input mapping in the descriptor: sources must
// be non-empty relative paths, destinations must stay inside the package
// root, and each declared target OS must end up with at least one input.
type inputsValidator struct{}

func (v *inputsValidator) Name() ValidatorName {
	return "inputs"
}

func (v *inputsValidator) Validate(_ *ValidationContext, d *Descriptor) []ValidationError {
	var errs []ValidationError

	app := NewFieldPath("app")
	errs = append(errs, v.checkList(app.Key("inputs"), d.App.Inputs)...)

	for _, os := range []string{OSMac, OSWindows, OSLinux} {
		sec := d.App.Section(os)
		if sec == nil {
			continue
		}
		secPath := app.Key(os)
		errs = append(errs, v.checkList(secPath.Key("inputs"), sec.Inputs)...)
		if sec.Amd64 != nil {
			errs = append(errs, v.checkList(secPath.Key("amd64").Key("inputs"), sec.Amd64.Inputs)...)
		}
		if sec.Aarch64 != nil {
			errs = append(errs, v.checkList(secPath.Key("aarch64").Key("inputs"), sec.Aarch64.Inputs)...)
		}
	}

	for _, os := range d.App.TargetOSes() {
		if len(d.App.InputsFor(os)) == 0 && !hasArchInputs(d.App.Section(os)) {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      app.Key(os).Key("inputs").String(),
				Message:    fmt.Sprintf("no inputs declared for %s targets; the package would be empty", os),
				Severity:   SeverityWarning,
				Suggestion: fmt.Sprintf("map the build output, e.g. inputs = [ \"build/%s -> .\" ]", os),
			})
		}
	}

	return errs
}

func hasArchInputs(sec *OSSection) bool {
	if sec == nil {
		return false
	}
	return (sec.Amd64 != nil && len(sec.Amd64.Inputs) > 0) ||
		(sec.Aarch64 != nil && len(sec.Aarch64.Inputs) > 0)
}

func (v *inputsValidator) checkList(path *FieldPath, inputs []InputMapping) []ValidationError {
	var errs []ValidationError
	for i, in := range inputs {
		entry := path.Index(i)

		if strings.TrimSpace(in.From) == "" {
			errs = append(errs, ValidationError{
				Validator: v.Name(),
				Field:     entry.Key("from").String(),
				Message:   "source path is empty",
				Severity:  SeverityError,
			})
		}

		if strings.Contains(in.To, mappingArrow) {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      entry.Key("to").String(),
				Message:    fmt.Sprintf("destination %q contains a second '->'", in.To),
				Severity:   SeverityError,
				Suggestion: "a mapping has exactly one source and one destination",
			})
			continue
		}

		if isAbsoluteDest(in.To) {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      entry.Key("to").String(),
				Message:    fmt.Sprintf("destination %q is absolute", in.To),
				Severity:   SeverityError,
				Suggestion: "destinations are relative to the package root, e.g. Contents/MacOS",
			})
		} else if escapesRoot(in.To) {
			errs = append(errs, ValidationError{
				Validator: v.Name(),
				Field:     entry.Key("to").String(),
				Message:   fmt.Sprintf("destination %q escapes the package root", in.To),
				Severity:  SeverityError,
			})
		}
	}
	return errs
}
