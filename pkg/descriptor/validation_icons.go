// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"strings"
)

// iconsValidator checks icon declarations: some icon set must exist, entries
// must be non-empty, and image formats should be ones the packaging tool can
// convert for every target.
type iconsValidator struct{}

func (v *iconsValidator) Name() ValidatorName {
	return "icons"
}

func (v *iconsValidator) Validate(_ *ValidationContext, d *Descriptor) []ValidationError {
	var errs []ValidationError
	app := NewFieldPath("app")

	hasShared := len(d.App.Icons) > 0
	if !hasShared {
		// Per-OS icons can stand in for the shared set, but only if every
		// target OS has its own.
		covered := true
		for _, os := range d.App.TargetOSes() {
			sec := d.App.Section(os)
			if sec == nil || len(sec.Icons) == 0 {
				covered = false
				break
			}
		}
		if !covered || len(d.App.TargetOSes()) == 0 {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      app.Key("icons").String(),
				Message:    "no icons declared",
				Severity:   SeverityError,
				Suggestion: `declare the icon images, e.g. icons = "icons/icon-rounded-*.png"`,
			})
		}
	}

	errs = append(errs, v.checkList(app.Key("icons"), d.App.Icons)...)
	for _, os := range []string{OSMac, OSWindows, OSLinux} {
		if sec := d.App.Section(os); sec != nil {
			errs = append(errs, v.checkList(app.Key(os).Key("icons"), sec.Icons)...)
		}
	}

	return errs
}

func (v *iconsValidator) checkList(path *FieldPath, icons []string) []ValidationError {
	var errs []ValidationError
	for i, icon := range icons {
		entry := path.Index(i)
		if strings.TrimSpace(icon) == "" {
			errs = append(errs, ValidationError{
				Validator: v.Name(),
				Field:     entry.String(),
				Message:   "icon path is empty",
				Severity:  SeverityError,
			})
			continue
		}
		if !hasIconExtension(icon) {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      entry.String(),
				Message:    fmt.Sprintf("%q does not look like an icon image", icon),
				Severity:   SeverityWarning,
				Suggestion: "use png or svg sources; platform formats (icns, ico) are generated",
			})
		}
	}
	return errs
}

func hasIconExtension(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range []string{".png", ".svg", ".icns", ".ico"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
