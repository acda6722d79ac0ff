// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// MinCompatibilityLevel is the oldest descriptor generation understood.
	MinCompatibilityLevel = 1
	// MaxCompatibilityLevel is the newest descriptor generation understood.
	// Descriptors above this level may use constructs this tool cannot see.
	MaxCompatibilityLevel = 18
)

var (
	// fsnamePattern limits filesystem names to characters that are safe in
	// file names, package names, and URLs on every target platform.
	fsnamePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]*[a-z0-9])?$`)

	// versionPattern accepts dotted integers ("1", "1.0", "1.0.3").
	versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

	// rdnsPattern accepts reverse-DNS identifiers ("io.github.user.app").
	rdnsPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*(\.[a-zA-Z0-9][a-zA-Z0-9-]*)+$`)
)

// structureValidator checks the required top-level metadata: presence and
// shape of display-name, fsname, version, vcs-url, and the compatibility
// level.
type structureValidator struct{}

func (v *structureValidator) Name() ValidatorName {
	return "structure"
}

func (v *structureValidator) Validate(_ *ValidationContext, d *Descriptor) []ValidationError {
	var errs []ValidationError
	app := NewFieldPath("app")

	required := func(field, value, hint string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      app.Key(field).String(),
				Message:    "required field is missing or empty",
				Severity:   SeverityError,
				Suggestion: hint,
			})
		}
	}

	required("display-name", d.App.DisplayName, `set the human-readable name, e.g. display-name = "EDLgen"`)
	required("fsname", d.App.FSName, `set the filesystem name, e.g. fsname = edlgen`)
	required("version", d.App.Version, `set the release version, e.g. version = "1.0.3"`)
	required("vcs-url", d.App.VCSURL, `set the repository URL, e.g. vcs-url = "https://github.com/user/app"`)

	if d.App.FSName != "" && !fsnamePattern.MatchString(d.App.FSName) {
		errs = append(errs, ValidationError{
			Validator:  v.Name(),
			Field:      app.Key("fsname").String(),
			Message:    fmt.Sprintf("%q is not a valid filesystem name", d.App.FSName),
			Severity:   SeverityError,
			Suggestion: "use lowercase letters, digits, dots, and dashes, starting with a letter or digit",
		})
	}

	if d.App.Version != "" && !versionPattern.MatchString(d.App.Version) {
		errs = append(errs, ValidationError{
			Validator:  v.Name(),
			Field:      app.Key("version").String(),
			Message:    fmt.Sprintf("%q is not a dotted-integer version", d.App.Version),
			Severity:   SeverityError,
			Suggestion: `versions are plain dotted integers like "1.0.3"; drop prefixes and pre-release tags`,
		})
	}

	if d.App.VCSURL != "" {
		if u, err := url.Parse(d.App.VCSURL); err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      app.Key("vcs-url").String(),
				Message:    fmt.Sprintf("%q is not a valid repository URL", d.App.VCSURL),
				Severity:   SeverityError,
				Suggestion: "use an absolute http(s) URL, and quote it: unquoted URLs are cut at '//'",
			})
		}
	}

	if d.App.RDNSName != "" && !rdnsPattern.MatchString(d.App.RDNSName) {
		errs = append(errs, ValidationError{
			Validator:  v.Name(),
			Field:      app.Key("rdns-name").String(),
			Message:    fmt.Sprintf("%q is not a reverse-DNS identifier", d.App.RDNSName),
			Severity:   SeverityError,
			Suggestion: `use a dotted identifier like "io.github.user.app"`,
		})
	}

	if d.App.ContactEmail != "" && !strings.Contains(d.App.ContactEmail, "@") {
		errs = append(errs, ValidationError{
			Validator: v.Name(),
			Field:     app.Key("contact-email").String(),
			Message:   fmt.Sprintf("%q is not an email address", d.App.ContactEmail),
			Severity:  SeverityWarning,
		})
	}

	level := d.Conveyor.CompatibilityLevel
	levelField := NewFieldPath("conveyor").Key("compatibility-level")
	switch {
	case level == 0:
		errs = append(errs, ValidationError{
			Validator:  v.Name(),
			Field:      levelField.String(),
			Message:    "required field is missing",
			Severity:   SeverityError,
			Suggestion: fmt.Sprintf("declare the schema generation, e.g. conveyor.compatibility-level = %d", MaxCompatibilityLevel),
		})
	case level < MinCompatibilityLevel:
		errs = append(errs, ValidationError{
			Validator: v.Name(),
			Field:     levelField.String(),
			Message:   fmt.Sprintf("level %d is not valid", level),
			Severity:  SeverityError,
		})
	case level > MaxCompatibilityLevel:
		errs = append(errs, ValidationError{
			Validator:  v.Name(),
			Field:      levelField.String(),
			Message:    fmt.Sprintf("level %d is newer than the newest supported level %d", level, MaxCompatibilityLevel),
			Severity:   SeverityWarning,
			Suggestion: "checks may miss constructs introduced after the supported level",
		})
	}

	// Keys the typed model does not know are usually typos.
	for key := range d.Raw {
		if key != "app" && key != "conveyor" {
			errs = append(errs, ValidationError{
				Validator: v.Name(),
				Field:     key,
				Message:   "unknown top-level key",
				Severity:  SeverityWarning,
			})
		}
	}

	return errs
}
