// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"strings"
)

// knownSiteKeys are the site sub-keys the typed model understands. Anything
// else under app.site is most likely a misspelled provider.
var knownSiteKeys = map[string]bool{
	"github":   true,
	"base-url": true,
	"copy-to":  true,
}

// siteValidator checks the publishing configuration: a destination must be
// declared, the GitHub provider needs an oauth-token reference, and literal
// tokens in the descriptor are flagged.
type siteValidator struct{}

func (v *siteValidator) Name() ValidatorName {
	return "site"
}

func (v *siteValidator) Validate(_ *ValidationContext, d *Descriptor) []ValidationError {
	var errs []ValidationError
	site := NewFieldPath("app").Key("site")

	if d.App.Site.GitHub == nil && d.App.Site.BaseURL == "" && d.App.Site.CopyTo == "" {
		return []ValidationError{{
			Validator:  v.Name(),
			Field:      site.String(),
			Message:    "no publishing destination declared",
			Severity:   SeverityError,
			Suggestion: "declare a provider, e.g. app.site.github.oauth-token = ${env.GITHUB_TOKEN}",
		}}
	}

	if gh := d.App.Site.GitHub; gh != nil {
		tokenField := site.Key("github").Key("oauth-token")

		if strings.TrimSpace(gh.OAuthToken) == "" && !d.referencesEnv() {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      tokenField.String(),
				Message:    "oauth-token is missing or empty",
				Severity:   SeverityError,
				Suggestion: "reference it from the environment: oauth-token = ${env.GITHUB_TOKEN}",
			})
		}

		// A descriptor checked into version control must never carry the
		// token itself; the only safe form is environment interpolation.
		if looksLikeLiteralToken(gh.OAuthToken) {
			errs = append(errs, ValidationError{
				Validator:  v.Name(),
				Field:      tokenField.String(),
				Message:    "oauth-token appears to be a literal credential",
				Severity:   SeverityError,
				Suggestion: "move the token into the environment and reference it with ${env.GITHUB_TOKEN}",
			})
		}
	}

	if rawSite, ok := rawSection(d.Raw, "app", "site"); ok {
		for key := range rawSite {
			if !knownSiteKeys[key] {
				errs = append(errs, ValidationError{
					Validator:  v.Name(),
					Field:      site.Key(key).String(),
					Message:    fmt.Sprintf("unknown site provider %q", key),
					Severity:   SeverityWarning,
					Suggestion: `supported providers: github (or base-url / copy-to for plain HTTP hosting)`,
				})
			}
		}
	}

	return errs
}

// referencesEnv reports whether the descriptor interpolates any environment
// variable. An empty oauth-token combined with an env reference means the
// variable was simply unset at validation time, which the env validator
// reports with better context.
func (d *Descriptor) referencesEnv() bool {
	return len(d.EnvRefs) > 0
}

// looksLikeLiteralToken spots literal GitHub credentials. Fine-grained and
// classic tokens share distinctive prefixes.
func looksLikeLiteralToken(s string) bool {
	for _, prefix := range []string{"ghp_", "gho_", "ghs_", "ghu_", "github_pat_"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// rawSection walks nested map keys in the untyped document tree.
func rawSection(raw map[string]any, path ...string) (map[string]any, bool) {
	current := raw
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
