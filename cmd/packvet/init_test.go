// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"github.com/packvet/packvet/pkg/descriptor"
)

// TestGeneratedTemplatesParse verifies every init template yields a
// descriptor that parses and carries no validation errors. Warnings are
// acceptable: the default template references GITHUB_TOKEN, which is rarely
// set in a fresh checkout.
func TestGeneratedTemplatesParse(t *testing.T) {
	t.Parallel()

	for _, template := range []string{"default", "minimal"} {
		t.Run(template, func(t *testing.T) {
			t.Parallel()

			content, err := generateDescriptor(template)
			if err != nil {
				t.Fatalf("generateDescriptor(%q) error: %v", template, err)
			}

			d, err := descriptor.ParseBytes([]byte(content), "conveyor.conf",
				descriptor.WithEnv(func(string) (string, bool) { return "", false }))
			if err != nil {
				t.Fatalf("template %q does not parse: %v", template, err)
			}

			findings := d.Validate(&descriptor.ValidationContext{})
			if findings.HasErrors(false) {
				t.Errorf("template %q has validation errors:\n%v", template, findings.Error())
			}
		})
	}
}

func TestGenerateDescriptorUnknownTemplate(t *testing.T) {
	t.Parallel()

	if _, err := generateDescriptor("sparkly"); err == nil {
		t.Fatal("expected an error for an unknown template")
	}
}
