// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/packvet/packvet/pkg/descriptor"
)

func TestBuildReport(t *testing.T) {
	t.Parallel()

	findings := descriptor.ValidationErrors{
		{Validator: "structure", Field: "app.version", Message: "required key is missing", Severity: descriptor.SeverityError},
		{Validator: "machines", Field: "app.mac", Message: "section has no matching machine", Severity: descriptor.SeverityWarning},
	}

	tests := []struct {
		name      string
		findings  descriptor.ValidationErrors
		strict    bool
		wantValid bool
		wantErrs  int
		wantWarns int
	}{
		{"errors fail", findings, false, false, 1, 1},
		{"clean passes", nil, false, true, 0, 0},
		{"warnings pass non-strict", findings[1:], false, true, 0, 1},
		{"warnings fail strict", findings[1:], true, false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := buildReport("conveyor.conf", tt.findings, tt.strict)
			if report.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", report.Valid, tt.wantValid)
			}
			if report.Errors != tt.wantErrs {
				t.Errorf("Errors = %d, want %d", report.Errors, tt.wantErrs)
			}
			if report.Warnings != tt.wantWarns {
				t.Errorf("Warnings = %d, want %d", report.Warnings, tt.wantWarns)
			}
			if len(report.Findings) != len(tt.findings) {
				t.Errorf("len(Findings) = %d, want %d", len(report.Findings), len(tt.findings))
			}
		})
	}
}

func TestWriteReportRoundTrips(t *testing.T) {
	t.Parallel()

	findings := descriptor.ValidationErrors{
		{
			Validator:  "machines",
			Field:      "app.machines[0]",
			Message:    `unknown machine "windows.arm64"`,
			Severity:   descriptor.SeverityError,
			Suggestion: `did you mean "windows.aarch64"?`,
		},
	}

	var buf bytes.Buffer
	writeReport(&buf, buildReport("conveyor.conf", findings, false))

	var decoded checkReport
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if decoded.File != "conveyor.conf" {
		t.Errorf("File = %q, want conveyor.conf", decoded.File)
	}
	if decoded.Valid {
		t.Error("Valid = true, want false")
	}
	if len(decoded.Findings) != 1 {
		t.Fatalf("len(Findings) = %d, want 1", len(decoded.Findings))
	}
	if decoded.Findings[0].Severity != "error" {
		t.Errorf("Severity = %q, want error", decoded.Findings[0].Severity)
	}
	if decoded.Findings[0].Suggestion == "" {
		t.Error("Suggestion should survive the round trip")
	}
}

func TestRenderReportText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		findings descriptor.ValidationErrors
		strict   bool
		want     []string
	}{
		{
			name: "findings and summary",
			findings: descriptor.ValidationErrors{
				{Validator: "structure", Field: "app.version", Message: "required key is missing", Severity: descriptor.SeverityError, Suggestion: "add app.version"},
				{Validator: "env", Message: "required environment variable is not set", Severity: descriptor.SeverityWarning},
			},
			want: []string{"app.version", "required key is missing", "↳ add app.version", "1 error(s), 1 warning(s)"},
		},
		{
			name: "clean descriptor",
			want: []string{"conveyor.conf is valid"},
		},
		{
			name: "warnings only",
			findings: descriptor.ValidationErrors{
				{Validator: "env", Message: "undocumented variable", Severity: descriptor.SeverityWarning},
			},
			want: []string{"is valid (1 warning(s))"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			renderReportText(&buf, buildReport("conveyor.conf", tt.findings, tt.strict))

			out := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		allowed []string
		wantErr bool
	}{
		{formatText, nil, false},
		{formatJSON, nil, false},
		{formatTOML, nil, true},
		{formatTOML, []string{formatJSON, formatTOML}, false},
		{"yaml", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			err := validateFormat(tt.format, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFormat(%q, %v) error = %v, wantErr %v", tt.format, tt.allowed, err, tt.wantErr)
			}
		})
	}
}
