// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/packvet/packvet/pkg/descriptor"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatTOML = "toml"
)

type (
	// checkReport is the machine-readable result of one check run.
	checkReport struct {
		// File is the descriptor path that was checked.
		File string `json:"file"`
		// Valid reports whether the check passed (strict mode counts
		// warnings as failures).
		Valid bool `json:"valid"`
		// Strict reports whether warnings counted as failures.
		Strict bool `json:"strict"`
		// Errors and Warnings are finding counts by severity.
		Errors   int `json:"errors"`
		Warnings int `json:"warnings"`
		// ParseError holds the parse failure message when the descriptor
		// never reached validation.
		ParseError string `json:"parse_error,omitempty"`
		// Findings lists every validation finding in validator order, so
		// related findings stay together.
		Findings []reportFinding `json:"findings"`
	}

	// reportFinding is one validation finding in the report.
	reportFinding struct {
		Severity   string `json:"severity"`
		Validator  string `json:"validator"`
		Field      string `json:"field,omitempty"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion,omitempty"`
	}
)

// buildReport converts validation findings into a report.
func buildReport(file string, findings descriptor.ValidationErrors, strict bool) checkReport {
	errCount, warnCount := findings.Count()
	report := checkReport{
		File:     file,
		Valid:    !findings.HasErrors(strict),
		Strict:   strict,
		Errors:   errCount,
		Warnings: warnCount,
		Findings: make([]reportFinding, 0, len(findings)),
	}
	for _, f := range findings {
		report.Findings = append(report.Findings, reportFinding{
			Severity:   f.Severity.String(),
			Validator:  string(f.Validator),
			Field:      f.Field,
			Message:    f.Message,
			Suggestion: f.Suggestion,
		})
	}
	return report
}

// parseFailureReport is the report for a descriptor that never parsed.
func parseFailureReport(file, message string) checkReport {
	return checkReport{
		File:       file,
		Valid:      false,
		ParseError: message,
		Findings:   []reportFinding{},
	}
}

// writeReport emits the report as indented JSON.
func writeReport(w io.Writer, report checkReport) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(w, "{\"error\": %q}\n", err.Error())
	}
}

// renderReportText renders the report for humans: one line per finding with
// severity icon and field path, suggestions indented underneath, then a
// summary line.
func renderReportText(w io.Writer, report checkReport) {
	for _, f := range report.Findings {
		icon := WarningStyle.Render("!")
		if f.Severity == descriptor.SeverityError.String() {
			icon = ErrorStyle.Render("✗")
		}
		if f.Field != "" {
			fmt.Fprintf(w, "%s %s: %s\n", icon, FieldStyle.Render(f.Field), f.Message)
		} else {
			fmt.Fprintf(w, "%s %s\n", icon, f.Message)
		}
		if f.Suggestion != "" {
			fmt.Fprintf(w, "  %s\n", suggestionStyle.Render("↳ "+f.Suggestion))
		}
	}

	if len(report.Findings) > 0 {
		fmt.Fprintln(w)
	}

	switch {
	case report.Valid && len(report.Findings) == 0:
		fmt.Fprintf(w, "%s %s is valid\n", SuccessStyle.Render("✓"), report.File)
	case report.Valid:
		fmt.Fprintf(w, "%s %s is valid (%d warning(s))\n", SuccessStyle.Render("✓"), report.File, report.Warnings)
	default:
		fmt.Fprintf(w, "%s %s: %d error(s), %d warning(s)\n",
			ErrorStyle.Render("✗"), report.File, report.Errors, report.Warnings)
	}
}

// validateFormat rejects output formats a command does not support.
func validateFormat(format string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = []string{formatText, formatJSON}
	}
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q (supported: %v)", format, allowed)
}
