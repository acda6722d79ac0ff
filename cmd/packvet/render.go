// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/packvet/packvet/internal/issue"
	"github.com/packvet/packvet/pkg/descriptor"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	renderFormat string

	// renderCmd prints the fully resolved descriptor.
	renderCmd = &cobra.Command{
		Use:   "render [path]",
		Short: "Print the resolved descriptor",
		Long: `Parse a descriptor, resolve every substitution, include, and environment
reference, and print the resulting document.

This shows the descriptor exactly as the packaging tool would see it, which
is the quickest way to debug substitution chains and include merges.

Examples:
  packvet render                   Resolve ./conveyor.conf as JSON
  packvet render --format toml     Resolve as TOML
  packvet render ci/conveyor.conf  Resolve a specific file`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}
)

func init() {
	renderCmd.Flags().StringVar(&renderFormat, "format", formatJSON, "output format (json, toml)")
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := validateFormat(renderFormat, formatJSON, formatTOML); err != nil {
		return err
	}

	path := descriptorPath(args)

	cmd.SilenceUsage = true

	d, err := descriptor.ParseFile(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("resolve descriptor").
			WithResource(path).
			WithSuggestion("run 'packvet check' for a full diagnostic report").
			Wrap(err).
			BuildError()
	}

	stdout := cmd.OutOrStdout()

	switch renderFormat {
	case formatTOML:
		out, marshalErr := toml.Marshal(d.Raw)
		if marshalErr != nil {
			return fmt.Errorf("encode resolved descriptor as TOML: %w", marshalErr)
		}
		fmt.Fprint(stdout, string(out))
	default:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(d.Raw); encErr != nil {
			return fmt.Errorf("encode resolved descriptor as JSON: %w", encErr)
		}
	}
	return nil
}
