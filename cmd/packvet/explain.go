// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// formatReference is the descriptor format reference shown by `packvet explain`.
const formatReference = `# The descriptor format

A descriptor is a 'conveyor.conf' file in a JSON-superset config dialect:
braces and quotes are mostly optional, '//' and '#' start comments, and keys
may be dotted ('app.version = 1.0' is shorthand for nesting).

## Substitutions

* ` + "`${path}`" + ` pastes the value at another key. Unresolvable required
  substitutions fail the parse.
* ` + "`${?path}`" + ` is optional: if the path is missing the value simply
  vanishes (list elements are dropped, keys are omitted).
* ` + "`${env.VAR}`" + ` reads an environment variable. Use this for secrets
  such as ` + "`app.site.github.oauth-token`" + ` so they never appear in the
  file.
* A key may extend its own previous value:
  ` + "`mac.inputs = ${app.inputs} [ build/macos ]`" + `.
* ` + "`key += elem`" + ` appends a single element to a list.

## Includes

` + "`include \"common.conf\"`" + ` merges another file at the include site;
later keys win. ` + "`include required(\"f\")`" + ` fails when the file is
missing, the plain form silently skips it.

## Required keys

| Key | Meaning |
| --- | ------- |
| ` + "`app.display-name`" + ` | Human-readable application name |
| ` + "`app.fsname`" + ` | Name used in file and package names |
| ` + "`app.version`" + ` | Release version, dotted integers |
| ` + "`app.vcs-url`" + ` | Source repository URL |
| ` + "`app.machines`" + ` | Target machines (see 'packvet machines') |
| ` + "`conveyor.compatibility-level`" + ` | Schema generation the file was written against |

## Inputs

` + "`inputs`" + ` entries map build outputs into the package. A plain path
keeps its name; ` + "`\"from -> to\"`" + ` renames. Destinations must stay
relative and inside the package root.

## Quoting pitfall

Unquoted URLs are cut short at ` + "`//`" + ` because it starts a comment.
Always quote: ` + "`vcs-url = \"https://github.com/you/app\"`" + `.
`

// explainCmd renders the descriptor format reference.
var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Show a reference for the descriptor format",
	Long: `Render a quick reference for the descriptor format: syntax,
substitutions, includes, required keys, and common pitfalls.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := glamour.Render(formatReference, "auto")
		if err != nil {
			// Fall back to the raw markdown rather than failing the command.
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatReference)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
