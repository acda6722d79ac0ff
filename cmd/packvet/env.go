// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/packvet/packvet/internal/issue"
	"github.com/packvet/packvet/pkg/descriptor"

	"github.com/spf13/cobra"
)

// envCmd lists the environment variables a descriptor reads.
var envCmd = &cobra.Command{
	Use:   "env [path]",
	Short: "List environment variables the descriptor reads",
	Long: `List every ${env.VAR} reference in a descriptor, with where it appears,
whether the variable is currently set, and whether the project documents it.

Undocumented references are the usual cause of "works on my machine"
packaging runs: the descriptor silently resolves them to empty strings on
any machine that lacks the variable.

Examples:
  packvet env                      Inspect ./conveyor.conf
  packvet env ci/conveyor.conf     Inspect a specific file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	path := descriptorPath(args)

	cmd.SilenceUsage = true

	d, err := descriptor.ParseFile(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("inspect descriptor environment references").
			WithResource(path).
			Wrap(err).
			BuildError()
	}

	stdout := cmd.OutOrStdout()

	if len(d.EnvRefs) == 0 {
		fmt.Fprintf(stdout, "%s %s reads no environment variables\n", SuccessStyle.Render("✓"), path)
		return nil
	}

	documented := documentedEnvSet()

	fmt.Fprintln(stdout, TitleStyle.Render("Environment references"))
	fmt.Fprintln(stdout)

	tw := tabwriter.NewWriter(stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIABLE\tLOCATION\tSET\tDOCUMENTED")
	for _, ref := range d.EnvRefs {
		set := "no"
		if _, ok := os.LookupEnv(ref.Name); ok {
			set = "yes"
		}
		doc := "no"
		if documented[ref.Name] {
			doc = "yes"
		}
		loc := ref.Pos.String()
		name := ref.Name
		if ref.Optional {
			name += " (optional)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, loc, set, doc)
	}
	return tw.Flush()
}

// documentedEnvSet merges the built-in documented variables with the ones
// from tool configuration.
func documentedEnvSet() map[string]bool {
	names := slices.Clone(cfg.DocumentedEnv)
	names = append(names, descriptor.DefaultDocumentedEnv()...)
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
