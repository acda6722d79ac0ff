// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/packvet/packvet/pkg/descriptor"

	"github.com/spf13/cobra"
)

// machinesCmd lists the machine identifiers the `app.machines` key accepts.
var machinesCmd = &cobra.Command{
	Use:   "machines",
	Short: "List recognized machine identifiers",
	Long: `List the machine identifiers a descriptor may declare in app.machines.

Each identifier is an os.arch pair; Linux identifiers carry a third libc
segment. 'linux.amd64' is accepted as an alias for 'linux.amd64.glibc'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		stdout := cmd.OutOrStdout()

		fmt.Fprintln(stdout, TitleStyle.Render("Machine identifiers"))
		fmt.Fprintln(stdout)

		tw := tabwriter.NewWriter(stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "IDENTIFIER\tOS\tARCH\tLIBC")
		for _, m := range descriptor.KnownMachines() {
			libc := m.LibC()
			if libc == "" {
				libc = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m, m.OS(), m.Arch(), libc)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, SubtitleStyle.Render("Alias: linux.amd64 → linux.amd64.glibc, linux.aarch64 → linux.aarch64.glibc"))
		return nil
	},
}
