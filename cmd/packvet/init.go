// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/packvet/packvet/pkg/descriptor"

	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initTemplate string

	// initCmd creates a starter descriptor.
	initCmd = &cobra.Command{
		Use:   "init [filename]",
		Short: "Create a new conveyor.conf in the current directory",
		Long: `Create a new descriptor in the current directory with a commented
starting point.

This command generates a starter conveyor.conf that already passes
'packvet check', ready to be filled in with your application's details.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing descriptor")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "template to use (default, minimal)")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := descriptor.DefaultFileName
	if len(args) > 0 {
		filename = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	content, err := generateDescriptor(initTemplate)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Fill in your application's name, version, and repository URL")
	fmt.Println("  2. Point the inputs at your build output")
	fmt.Println("  3. Run 'packvet check' to validate the result")

	return nil
}

func generateDescriptor(template string) (string, error) {
	switch template {
	case "minimal":
		return `app {
  display-name = "My App"
  fsname = my-app
  version = "1.0"
  vcs-url = "https://github.com/example/my-app"
  machines = [ "mac.aarch64", "windows.amd64", "linux.amd64" ]
  inputs = [ build/dist ]
  icons = [ "icons/icon-64.png" ]
  site.github.oauth-token = ${env.GITHUB_TOKEN}
}

conveyor.compatibility-level = 18
`, nil

	case "default":
		return `// Packaging descriptor. Run 'packvet check' after editing.

app {
  display-name = "My App"
  fsname = my-app
  version = "1.0"
  vcs-url = "https://github.com/example/my-app"
  license = Apache-2.0
  contact-email = packages@example.com

  // Target machines. Run 'packvet machines' for the full list.
  machines = [ mac.aarch64, mac.amd64, windows.amd64, linux.amd64 ]

  // Files packaged on every target.
  inputs = [ build/dist ]

  // Per-OS additions extend the shared list.
  mac.inputs = ${app.inputs} [ build/macos ]
  windows.inputs = ${app.inputs} [ build/windows ]
  linux.inputs = ${app.inputs} [ build/linux ]

  icons = images/icon-*.png

  // Publishing destination. GITHUB_TOKEN must be set when packaging.
  site.github.oauth-token = ${env.GITHUB_TOKEN}
}

conveyor.compatibility-level = 18
`, nil

	default:
		return "", fmt.Errorf("unknown template %q (supported: default, minimal)", template)
	}
}
