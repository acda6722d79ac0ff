// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/packvet/packvet/internal/config"
	"github.com/packvet/packvet/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `packvet config` command tree.
func newConfigCommand() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage packvet configuration",
		Long: `Manage packvet configuration.

Configuration is stored in:
  - Linux: ~/.config/packvet/config.cue
  - macOS: ~/Library/Application Support/packvet/config.cue
  - Windows: %APPDATA%\packvet\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile()
		},
	})

	return cfgCmd
}

func showConfig() error {
	loaded, err := config.Load()
	if err != nil {
		if rendered, renderErr := issue.Lookup(issue.ConfigLoadFailedId).Render("auto"); renderErr == nil {
			fmt.Fprint(os.Stderr, rendered)
		}
		return &ExitError{Code: 1, Err: err}
	}

	keyStyle := FieldStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	path, err := config.LoadedConfigPath()
	if err == nil && path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("descriptor_file"), valueStyle.Render(loaded.DescriptorFile))
	fmt.Printf("%s: %s\n", keyStyle.Render("strict"), valueStyle.Render(fmt.Sprintf("%v", loaded.Strict)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("documented_env"))
	if len(loaded.DocumentedEnv) == 0 {
		fmt.Printf("  %s\n", SubtitleStyle.Render("(none configured; built-in defaults still apply)"))
	} else {
		for _, name := range loaded.DocumentedEnv {
			fmt.Printf("  - %s\n", valueStyle.Render(name))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(loaded.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", loaded.UI.Verbose)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("watch"))
	fmt.Printf("  debounce_ms: %s\n", valueStyle.Render(fmt.Sprintf("%d", loaded.Watch.DebounceMs)))

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", cfgDir+string(os.PathSeparator)+config.ConfigFileName+"."+config.ConfigFileExt)
	return nil
}

func initConfigFile() error {
	path, err := config.CreateDefaultFile()
	if err != nil {
		if path != "" && strings.Contains(err.Error(), "already exists") {
			fmt.Printf("%s Config file already exists at %s\n", WarningStyle.Render("!"), path)
			return nil
		}
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	fmt.Println()
	fmt.Println("Uncomment lines in the file to override defaults.")
	return nil
}
