// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/packvet/packvet/internal/issue"
	"github.com/packvet/packvet/internal/watch"
	"github.com/packvet/packvet/pkg/descriptor"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	checkStrict bool
	checkWatch  bool
	checkClear  bool
	checkFormat string

	// checkCmd validates a packaging descriptor.
	checkCmd = &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a packaging descriptor",
		Long: `Validate a packaging descriptor file.

Parses the descriptor, resolves all substitutions and includes, then runs
every validator and reports all findings in one pass. Errors make the
descriptor unusable; warnings flag likely mistakes the packaging tool
would tolerate.

Without a path argument, checks the descriptor file from the tool
configuration (` + descriptor.DefaultFileName + ` by default).

Exit codes:
  0  descriptor is valid
  1  validation findings (errors, or warnings with --strict)
  2  descriptor missing or unparseable

Examples:
  packvet check                      Check ./conveyor.conf
  packvet check ci/conveyor.conf     Check a specific file
  packvet check --strict             Fail on warnings too
  packvet check --watch              Re-check on every save
  packvet check --format json        Machine-readable findings`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat warnings as errors")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "re-validate whenever the descriptor or its includes change")
	checkCmd.Flags().BoolVar(&checkClear, "clear", false, "clear the screen before each re-validation in watch mode")
	checkCmd.Flags().StringVar(&checkFormat, "format", formatText, "output format (text, json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if err := validateFormat(checkFormat); err != nil {
		return err
	}

	path := descriptorPath(args)

	if checkWatch {
		return runCheckWatch(cmd, path)
	}
	return checkOnce(cmd, path)
}

// descriptorPath picks the descriptor file to check: the positional argument
// when given, otherwise the configured default.
func descriptorPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.DescriptorFile != "" {
		return cfg.DescriptorFile
	}
	return descriptor.DefaultFileName
}

// checkLogger returns a logger for verbose diagnostics, silenced unless
// --verbose is set.
func checkLogger(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: false,
		Prefix:          "check",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// checkOnce runs a single parse-and-validate pass and renders the report.
func checkOnce(cmd *cobra.Command, path string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	logger := checkLogger(cmd)

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if _, statErr := os.Stat(path); statErr != nil {
		if checkFormat == formatJSON {
			writeReport(stdout, parseFailureReport(path, fmt.Sprintf("descriptor file not found: %s", path)))
			return &ExitError{Code: 2}
		}
		fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("✗"), fmt.Sprintf("descriptor file not found: %s", path))
		if guidance, renderErr := issue.Lookup(issue.DescriptorNotFoundId).Render("auto"); renderErr == nil {
			fmt.Fprintln(stderr, guidance)
		}
		return &ExitError{Code: 2}
	}

	logger.Debug("parsing descriptor", "path", path)

	d, err := descriptor.ParseFile(path)
	if err != nil {
		wrapped := issue.NewErrorContext().
			WithOperation("parse descriptor").
			WithResource(path).
			WithSuggestion("run 'packvet explain' for a reference of the descriptor format").
			Wrap(err).
			Build()
		if checkFormat == formatJSON {
			writeReport(stdout, parseFailureReport(path, err.Error()))
			return &ExitError{Code: 2, Err: wrapped}
		}
		fmt.Fprintf(stderr, "%s %s\n", ErrorStyle.Render("✗"), formatErrorForDisplay(wrapped, verbose))
		if verbose {
			if guidance, renderErr := issue.Lookup(issue.DescriptorParseErrorId).Render("auto"); renderErr == nil {
				fmt.Fprintln(stderr, guidance)
			}
		}
		return &ExitError{Code: 2, Err: wrapped}
	}

	strict := checkStrict || cfg.Strict

	vctx := &descriptor.ValidationContext{
		DocumentedEnv: cfg.DocumentedEnv,
		StrictMode:    strict,
	}

	logger.Debug("running validators", "count", len(descriptor.Validators()), "strict", strict)

	findings := d.Validate(vctx)
	report := buildReport(path, findings, strict)

	if checkFormat == formatJSON {
		writeReport(stdout, report)
	} else {
		renderReportText(stdout, report)
	}

	if !report.Valid {
		return &ExitError{Code: 1}
	}
	return nil
}

// runCheckWatch validates once, then re-validates whenever the descriptor or
// any .conf file in its directory changes. Includes live next to the
// descriptor, so watching the whole directory for .conf changes covers them.
func runCheckWatch(cmd *cobra.Command, path string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	recheck := func(ctx context.Context) {
		if err := checkOnce(cmd, path); err != nil {
			var exitErr *ExitError
			// Findings are already rendered; anything else is unexpected.
			if !errors.As(err, &exitErr) {
				fmt.Fprintf(stderr, "%s %v\n", WarningStyle.Render("!"), err)
			}
		}
	}

	fmt.Fprintf(stdout, "%s Watch mode: initial check of '%s'\n\n", VerboseHighlightStyle.Render("→"), path)
	recheck(cmd.Context())
	fmt.Fprintf(stdout, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", VerboseHighlightStyle.Render("→"))

	baseDir := filepath.Dir(path)
	base := filepath.Base(path)

	w, err := watch.New(watch.Config{
		Patterns:    []string{base, "**/*.conf"},
		Debounce:    time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
		ClearScreen: checkClear,
		BaseDir:     baseDir,
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(stdout, "%s Detected %d change(s). Re-checking '%s'...\n\n",
				VerboseHighlightStyle.Render("→"), len(changed), path)
			recheck(ctx)
			fmt.Fprintf(stdout, "\n%s Watching for changes...\n\n", VerboseHighlightStyle.Render("→"))
			return nil
		},
		Stdout: stdout,
		Stderr: stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(cmd.Context())
}
