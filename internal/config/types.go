// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is().
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError aggregates config validation failures. It wraps
	// ErrInvalidConfig for errors.Is().
	InvalidConfigError struct {
		Problems []string
	}

	// UIConfig groups presentation settings.
	UIConfig struct {
		// ColorScheme selects terminal colors: auto, dark, or light.
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		// Verbose enables diagnostic logging by default.
		Verbose bool `mapstructure:"verbose"`
	}

	// WatchConfig groups watch-mode settings.
	WatchConfig struct {
		// DebounceMs is the quiet period after a file change before
		// re-checking, in milliseconds.
		DebounceMs int `mapstructure:"debounce_ms"`
	}

	// Config is packvet's tool configuration.
	Config struct {
		// DescriptorFile is the file name checked when no path is given.
		DescriptorFile string `mapstructure:"descriptor_file"`
		// Strict treats warnings as errors.
		Strict bool `mapstructure:"strict"`
		// DocumentedEnv lists environment variable names the project
		// documents for packagers; descriptor references outside this set
		// (plus the built-in defaults) are flagged.
		DocumentedEnv []string `mapstructure:"documented_env"`
		// UI holds presentation settings.
		UI UIConfig `mapstructure:"ui"`
		// Watch holds watch-mode settings.
		Watch WatchConfig `mapstructure:"watch"`
	}
)

// Validate returns an InvalidColorSchemeError for unrecognized values.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	}
	return &InvalidColorSchemeError{Value: c}
}

func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", string(e.Value))
}

func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

func (e *InvalidConfigError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

func (e *InvalidConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		DescriptorFile: "conveyor.conf",
		Strict:         false,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// Validate checks constraints the CUE schema cannot express and collects
// every problem instead of stopping at the first.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DescriptorFile) == "" {
		problems = append(problems, "descriptor_file must not be empty")
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Watch.DebounceMs < 0 {
		problems = append(problems, fmt.Sprintf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMs))
	}
	for i, name := range c.DocumentedEnv {
		if strings.TrimSpace(name) == "" {
			problems = append(problems, fmt.Sprintf("documented_env[%d] is empty", i))
		}
	}

	if len(problems) > 0 {
		return &InvalidConfigError{Problems: problems}
	}
	return nil
}
