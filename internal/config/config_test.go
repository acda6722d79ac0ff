// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// useConfigDir points config loading at a temp directory and registers
// cleanup. Tests touching the overrides cannot run in parallel.
func useConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.DescriptorFile != "conveyor.conf" {
		t.Errorf("DescriptorFile = %q", cfg.DescriptorFile)
	}
	if cfg.Strict {
		t.Error("Strict should default to false")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q", cfg.UI.ColorScheme)
	}
	if cfg.Watch.DebounceMs != 500 {
		t.Errorf("DebounceMs = %d", cfg.Watch.DebounceMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	useConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := DefaultConfig()
	if cfg.DescriptorFile != want.DescriptorFile || cfg.Strict != want.Strict ||
		cfg.UI != want.UI || cfg.Watch != want.Watch || len(cfg.DocumentedEnv) != 0 {
		t.Errorf("Load() without a file should return defaults, got %+v", *cfg)
	}

	path, err := LoadedConfigPath()
	if err != nil {
		t.Fatalf("LoadedConfigPath() error: %v", err)
	}
	if path != "" {
		t.Errorf("LoadedConfigPath() = %q, want empty", path)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := useConfigDir(t)
	writeConfig(t, dir, `
strict: true
documented_env: ["GITHUB_TOKEN", "SIGNING_KEY"]
ui: color_scheme: "dark"
watch: debounce_ms: 250
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Strict {
		t.Error("Strict should come from the file")
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %q, want dark", cfg.UI.ColorScheme)
	}
	if cfg.Watch.DebounceMs != 250 {
		t.Errorf("DebounceMs = %d, want 250", cfg.Watch.DebounceMs)
	}
	if len(cfg.DocumentedEnv) != 2 || cfg.DocumentedEnv[1] != "SIGNING_KEY" {
		t.Errorf("DocumentedEnv = %v", cfg.DocumentedEnv)
	}

	// Fields the file leaves unset keep their defaults.
	if cfg.DescriptorFile != "conveyor.conf" {
		t.Errorf("DescriptorFile = %q, want the default", cfg.DescriptorFile)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	useConfigDir(t)

	path := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(path, []byte(`descriptor_file: "packaging/conveyor.conf"`), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	SetConfigFilePathOverride(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DescriptorFile != "packaging/conveyor.conf" {
		t.Errorf("DescriptorFile = %q", cfg.DescriptorFile)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	useConfigDir(t)
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "nope.cue"))

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("Load() error = %v, want a not-found error", err)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"schema violation", `ui: color_scheme: "purple"`},
		{"type mismatch", `watch: debounce_ms: "fast"`},
		{"syntax error", `strict: {{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := useConfigDir(t)
			writeConfig(t, dir, tt.content)

			if _, err := Load(); err == nil {
				t.Error("Load() should reject the file")
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	useConfigDir(t)
	t.Setenv("PACKVET_DESCRIPTOR_FILE", "other.conf")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DescriptorFile != "other.conf" {
		t.Errorf("DescriptorFile = %q, want the environment value", cfg.DescriptorFile)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.DescriptorFile = "  "
	cfg.UI.ColorScheme = "sepia"
	cfg.Watch.DebounceMs = -1
	cfg.DocumentedEnv = []string{"OK", ""}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
	}

	var invalid *InvalidConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("error type = %T", err)
	}
	if len(invalid.Problems) != 4 {
		t.Errorf("Problems = %v, want all four collected", invalid.Problems)
	}
}

func TestColorSchemeValidate(t *testing.T) {
	t.Parallel()

	for _, scheme := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if err := scheme.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v", scheme, err)
		}
	}

	err := ColorScheme("sepia").Validate()
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("error should wrap ErrInvalidColorScheme, got %v", err)
	}
}
