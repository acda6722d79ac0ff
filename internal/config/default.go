// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultFileContent is the starter config.cue written by `packvet config
// init`. Everything is commented out; defaults apply until a line is
// uncommented.
const defaultFileContent = `// packvet configuration
//
// All fields are optional. Uncomment a line to override the default.

// Descriptor file checked when no path is given.
// descriptor_file: "conveyor.conf"

// Treat warnings as errors.
// strict: false

// Environment variables your project documents for packagers. Descriptor
// references outside this set (plus GITHUB_TOKEN) are flagged.
// documented_env: ["SIGNING_KEY"]

// ui: {
// 	color_scheme: "auto" // "auto" | "dark" | "light"
// 	verbose:      false
// }

// watch: {
// 	debounce_ms: 500
// }
`

// CreateDefaultFile writes the starter config file into the config
// directory, creating the directory as needed. It refuses to overwrite an
// existing file.
func CreateDefaultFile() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(path) {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultFileContent), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
