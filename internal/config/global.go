// SPDX-License-Identifier: MPL-2.0

package config

var (
	// configDirOverride lets tests bypass os.UserHomeDir, which doesn't
	// reliably respect HOME on all platforms.
	configDirOverride string

	// configFileOverride is the --config flag value; when set it is used
	// exclusively.
	configFileOverride string
)

// Reset clears overrides. Call from test cleanup.
func Reset() {
	configDirOverride = ""
	configFileOverride = ""
}

// SetConfigDirOverride sets a custom config directory path, primarily for
// tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride pins loading to an explicit config file.
func SetConfigFilePathOverride(path string) {
	configFileOverride = path
}
