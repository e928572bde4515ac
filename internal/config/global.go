// SPDX-License-Identifier: MPL-2.0

package config

// Package-level overrides set by the CLI (--config) and by tests.
var (
	configFilePathOverride string
	configDirOverride      string
)

// SetConfigFilePathOverride forces Load to use an explicit config file.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// SetConfigDirOverride replaces the platform config directory, primarily
// for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// ResetOverrides clears both overrides.
func ResetOverrides() {
	configFilePathOverride = ""
	configDirOverride = ""
}
