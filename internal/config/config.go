// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"pybundle-cli/internal/issue"
	"pybundle-cli/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "pybundle"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema []byte

type (
	// Config is the global tool configuration.
	Config struct {
		// Bundlefile is the default manifest name looked up per directory.
		Bundlefile string `mapstructure:"bundlefile"`

		Python   PythonConfig   `mapstructure:"python"`
		Download DownloadConfig `mapstructure:"download"`

		// StrictAssets promotes missing-asset warnings to build failures.
		StrictAssets bool `mapstructure:"strict_assets"`

		UI UIConfig `mapstructure:"ui"`
	}

	// PythonConfig controls interpreter selection.
	PythonConfig struct {
		// Interpreter overrides PATH lookup with an explicit binary.
		Interpreter string `mapstructure:"interpreter"`
	}

	// DownloadConfig bounds the probe-tool download.
	DownloadConfig struct {
		TimeoutSeconds int `mapstructure:"timeout_seconds"`
		Attempts       int `mapstructure:"attempts"`
	}

	// UIConfig controls operator output.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults used when no config file
// exists or a field is unset.
func DefaultConfig() *Config {
	return &Config{
		Bundlefile: "bundlefile.cue",
		Download: DownloadConfig{
			TimeoutSeconds: 300,
			Attempts:       3,
		},
	}
}

// ConfigDir returns the pybundle configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the global configuration. Precedence: explicit --config file,
// then config.cue in the platform config dir, then config.cue in the
// current directory, then defaults. A missing file is not an error; an
// invalid one is.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("bundlefile", defaults.Bundlefile)
	v.SetDefault("python.interpreter", defaults.Python.Interpreter)
	v.SetDefault("download.timeout_seconds", defaults.Download.TimeoutSeconds)
	v.SetDefault("download.attempts", defaults.Download.Attempts)
	v.SetDefault("strict_assets", defaults.StrictAssets)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	path, explicit, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}

	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Delete the file to fall back to defaults").
				Wrap(err).
				BuildError()
		}
	} else if explicit {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(configFilePathOverride).
			WithSuggestion("Verify the file path is correct").
			Wrap(fmt.Errorf("config file not found")).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// resolveConfigPath picks the config file to load. The second return value
// reports whether the path was explicitly requested (and thus must exist).
func resolveConfigPath() (string, bool, error) {
	if configFilePathOverride != "" {
		if fileExists(configFilePathOverride) {
			return configFilePathOverride, true, nil
		}
		return "", true, nil
	}

	cfgDir, err := ConfigDir()
	if err != nil {
		return "", false, err
	}

	cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(cuePath) {
		return cuePath, false, nil
	}

	localPath := ConfigFileName + "." + ConfigFileExt
	if fileExists(localPath) {
		return localPath, false, nil
	}
	return "", false, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. Every field in the schema is
// optional, so validation runs without the concrete requirement.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	settings, err := cueutil.Decode[map[string]any](
		configSchema,
		data,
		"#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	return v.MergeConfigMap(*settings)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
