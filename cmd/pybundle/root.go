// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"pybundle-cli/internal/config"
	"pybundle-cli/internal/issue"
	"pybundle-cli/pkg/bundlefile"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// bundlefileFlag overrides the bundlefile location
	bundlefileFlag string

	// appConfig is the loaded global configuration; defaults until
	// initRootConfig runs.
	appConfig = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "pybundle",
		Short: "Package Python GUI apps into portable executables",
		Long: TitleStyle.Render("pybundle") + SubtitleStyle.Render(" - Package Python GUI apps into portable executables") + `

pybundle turns a Python application plus its pip dependencies into a
single portable executable (or folder) by driving pip and PyInstaller,
with optional download of external tool binaries the app shells out to.

The build is described in a 'bundlefile.cue' manifest: the entry script,
required packages, hidden imports, data files, and the output mode.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'pybundle init' next to your application
  2. Edit bundlefile.cue to describe your app
  3. Run 'pybundle build'

` + SubtitleStyle.Render("Examples:") + `
  pybundle build            Build the portable executable
  pybundle build --onedir   Build a folder instead of a single file
  pybundle deps --lock      Install and pin build requirements
  pybundle doctor           Check the build environment
  pybundle docs             Read the beginner guide`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir)")
	rootCmd.PersistentFlags().StringVarP(&bundlefileFlag, "bundlefile", "b", "", "bundlefile path (default ./bundlefile.cue)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(specCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(docsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file and applies it to global state.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Config problems never block the run; defaults are always usable.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		renderIssueHelp(os.Stderr, err)
		return
	}
	appConfig = cfg

	if !verbose {
		verbose = cfg.UI.Verbose
	}
}

// newLogger builds the pipeline step logger honoring the verbose flag.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// bundlefilePath resolves the manifest location: flag, then config, then
// the conventional name in the current directory.
func bundlefilePath() string {
	if bundlefileFlag != "" {
		return bundlefileFlag
	}
	if appConfig.Bundlefile != "" {
		return appConfig.Bundlefile
	}
	return bundlefile.DefaultFileName
}

// loadBundlefile parses the manifest, mapping the two common failure modes
// to actionable errors.
func loadBundlefile() (*bundlefile.Bundlefile, error) {
	path := bundlefilePath()

	if _, err := os.Stat(path); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load bundlefile").
			WithResource(path).
			WithSuggestion("Run 'pybundle init' to create a starter bundlefile").
			WithSuggestion("Pass --bundlefile <path> to use a different location").
			Wrap(err).
			BuildError()
	}

	bf, err := bundlefile.Parse(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("parse bundlefile").
			WithResource(path).
			WithSuggestion("The message above names the offending field").
			WithSuggestion("Compare with 'pybundle init --template full' output").
			Wrap(err).
			BuildError()
	}
	return bf, nil
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render their suggestions; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
