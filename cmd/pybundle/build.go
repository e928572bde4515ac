// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"pybundle-cli/internal/app/pipeline"
	"pybundle-cli/pkg/bundlefile"

	"github.com/spf13/cobra"
)

var (
	buildOneFile   bool
	buildOneDir    bool
	buildSkipDeps  bool
	buildSkipFetch bool
	buildNoClean   bool
	buildStrict    bool

	// buildCmd runs the full packaging pipeline
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build the portable executable",
		Long: `Run the full packaging pipeline: clean previous output, check the
Python environment, install build requirements, fetch external tools,
run PyInstaller, verify and audit the result, and export the portable
copy next to the bundlefile.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().BoolVar(&buildOneFile, "onefile", false, "force single-file output")
	buildCmd.Flags().BoolVar(&buildOneDir, "onedir", false, "force folder output")
	buildCmd.Flags().BoolVar(&buildSkipDeps, "skip-deps", false, "skip installing build requirements")
	buildCmd.Flags().BoolVar(&buildSkipFetch, "skip-fetch", false, "skip downloading external tools")
	buildCmd.Flags().BoolVar(&buildNoClean, "no-clean", false, "keep previous build output")
	buildCmd.Flags().BoolVar(&buildStrict, "strict", false, "treat asset and audit warnings as failures")
	buildCmd.MarkFlagsMutuallyExclusive("onefile", "onedir")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	bf, err := loadBundlefile()
	if err != nil {
		return reportIssue(err)
	}

	opts := pipeline.Options{
		ModeOverride: buildModeOverride(),
		SkipDeps:     buildSkipDeps,
		SkipFetch:    buildSkipFetch,
		NoClean:      buildNoClean,
		Strict:       buildStrict,
	}

	build := pipeline.NewBuild(appConfig, bf, newLogger(), opts)
	result, err := build.Run(cmd.Context())
	if err != nil {
		fmt.Println()
		fmt.Println(ErrorStyle.Render("✗ Build failed"))
		fmt.Println("  " + formatErrorForDisplay(err, verbose))
		renderIssueHelp(os.Stderr, err)
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Println()
	fmt.Println(SuccessStyle.Render("✓ Build succeeded"))
	fmt.Printf("  Artifact: %s (%d bytes)\n", PathStyle.Render(result.Artifact.Path), result.Artifact.Size)
	fmt.Printf("  Portable: %s\n", PathStyle.Render(result.PortablePath))
	if result.AuditSkipped {
		fmt.Println(SubtitleStyle.Render("  Bundle audit skipped for single-file output"))
	}
	for _, warning := range result.Warnings {
		fmt.Println(WarningStyle.Render("  ⚠ " + warning))
	}
	return nil
}

// buildModeOverride maps the mode flags to a bundlefile mode value.
func buildModeOverride() string {
	switch {
	case buildOneFile:
		return bundlefile.ModeOneFile
	case buildOneDir:
		return bundlefile.ModeOneDir
	default:
		return ""
	}
}
