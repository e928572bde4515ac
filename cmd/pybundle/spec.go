// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pybundle-cli/internal/bundle"

	"github.com/spf13/cobra"
)

var (
	specOutput  bool
	specOneFile bool
	specOneDir  bool

	// specCmd renders the PyInstaller spec file
	specCmd = &cobra.Command{
		Use:   "spec",
		Short: "Render the PyInstaller spec file",
		Long: `Render the PyInstaller spec file that 'pybundle build' would use and
print it to stdout. With --write, the file is placed next to the
bundlefile instead.`,
		RunE: runSpec,
	}
)

func init() {
	specCmd.Flags().BoolVarP(&specOutput, "write", "w", false, "write the spec file next to the bundlefile")
	specCmd.Flags().BoolVar(&specOneFile, "onefile", false, "force single-file output")
	specCmd.Flags().BoolVar(&specOneDir, "onedir", false, "force folder output")
	specCmd.MarkFlagsMutuallyExclusive("onefile", "onedir")
}

func runSpec(cmd *cobra.Command, _ []string) error {
	bf, err := loadBundlefile()
	if err != nil {
		return reportIssue(err)
	}

	mode := ""
	if specOneFile {
		mode = "onefile"
	} else if specOneDir {
		mode = "onedir"
	}

	d := bundle.BuildDescriptor(bf, filepath.Dir(bf.FilePath), bundle.WithModeOverride(mode))
	for _, warning := range d.Warnings {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("⚠ "+warning))
	}

	rendered := bundle.RenderSpec(d)
	if !specOutput {
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	}

	if err := os.WriteFile(d.SpecFilePath(), []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("failed to write spec file: %w", err)
	}
	fmt.Printf("%s Wrote %s\n", SuccessStyle.Render("✓"), PathStyle.Render(d.SpecFilePath()))
	return nil
}
