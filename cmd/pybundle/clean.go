// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pybundle-cli/internal/bundle"
	"pybundle-cli/internal/packager"

	"github.com/spf13/cobra"
)

var (
	cleanYes bool

	// cleanCmd removes previous build output
	cleanCmd = &cobra.Command{
		Use:   "clean",
		Short: "Remove previous build output",
		Long: `Remove the build residue of a previous run: the build/ and dist/
directories, __pycache__, the rendered spec file, and the exported
portable copy. Project sources are never touched.`,
		RunE: runClean,
	}
)

func init() {
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")
}

func runClean(cmd *cobra.Command, _ []string) error {
	bf, err := loadBundlefile()
	if err != nil {
		return reportIssue(err)
	}

	d := bundle.BuildDescriptor(bf, filepath.Dir(bf.FilePath))

	var present []string
	for _, target := range packager.CleanTargets(d) {
		if _, err := os.Stat(target); err == nil {
			present = append(present, target)
		}
	}
	if len(present) == 0 {
		fmt.Println(SubtitleStyle.Render("Nothing to clean."))
		return nil
	}

	fmt.Println("The following will be removed:")
	for _, target := range present {
		fmt.Println("  " + PathStyle.Render(target))
	}
	if !cleanYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Proceed?") {
		fmt.Println(SubtitleStyle.Render("Aborted."))
		return nil
	}

	removed, err := packager.Clean(d)
	if err != nil {
		return err
	}
	fmt.Printf("%s Removed %d path(s)\n", SuccessStyle.Render("✓"), len(removed))
	return nil
}
