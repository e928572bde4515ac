// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pybundle-cli/pkg/bundlefile"

	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initTemplate string

	// initCmd creates a new bundlefile
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new bundlefile in the current directory",
		Long: `Create a new bundlefile.cue in the current directory.

The generated manifest is a starting point: edit the entry script,
requirements, and data files to match your application.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing bundlefile")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "template to use (default, minimal, full)")
}

func runInit(_ *cobra.Command, args []string) error {
	filename := bundlefile.DefaultFileName
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	content := bundlefile.Generate(initTemplate)
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the bundlefile to describe your app")
	fmt.Println("  2. Run 'pybundle deps' to install build requirements")
	fmt.Println("  3. Run 'pybundle build' to produce the portable executable")

	return nil
}
