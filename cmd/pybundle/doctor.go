// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"pybundle-cli/internal/fetch"
	"pybundle-cli/internal/pyenv"
	"pybundle-cli/pkg/bundlefile"

	"github.com/spf13/cobra"
)

// doctorCmd checks the build environment
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the build environment",
	Long: `Check everything a build needs: the bundlefile, the Python
interpreter, pip, PyInstaller, and the external tool binary. Each check
prints a pass/fail marker; the command exits non-zero when any check
fails.`,
	RunE: runDoctor,
}

// runModuleCheck probes `python -m <module> --version`; a seam for tests.
var runModuleCheck = func(ctx context.Context, python, module string) error {
	cmd := exec.CommandContext(ctx, python, "-m", module, "--version")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

type doctorCheck struct {
	name string
	run  func(ctx context.Context) (string, error)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	var (
		bf     *bundlefile.Bundlefile
		interp *pyenv.Interpreter
	)

	checks := []doctorCheck{
		{name: "bundlefile", run: func(context.Context) (string, error) {
			parsed, err := loadBundlefile()
			if err != nil {
				return "", err
			}
			bf = parsed
			return bf.FilePath, nil
		}},
		{name: "python", run: func(ctx context.Context) (string, error) {
			found, err := pyenv.Find(ctx, appConfig.Python.Interpreter)
			if err != nil {
				return "", err
			}
			interp = found
			return fmt.Sprintf("%s (Python %s)", found.Path, found.Version), nil
		}},
		{name: "pip", run: func(ctx context.Context) (string, error) {
			if interp == nil {
				return "", fmt.Errorf("skipped, no interpreter")
			}
			return "available", runModuleCheck(ctx, interp.Path, "pip")
		}},
		{name: "pyinstaller", run: func(ctx context.Context) (string, error) {
			if interp == nil {
				return "", fmt.Errorf("skipped, no interpreter")
			}
			if err := runModuleCheck(ctx, interp.Path, "PyInstaller"); err != nil {
				return "", fmt.Errorf("not installed; run 'pybundle deps' (%w)", err)
			}
			return "available", nil
		}},
		{name: "tool", run: func(context.Context) (string, error) {
			if bf == nil {
				return "", fmt.Errorf("skipped, no bundlefile")
			}
			if bf.Tool == nil {
				return "none declared", nil
			}
			dir := filepath.Dir(bf.FilePath)
			if !fetch.Present(bf.Tool, dir) {
				return "", fmt.Errorf("%s missing; run 'pybundle fetch'", bf.Tool.Name)
			}
			return bf.Tool.Name + " present", nil
		}},
	}

	failures := 0
	for _, check := range checks {
		detail, err := check.run(cmd.Context())
		if err != nil {
			failures++
			fmt.Printf("%s %-12s %s\n", ErrorStyle.Render("✗"), check.name, formatErrorForDisplay(err, verbose))
			continue
		}
		fmt.Printf("%s %-12s %s\n", SuccessStyle.Render("✓"), check.name, SubtitleStyle.Render(detail))
	}

	if failures > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d check(s) failed", failures)}
	}
	return nil
}
