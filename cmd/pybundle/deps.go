// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pybundle-cli/internal/issue"
	"pybundle-cli/internal/pyenv"

	"github.com/spf13/cobra"
)

var (
	depsLock   bool
	depsLocked bool

	// depsCmd installs the build requirements
	depsCmd = &cobra.Command{
		Use:   "deps",
		Short: "Install the build requirements with pip",
		Long: `Install the bundlefile's required packages into the active Python
environment. With --lock, the resolved versions are pinned in
pybundle.lock.toml; with --locked, the pinned versions are installed
instead of whatever pip would resolve today.`,
		RunE: runDeps,
	}
)

func init() {
	depsCmd.Flags().BoolVar(&depsLock, "lock", false, "write pybundle.lock.toml with the resolved versions")
	depsCmd.Flags().BoolVar(&depsLocked, "locked", false, "install the versions pinned in pybundle.lock.toml")
	depsCmd.MarkFlagsMutuallyExclusive("lock", "locked")
}

func runDeps(cmd *cobra.Command, _ []string) error {
	bf, err := loadBundlefile()
	if err != nil {
		return reportIssue(err)
	}
	ctx := cmd.Context()

	interp, err := pyenv.Find(ctx, appConfig.Python.Interpreter)
	if err != nil {
		return reportIssue(err)
	}
	fmt.Printf("Using %s (Python %s)\n", PathStyle.Render(interp.Path), interp.Version)

	lockPath := filepath.Join(filepath.Dir(bf.FilePath), pyenv.LockFileName)
	reqs := bf.Requires
	if depsLocked {
		lock, err := pyenv.ReadLock(lockPath)
		if err != nil {
			return issue.NewErrorContext().
				WithOperation("read lockfile").
				WithResource(lockPath).
				WithSuggestion("Run 'pybundle deps --lock' first to create it").
				Wrap(err).
				BuildError()
		}
		reqs = lock.Requirements()
	}

	resolver := pyenv.NewResolver(interp, pyenv.WithOutput(os.Stdout, os.Stderr))
	if err := resolver.UpgradePip(ctx); err != nil {
		return reportIssue(err)
	}
	if err := resolver.Install(ctx, reqs); err != nil {
		return reportIssue(err)
	}
	fmt.Printf("%s Installed %d requirement(s)\n", SuccessStyle.Render("✓"), len(reqs))

	if depsLock {
		installed, err := resolver.Installed(ctx)
		if err != nil {
			return err
		}
		lock, err := pyenv.NewLock(bf.Requires, installed)
		if err != nil {
			return err
		}
		if err := pyenv.WriteLock(lockPath, lock); err != nil {
			return err
		}
		fmt.Printf("%s Pinned versions written to %s\n", SuccessStyle.Render("✓"), PathStyle.Render(lockPath))
	}
	return nil
}
