// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"pybundle-cli/internal/fetch"
	"pybundle-cli/internal/hooks"
	"pybundle-cli/internal/issue"
	"pybundle-cli/internal/packager"
	"pybundle-cli/internal/pyenv"
)

// classifyIssue maps a failure to its issue catalog id so the CLI can show
// remediation text next to the error. Zero means no catalog entry applies.
func classifyIssue(err error) issue.Id {
	switch {
	case errors.Is(err, pyenv.ErrInterpreterNotFound):
		return issue.PythonNotFoundId
	case errors.Is(err, pyenv.ErrInterpreterTooOld):
		return issue.PythonTooOldId
	case errors.Is(err, pyenv.ErrInstallFailed):
		return issue.PipInstallFailedId
	case errors.Is(err, fetch.ErrDownloadFailed):
		return issue.ToolDownloadFailedId
	case errors.Is(err, packager.ErrPyInstallerFailed):
		return issue.PackagerFailedId
	case errors.Is(err, packager.ErrArtifactMissing):
		return issue.ArtifactMissingId
	case errors.Is(err, hooks.ErrHookFailed):
		return issue.HookFailedId
	}

	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		switch ae.Operation {
		case "load bundlefile":
			return issue.BundlefileNotFoundId
		case "parse bundlefile":
			return issue.BundlefileParseErrorId
		case "fetch tool":
			return issue.ToolDownloadFailedId
		case "load configuration":
			return issue.ConfigLoadFailedId
		}
	}
	return 0
}

// renderIssueHelp writes the catalog remediation for err, when one is
// registered. Rendering problems fall back to the raw Markdown.
func renderIssueHelp(w io.Writer, err error) {
	entry := issue.Lookup(classifyIssue(err))
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render()
	if renderErr != nil {
		fmt.Fprintln(w, entry.MarkdownMsg())
		return
	}
	fmt.Fprint(w, rendered)
}

// reportIssue prints catalog remediation for err to stderr and returns the
// error unchanged, so call sites can report and propagate in one step.
func reportIssue(err error) error {
	renderIssueHelp(os.Stderr, err)
	return err
}
