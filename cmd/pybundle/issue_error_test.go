// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"pybundle-cli/internal/fetch"
	"pybundle-cli/internal/hooks"
	"pybundle-cli/internal/issue"
	"pybundle-cli/internal/packager"
	"pybundle-cli/internal/pyenv"
)

func TestClassifyIssue(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "python not found",
			err:  fmt.Errorf("check python: %w", pyenv.ErrInterpreterNotFound),
			want: issue.PythonNotFoundId,
		},
		{
			name: "python too old",
			err:  pyenv.ErrInterpreterTooOld,
			want: issue.PythonTooOldId,
		},
		{
			name: "pip install failed",
			err:  fmt.Errorf("resolve dependencies: %w", pyenv.ErrInstallFailed),
			want: issue.PipInstallFailedId,
		},
		{
			name: "tool download failed",
			err:  fmt.Errorf("fetch tool: %w", fetch.ErrDownloadFailed),
			want: issue.ToolDownloadFailedId,
		},
		{
			name: "pyinstaller failed",
			err:  fmt.Errorf("package: %w", packager.ErrPyInstallerFailed),
			want: issue.PackagerFailedId,
		},
		{
			name: "artifact missing",
			err:  fmt.Errorf("verify artifact: %w", packager.ErrArtifactMissing),
			want: issue.ArtifactMissingId,
		},
		{
			name: "hook failed",
			err:  fmt.Errorf("pre-build hook: %w", hooks.ErrHookFailed),
			want: issue.HookFailedId,
		},
		{
			name: "bundlefile missing",
			err: issue.NewErrorContext().
				WithOperation("load bundlefile").
				WithResource("bundlefile.cue").
				Wrap(os.ErrNotExist).
				BuildError(),
			want: issue.BundlefileNotFoundId,
		},
		{
			name: "bundlefile invalid",
			err: issue.NewErrorContext().
				WithOperation("parse bundlefile").
				Wrap(errors.New("entry must not be blank")).
				BuildError(),
			want: issue.BundlefileParseErrorId,
		},
		{
			name: "config invalid",
			err: issue.NewErrorContext().
				WithOperation("load configuration").
				Wrap(errors.New("bad cue")).
				BuildError(),
			want: issue.ConfigLoadFailedId,
		},
		{
			name: "unclassified",
			err:  errors.New("disk on fire"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyIssue(tt.err); got != tt.want {
				t.Errorf("classifyIssue(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFailedBuildSurfacesRemediation(t *testing.T) {
	// The error shape produced by a pipeline run whose python step failed.
	err := fmt.Errorf("check python: %w", pyenv.ErrInterpreterNotFound)

	var buf bytes.Buffer
	renderIssueHelp(&buf, err)

	out := buf.String()
	if !strings.Contains(out, "Python") {
		t.Errorf("remediation text missing from output: %q", out)
	}
}

func TestRenderIssueHelpSilentForUnknownErrors(t *testing.T) {
	var buf bytes.Buffer
	renderIssueHelp(&buf, errors.New("disk on fire"))
	if buf.Len() != 0 {
		t.Errorf("expected no output for unclassified error, got %q", buf.String())
	}
}
