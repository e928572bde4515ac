// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known failure class.
type Id int

// Known failure classes, in pipeline order.
const (
	PythonNotFoundId Id = iota + 1
	PythonTooOldId
	PipInstallFailedId
	ToolDownloadFailedId
	BundlefileNotFoundId
	BundlefileParseErrorId
	PackagerFailedId
	ArtifactMissingId
	ConfigLoadFailedId
	HookFailedId
)

// Issue pairs a failure class with Markdown remediation text.
type Issue struct {
	id    Id
	mdMsg string
}

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw remediation Markdown.
func (i *Issue) MarkdownMsg() string {
	return i.mdMsg
}

// Render renders the remediation text for terminal display.
func (i *Issue) Render() (string, error) {
	return render(i.mdMsg, "dark")
}

// render is a seam for tests; glamour touches the terminal environment.
var render = glamour.Render

var registry = map[Id]*Issue{
	PythonNotFoundId: {
		id: PythonNotFoundId,
		mdMsg: `
# Python was not found

The pipeline needs a Python 3 interpreter on your PATH.

## Things to try
- Install Python from https://www.python.org/downloads/
- On Windows, tick "Add Python to PATH" in the installer
- Set ` + "`python.interpreter`" + ` in your pybundle config to a full path
`,
	},
	PythonTooOldId: {
		id: PythonTooOldId,
		mdMsg: `
# Python is too old

Packaging needs Python 3.7 or newer.

## Things to try
- Install a current Python 3 release
- Point ` + "`python.interpreter`" + ` at a newer interpreter
`,
	},
	PipInstallFailedId: {
		id: PipInstallFailedId,
		mdMsg: `
# Package installation failed

pip could not install one of the build requirements.

## Things to try
- Check your network connection
- Re-run with ` + "`--verbose`" + ` to see pip's full output
- Install the failing package manually: ` + "`pip install <name>`" + `
`,
	},
	ToolDownloadFailedId: {
		id: ToolDownloadFailedId,
		mdMsg: `
# Probe tool download failed

The external stream-probe binary could not be downloaded.

## Things to try
- Check your network connection and retry
- Download the archive manually and place the binary next to your bundlefile
- Re-run with ` + "`--skip-fetch`" + ` once the binary is in place
`,
	},
	BundlefileNotFoundId: {
		id: BundlefileNotFoundId,
		mdMsg: `
# No bundlefile found

pybundle looks for ` + "`bundlefile.cue`" + ` in the current directory.

## Things to try
- Run ` + "`pybundle init`" + ` to create a starter bundlefile
- Pass ` + "`--bundlefile <path>`" + ` to use a different location
`,
	},
	BundlefileParseErrorId: {
		id: BundlefileParseErrorId,
		mdMsg: `
# The bundlefile is invalid

The manifest did not validate against the bundlefile schema.

## Things to try
- The error message includes the path to the offending field
- Compare against ` + "`pybundle init --template full`" + ` output
`,
	},
	PackagerFailedId: {
		id: PackagerFailedId,
		mdMsg: `
# PyInstaller failed

The packaging subprocess exited with an error.

## Things to try
- Read PyInstaller's output above; it names the failing step
- Verify the entry script path in your bundlefile
- Run ` + "`pybundle doctor`" + ` to check the build environment
`,
	},
	ArtifactMissingId: {
		id: ArtifactMissingId,
		mdMsg: `
# Build output is missing

PyInstaller reported success but the expected artifact was not found
under ` + "`dist/`" + `.

## Things to try
- Re-run with ` + "`--verbose`" + ` and inspect the PyInstaller log
- Check that the artifact name in the bundlefile matches what you expect
`,
	},
	ConfigLoadFailedId: {
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

The global pybundle config file failed to parse.

## Things to try
- Check the file for CUE syntax errors
- Delete the file to fall back to defaults
`,
	},
	HookFailedId: {
		id: HookFailedId,
		mdMsg: `
# A build hook failed

One of the bundlefile's pre/post build scripts exited non-zero.

## Things to try
- Run the hook script by hand to reproduce the failure
- Remove the hook from the bundlefile if it is no longer needed
`,
	},
}

// Lookup returns the Issue for id, or nil when the id is unknown.
func Lookup(id Id) *Issue {
	return registry[id]
}

// All returns every registered issue sorted by id.
func All() []*Issue {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	issues := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		issues = append(issues, registry[id])
	}
	return issues
}
