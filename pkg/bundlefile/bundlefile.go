// SPDX-License-Identifier: MPL-2.0

package bundlefile

import "strings"

// Mode values for the produced artifact.
const (
	// ModeOneFile produces a single self-extracting executable.
	ModeOneFile = "onefile"
	// ModeOneDir produces a folder containing the executable and sidecars.
	ModeOneDir = "onedir"
)

type (
	// Bundlefile is the parsed bundle manifest. It is constructed once per
	// build invocation and never mutated afterwards.
	Bundlefile struct {
		Name    string `json:"name"`
		Entry   string `json:"entry"`
		Mode    string `json:"mode"`
		Console bool   `json:"console"`
		Icon    string `json:"icon,omitempty"`
		UPX     bool   `json:"upx"`

		Requires      []string   `json:"requires"`
		Collect       []Package  `json:"collect"`
		HiddenImports []string   `json:"hidden_imports"`
		Excludes      []string   `json:"excludes"`
		Datas         []DataFile `json:"datas"`

		Tool  *Tool  `json:"tool,omitempty"`
		Hooks *Hooks `json:"hooks,omitempty"`

		// FilePath is where the bundlefile was loaded from (set by Parse).
		FilePath string `json:"-"`
	}

	// Package names a third-party package whose files PyInstaller's static
	// analysis will not find on its own.
	Package struct {
		Name          string   `json:"name"`
		CollectAll    bool     `json:"collect_all"`
		Datas         bool     `json:"datas"`
		Binaries      bool     `json:"binaries"`
		HiddenImports []string `json:"hidden_imports"`
	}

	// DataFile is an explicit extra file to embed in the bundle.
	DataFile struct {
		Source string `json:"source"`
		Dest   string `json:"dest"`
	}

	// Tool describes the external binary the packaged app shells out to at
	// runtime. It is fetched at build time and embedded as a data file.
	Tool struct {
		Name     string `json:"name"`
		URL      string `json:"url"`
		Member   string `json:"member,omitempty"`
		Required bool   `json:"required"`
	}

	// Hooks holds optional shell scripts run around the package step.
	Hooks struct {
		PreBuild  string `json:"pre_build,omitempty"`
		PostBuild string `json:"post_build,omitempty"`
	}
)

// OneFile reports whether the manifest selects single-file output.
func (b *Bundlefile) OneFile() bool {
	return b.Mode == ModeOneFile
}

// ArchiveMember returns the member name to extract from the downloaded
// archive, defaulting to the tool name itself.
func (t *Tool) ArchiveMember() string {
	if t.Member != "" {
		return t.Member
	}
	return t.Name
}

// RequirementName returns the package name portion of a requirement entry,
// stripping any "==version" pin.
func RequirementName(req string) string {
	if i := strings.Index(req, "=="); i >= 0 {
		return req[:i]
	}
	return req
}
