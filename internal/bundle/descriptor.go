// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"pybundle-cli/internal/fetch"
	"pybundle-cli/pkg/bundlefile"
)

type (
	// Descriptor is the fully resolved build input handed to the spec
	// renderer and the packager. Aside from a single disk probe for the
	// external tool, it is a pure function of the bundlefile, and all list
	// fields are sorted so two invocations over the same inputs produce
	// identical descriptors.
	Descriptor struct {
		ArtifactName string
		EntryScript  string
		OneFile      bool
		Console      bool
		Icon         string
		UPX          bool

		Collected     []bundlefile.Package
		HiddenImports []string
		Excludes      []string
		Datas         []bundlefile.DataFile

		// ToolPresent reports whether the declared external tool binary was
		// found on disk. When false the tool is left out of the bundle and a
		// warning is recorded; the build itself proceeds.
		ToolPresent bool

		// Warnings are non-fatal findings surfaced to the operator.
		Warnings []string

		// WorkDir is the directory the build runs in (bundlefile location).
		WorkDir string
	}

	// DescriptorOption adjusts descriptor construction.
	DescriptorOption func(*descriptorParams)

	descriptorParams struct {
		modeOverride string
	}
)

// WithModeOverride forces onefile or onedir output regardless of what the
// bundlefile declares. Empty means no override.
func WithModeOverride(mode string) DescriptorOption {
	return func(p *descriptorParams) {
		p.modeOverride = mode
	}
}

// BuildDescriptor resolves the bundlefile into a Descriptor. workDir is
// where the entry script, datas, and the fetched tool live. A declared but
// missing tool binary is a warning, never an error.
func BuildDescriptor(bf *bundlefile.Bundlefile, workDir string, opts ...DescriptorOption) *Descriptor {
	var params descriptorParams
	for _, opt := range opts {
		opt(&params)
	}

	oneFile := bf.OneFile()
	if params.modeOverride != "" {
		oneFile = params.modeOverride == bundlefile.ModeOneFile
	}

	d := &Descriptor{
		ArtifactName: bf.Name,
		EntryScript:  bf.Entry,
		OneFile:      oneFile,
		Console:      bf.Console,
		Icon:         bf.Icon,
		UPX:          bf.UPX,
		WorkDir:      workDir,
	}

	d.Collected = sortedPackages(bf.Collect)
	d.HiddenImports = sortedUnique(append(append([]string{}, bf.HiddenImports...), collectHiddenImports(bf.Collect)...))
	d.Excludes = sortedUnique(bf.Excludes)
	d.Datas = sortedDatas(bf.Datas)

	if bf.Tool != nil {
		d.ToolPresent = fetch.Present(bf.Tool, workDir)
		if d.ToolPresent {
			d.Datas = sortedDatas(append(d.Datas, bundlefile.DataFile{Source: bf.Tool.Name, Dest: "."}))
		} else {
			d.Warnings = append(d.Warnings,
				fmt.Sprintf("tool %s not found in %s; the bundle will be built without it (run fetch first)",
					bf.Tool.Name, workDir))
		}
	}

	return d
}

// SpecFileName returns the name of the rendered PyInstaller spec file.
func (d *Descriptor) SpecFileName() string {
	return d.ArtifactName + ".spec"
}

// SpecFilePath returns the spec file location inside the work directory.
func (d *Descriptor) SpecFilePath() string {
	return filepath.Join(d.WorkDir, d.SpecFileName())
}

// collectHiddenImports flattens the per-package hidden import lists.
func collectHiddenImports(pkgs []bundlefile.Package) []string {
	var out []string
	for _, pkg := range pkgs {
		out = append(out, pkg.HiddenImports...)
	}
	return out
}

func sortedUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedPackages(pkgs []bundlefile.Package) []bundlefile.Package {
	out := make([]bundlefile.Package, len(pkgs))
	copy(out, pkgs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for i := range out {
		out[i].HiddenImports = sortedUnique(out[i].HiddenImports)
	}
	return out
}

func sortedDatas(datas []bundlefile.DataFile) []bundlefile.DataFile {
	seen := make(map[bundlefile.DataFile]struct{}, len(datas))
	out := make([]bundlefile.DataFile, 0, len(datas))
	for _, df := range datas {
		if df.Dest == "" {
			df.Dest = "."
		}
		if _, ok := seen[df]; ok {
			continue
		}
		seen[df] = struct{}{}
		out = append(out, df)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Dest < out[j].Dest
	})
	return out
}
