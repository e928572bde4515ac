// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"reflect"
	"strings"
	"testing"

	"pybundle-cli/internal/testutil"
	"pybundle-cli/pkg/bundlefile"
)

func cameraBundlefile() *bundlefile.Bundlefile {
	return &bundlefile.Bundlefile{
		Name:    "CameraFinder",
		Entry:   "camera_finder.py",
		Mode:    bundlefile.ModeOneFile,
		Console: false,
		UPX:     true,
		Collect: []bundlefile.Package{
			{Name: "zeep", Datas: true},
			{Name: "wsdiscovery", CollectAll: true, HiddenImports: []string{"wsdiscovery.daemon", "wsdiscovery.actions"}},
		},
		HiddenImports: []string{"urllib3", "certifi", "urllib3"},
		Excludes:      []string{"numpy", "matplotlib", "numpy"},
		Datas:         []bundlefile.DataFile{{Source: "wsdl", Dest: "wsdl"}},
		Tool:          &bundlefile.Tool{Name: "ffprobe.exe", URL: "https://example.com/ffmpeg.zip"},
	}
}

func TestBuildDescriptorIsDeterministic(t *testing.T) {
	bf := cameraBundlefile()
	dir := t.TempDir()

	first := BuildDescriptor(bf, dir)
	second := BuildDescriptor(bf, dir)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("descriptors differ across invocations:\n%+v\n%+v", first, second)
	}
}

func TestBuildDescriptorSortsAndDeduplicates(t *testing.T) {
	d := BuildDescriptor(cameraBundlefile(), t.TempDir())

	wantHidden := []string{"certifi", "urllib3", "wsdiscovery.actions", "wsdiscovery.daemon"}
	if !reflect.DeepEqual(d.HiddenImports, wantHidden) {
		t.Errorf("hidden imports = %v, want %v", d.HiddenImports, wantHidden)
	}

	wantExcludes := []string{"matplotlib", "numpy"}
	if !reflect.DeepEqual(d.Excludes, wantExcludes) {
		t.Errorf("excludes = %v, want %v", d.Excludes, wantExcludes)
	}

	if len(d.Collected) != 2 || d.Collected[0].Name != "wsdiscovery" {
		t.Errorf("collected packages not sorted by name: %+v", d.Collected)
	}
}

func TestBuildDescriptorMissingToolIsWarning(t *testing.T) {
	d := BuildDescriptor(cameraBundlefile(), t.TempDir())

	if d.ToolPresent {
		t.Error("expected ToolPresent=false when binary absent")
	}
	if len(d.Warnings) != 1 || !strings.Contains(d.Warnings[0], "ffprobe.exe") {
		t.Errorf("expected a warning naming the tool, got %v", d.Warnings)
	}
	for _, df := range d.Datas {
		if df.Source == "ffprobe.exe" {
			t.Error("missing tool must not be declared as a data file")
		}
	}
}

func TestBuildDescriptorPresentToolBecomesData(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "ffprobe.exe", "binary")

	d := BuildDescriptor(cameraBundlefile(), dir)
	if !d.ToolPresent {
		t.Fatal("expected ToolPresent=true")
	}
	if len(d.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", d.Warnings)
	}

	found := false
	for _, df := range d.Datas {
		if df.Source == "ffprobe.exe" && df.Dest == "." {
			found = true
		}
	}
	if !found {
		t.Errorf("tool not added to datas: %+v", d.Datas)
	}
}

func TestBuildDescriptorModeOverride(t *testing.T) {
	bf := cameraBundlefile()

	d := BuildDescriptor(bf, t.TempDir(), WithModeOverride(bundlefile.ModeOneDir))
	if d.OneFile {
		t.Error("expected override to onedir")
	}

	d = BuildDescriptor(bf, t.TempDir())
	if !d.OneFile {
		t.Error("expected bundlefile mode to win without override")
	}
}

func TestSpecFileName(t *testing.T) {
	d := BuildDescriptor(cameraBundlefile(), t.TempDir())
	if d.SpecFileName() != "CameraFinder.spec" {
		t.Errorf("spec file name = %q", d.SpecFileName())
	}
}
