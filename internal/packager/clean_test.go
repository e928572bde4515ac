// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"path/filepath"
	"testing"

	"pybundle-cli/internal/testutil"
	"pybundle-cli/pkg/bundlefile"
)

func TestCleanRemovesExactlyBuildResidue(t *testing.T) {
	d := testDescriptor(t, bundlefile.ModeOneFile)
	dir := d.WorkDir

	// Build residue.
	testutil.WriteFile(t, filepath.Join(dir, "build", "CameraFinder"), "warn.txt", "")
	testutil.WriteFile(t, filepath.Join(dir, "dist"), "CameraFinder"+ExeSuffix(), "MZ")
	testutil.WriteFile(t, filepath.Join(dir, "__pycache__"), "camera_finder.cpython-311.pyc", "")
	testutil.WriteFile(t, dir, "CameraFinder.spec", "# spec")
	testutil.WriteFile(t, dir, "CameraFinder_Portable"+ExeSuffix(), "MZ")

	// Project files that must survive.
	testutil.WriteFile(t, dir, "camera_finder.py", "print('hi')")
	testutil.WriteFile(t, dir, "bundlefile.cue", "name: \"CameraFinder\"")
	testutil.WriteFile(t, dir, "pybundle.lock.toml", "[packages]")
	testutil.WriteFile(t, filepath.Join(dir, "wsdl"), "devicemgmt.wsdl", "<wsdl/>")

	removed, err := Clean(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed) != 5 {
		t.Errorf("expected 5 removed targets, got %d: %v", len(removed), removed)
	}

	for _, gone := range []string{"build", "dist", "__pycache__", "CameraFinder.spec", "CameraFinder_Portable" + ExeSuffix()} {
		if testutil.Exists(filepath.Join(dir, gone)) {
			t.Errorf("%s should have been removed", gone)
		}
	}
	for _, kept := range []string{"camera_finder.py", "bundlefile.cue", "pybundle.lock.toml", "wsdl"} {
		if !testutil.Exists(filepath.Join(dir, kept)) {
			t.Errorf("%s should have survived the clean", kept)
		}
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	d := testDescriptor(t, bundlefile.ModeOneFile)
	testutil.WriteFile(t, filepath.Join(d.WorkDir, "dist"), "CameraFinder"+ExeSuffix(), "MZ")

	if _, err := Clean(d); err != nil {
		t.Fatalf("first clean: %v", err)
	}
	removed, err := Clean(d)
	if err != nil {
		t.Fatalf("second clean: %v", err)
	}
	if len(removed) != 0 {
		t.Errorf("second clean removed %v, want nothing", removed)
	}
}
