// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"os"
	"path/filepath"

	"pybundle-cli/internal/bundle"
)

// CleanTargets returns the exact paths Clean will remove for d. The scope
// is fixed: build residue, the dist output, the bytecode cache, the
// rendered spec file, and the top-level portable copy. Nothing else is
// ever touched.
func CleanTargets(d *bundle.Descriptor) []string {
	return []string{
		filepath.Join(d.WorkDir, "build"),
		filepath.Join(d.WorkDir, "dist"),
		filepath.Join(d.WorkDir, "__pycache__"),
		d.SpecFilePath(),
		filepath.Join(d.WorkDir, d.ArtifactName+"_Portable"+ExeSuffix()),
		filepath.Join(d.WorkDir, d.ArtifactName+"_Portable"),
	}
}

// Clean removes the build residue for d. Missing targets are fine; the
// operation is idempotent. Returns the paths that actually existed and
// were removed.
func Clean(d *bundle.Descriptor) ([]string, error) {
	var removed []string
	for _, target := range CleanTargets(d) {
		if _, err := os.Stat(target); err != nil {
			continue
		}
		if err := os.RemoveAll(target); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", target, err)
		}
		removed = append(removed, target)
	}
	return removed, nil
}
