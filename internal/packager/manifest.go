// SPDX-License-Identifier: MPL-2.0

package packager

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"pybundle-cli/internal/bundle"
)

// Manifest lists every file in the built artifact as sorted slash-separated
// paths relative to the artifact root. For onefile output the manifest is
// the executable alone.
func Manifest(d *bundle.Descriptor) ([]string, error) {
	target := DistPath(d)
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArtifactMissing, target)
	}

	if !info.IsDir() {
		return []string{filepath.Base(target)}, nil
	}

	var entries []string
	err = filepath.WalkDir(target, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk artifact: %w", err)
	}

	sort.Strings(entries)
	return entries, nil
}
