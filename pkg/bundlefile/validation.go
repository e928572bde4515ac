// SPDX-License-Identifier: MPL-2.0

package bundlefile

import (
	"fmt"
	"strings"
)

// validate applies checks the CUE schema cannot express and normalizes the
// list fields. Normalization deduplicates while preserving first-seen order
// so the manifest stays deterministic regardless of how the file repeats
// entries.
func (b *Bundlefile) validate() error {
	var errs []string

	if strings.TrimSpace(b.Entry) == "" {
		errs = append(errs, "entry must not be blank")
	}

	seen := make(map[string]bool, len(b.Collect))
	for i, pkg := range b.Collect {
		if seen[pkg.Name] {
			errs = append(errs, fmt.Sprintf("collect[%d]: duplicate package %q", i, pkg.Name))
		}
		seen[pkg.Name] = true
		b.Collect[i].HiddenImports = dedupe(pkg.HiddenImports)
	}

	for _, pkg := range b.Collect {
		for _, excl := range b.Excludes {
			if pkg.Name == excl {
				errs = append(errs, fmt.Sprintf("package %q is both collected and excluded", excl))
			}
		}
	}

	b.Requires = dedupe(b.Requires)
	b.HiddenImports = dedupe(b.HiddenImports)
	b.Excludes = dedupe(b.Excludes)

	if len(errs) > 0 {
		return fmt.Errorf("%s: invalid bundlefile:\n  %s", b.FilePath, strings.Join(errs, "\n  "))
	}
	return nil
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return in
	}
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
