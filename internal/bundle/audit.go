// SPDX-License-Identifier: MPL-2.0

package bundle

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// AuditReport holds the findings of a post-build manifest audit. Findings
// are warnings by default; strict mode promotes them to build failures.
type AuditReport struct {
	Findings []string

	// Skipped is set when the audit could not inspect bundle contents
	// (single-file output embeds everything in the executable).
	Skipped bool
}

// Clean reports whether the audit found nothing to complain about.
func (r *AuditReport) Clean() bool {
	return len(r.Findings) == 0
}

// Audit checks the bundled-file manifest against the descriptor: every
// declared data file must have made it into the bundle, and no excluded
// package may appear in it. manifest holds slash-separated paths relative
// to the artifact root, as produced by the packager.
func Audit(d *Descriptor, manifest []string) *AuditReport {
	report := &AuditReport{}

	if d.OneFile {
		// The onefile bootloader archive is opaque; only the executable
		// itself shows up in the manifest.
		report.Skipped = true
		return report
	}

	for _, df := range d.Datas {
		if !manifestContains(manifest, filepath.Base(df.Source)) {
			report.Findings = append(report.Findings,
				fmt.Sprintf("declared data file %s is missing from the bundle", df.Source))
		}
	}

	for _, excluded := range d.Excludes {
		for _, entry := range manifest {
			if hasSegment(entry, excluded) {
				report.Findings = append(report.Findings,
					fmt.Sprintf("excluded package %s leaked into the bundle (%s)", excluded, entry))
				break
			}
		}
	}

	return report
}

// manifestContains reports whether any manifest entry mentions base as a
// path segment. Directory data sources show up in the manifest as the files
// inside them, so matching the directory segment covers both cases.
func manifestContains(manifest []string, base string) bool {
	for _, entry := range manifest {
		if path.Base(entry) == base {
			return true
		}
		for _, seg := range strings.Split(entry, "/") {
			if seg == base {
				return true
			}
		}
	}
	return false
}

// hasSegment reports whether the path contains the package name as a whole
// segment, case-insensitively. Matching segments rather than substrings
// keeps "numpy" from flagging "mynumpytool.txt".
func hasSegment(entry, name string) bool {
	for _, seg := range strings.Split(entry, "/") {
		seg = strings.TrimSuffix(seg, ".pyd")
		seg = strings.TrimSuffix(seg, ".dll")
		seg = strings.TrimSuffix(seg, ".so")
		if strings.EqualFold(seg, name) {
			return true
		}
	}
	return false
}
