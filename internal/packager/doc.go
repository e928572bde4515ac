// SPDX-License-Identifier: MPL-2.0

// Package packager drives PyInstaller: it writes the rendered spec file,
// runs the bundling subprocess, verifies the artifact actually exists,
// exports the portable copy, and cleans build residue.
package packager
