// SPDX-License-Identifier: MPL-2.0

// Package bundle turns a parsed bundlefile into the build descriptor the
// packager consumes, renders the PyInstaller spec file from it, and audits
// the produced artifact against the manifest's declarations.
package bundle
