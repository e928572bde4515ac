// SPDX-License-Identifier: MPL-2.0

// Package bundlefile defines the bundlefile.cue manifest format.
//
// A bundlefile declares everything the packaging pipeline needs to turn a
// Python entry script into a portable executable: the entry point, the pip
// requirements, the packages whose data/binary/hidden-import files must be
// collected, explicit extra data files (WSDL/XSD definitions, the external
// probe tool), an exclude list to keep the artifact small, and optional
// pre/post build hook scripts.
//
// The file is parsed and validated against an embedded CUE schema; see
// Parse and ParseBytes.
package bundlefile
