// SPDX-License-Identifier: MPL-2.0

// Package fetch downloads the external probe tool the packaged application
// shells out to at runtime.
//
// The tool ships inside a release archive; Fetch downloads the archive,
// extracts the named member, and places it next to the bundlefile with
// executable permissions. Fetching is idempotent: a present, non-empty
// tool binary short-circuits the whole operation. Downloads are bounded by
// a per-attempt timeout, a size cap, and a small retry budget with
// exponential backoff.
package fetch
