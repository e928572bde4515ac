// SPDX-License-Identifier: MPL-2.0

// Package docs embeds the user-facing documentation so the CLI can render
// it in the terminal.
package docs

import _ "embed"

// Guide is the beginner guide shown by `pybundle docs`.
//
//go:embed GUIDE.md
var Guide string
