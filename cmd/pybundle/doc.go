// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pybundle.
//
// This package implements the Cobra command hierarchy: the root command,
// the full build pipeline, and the individual stages (clean, deps, fetch,
// spec) exposed as standalone subcommands.
package cmd
