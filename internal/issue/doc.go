// SPDX-License-Identifier: MPL-2.0

// Package issue provides operator-facing error reporting.
//
// Two layers live here:
//
//   - ActionableError / ErrorContext: structured error wrapping with an
//     operation, the resource involved, and fix suggestions. Used across the
//     pipeline so failures always tell the operator what to try next.
//   - The issue registry: known failure classes (Python missing, pip install
//     failed, tool download failed, packager failed, artifact missing) with
//     Markdown remediation text rendered via glamour.
package issue
