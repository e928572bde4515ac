// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared test helpers: a Clock abstraction so
// retry/backoff logic is deterministic under test, and small filesystem
// fixtures used across packages.
package testutil
